package types

import "errors"

// Config holds backend selection and presentation settings loaded from
// config.yaml.
type Config struct {
	Backend    string     `json:"backend" yaml:"backend"`
	DataDir    string     `json:"data_dir" yaml:"data_dir"`
	Precision  int        `json:"precision" yaml:"precision"`
	History    bool       `json:"history" yaml:"history"`
	Categories []Category `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Precision bounds for formatted results.
const (
	DefaultPrecision = 4
	MaxPrecision     = 12
)

// Config validation errors.
var (
	ErrBackendEmpty     = errors.New("backend must not be empty")
	ErrBackendUnknown   = errors.New("unknown backend")
	ErrPrecisionInvalid = errors.New("precision must be between 0 and 12")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure. Extra categories are validated when the
// catalog is built.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Precision < 0 || c.Precision > MaxPrecision {
		return ErrPrecisionInvalid
	}
	return nil
}
