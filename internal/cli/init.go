package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/measures/internal/sqlite"
	"github.com/mesh-intelligence/measures/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend    string           `yaml:"backend"`
	DataDir    string           `yaml:"data_dir,omitempty"`
	Precision  int              `yaml:"precision"`
	History    bool             `yaml:"history"`
	Categories []types.Category `yaml:"categories,omitempty"`
}

// configHeader is written above the generated YAML.
const configHeader = `# measures configuration
#
# precision:  decimals shown for results (0-12)
# history:    record successful conversions in the data directory
# categories: extra linear categories appended after the built-in ones, e.g.
#   categories:
#     - id: distance
#       units:
#         - {token: km, factor: 1000}
#         - {token: mi, factor: 1609.34}
`

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and history storage",
		Long:  "Create the configuration directory with a default config.yaml, then initialize the history store in the data directory.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return sysErr(fmt.Errorf("create config directory: %w", err))
	}

	// Only an explicit --data-dir is pinned in the generated file.
	pinned := ""
	if a.flags.dataDir != "" {
		pinned = a.dataDir
	}

	configPath := filepath.Join(a.configDir, configFileExt)
	written, err := writeConfigIfMissing(configPath, pinned)
	if err != nil {
		return sysErr(fmt.Errorf("write config: %w", err))
	}

	// Attach then Detach creates the data directory and history files.
	h := sqlite.NewBackend()
	if err := h.Attach(a.cfg); err != nil {
		return sysErr(fmt.Errorf("initialize history: %w", err))
	}
	if err := h.Detach(); err != nil {
		return sysErr(fmt.Errorf("finalize history: %w", err))
	}

	if written {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized measures (data: %s)\n", a.dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. It reports whether a file was written.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:   types.BackendSQLite,
		DataDir:   dataDir,
		Precision: types.DefaultPrecision,
		History:   true,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configHeader), data...), 0o644); err != nil {
		return false, err
	}
	return true, nil
}
