package types

import (
	"fmt"
	"math"
	"time"
)

// Conversion modes recorded in history.
const (
	ModeStandard = "standard"
	ModeSmart    = "smart"
)

// Conversion is one successful conversion as recorded in the history log.
type Conversion struct {
	ConversionID string    `json:"conversion_id"` // UUID v7, generated on Record.
	Mode         string    `json:"mode"`          // ModeStandard or ModeSmart.
	Expression   string    `json:"expression,omitempty"`
	Category     string    `json:"category"`
	FromUnit     string    `json:"from_unit"`
	ToUnit       string    `json:"to_unit"`
	Amount       float64   `json:"amount"`
	Result       float64   `json:"result"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks the fields the history backend relies on.
func (c Conversion) Validate() error {
	if c.Mode != ModeStandard && c.Mode != ModeSmart {
		return ErrInvalidMode
	}
	if c.Category == "" || c.FromUnit == "" || c.ToUnit == "" {
		return ErrInvalidRecord
	}
	if !isFinite(c.Amount) || !isFinite(c.Result) {
		return fmt.Errorf("%w: amount and result must be finite", ErrInvalidRecord)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
