package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
)

// writeJSON renders v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// newTable returns a tabwriter for aligned text columns. Callers must Flush.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// conversionOutput is the JSON shape of a conversion result.
type conversionOutput struct {
	Mode       string    `json:"mode"`
	Expression string    `json:"expression,omitempty"`
	Category   string    `json:"category"`
	FromUnit   string    `json:"from_unit"`
	ToUnit     string    `json:"to_unit"`
	Amount     float64   `json:"amount"`
	Result     jsonFloat `json:"result"`
	Formatted  string    `json:"formatted"`
}

// jsonFloat encodes as a JSON number when finite and as the string "+Inf",
// "-Inf" or "NaN" otherwise. Linear conversions of large finite amounts can
// overflow to infinity.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = jsonFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}
