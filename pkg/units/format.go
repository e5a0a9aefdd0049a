package units

import (
	"fmt"
	"strconv"

	"github.com/mesh-intelligence/measures/pkg/types"
)

// DefaultPrecision is the number of decimals shown for a result.
const DefaultPrecision = types.DefaultPrecision

// FormatResult renders "<amount> <from> = <result> <to>". The amount keeps
// its shortest form; the result is fixed to precision decimals. A negative
// precision selects DefaultPrecision.
func FormatResult(amount float64, from string, result float64, to string, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	return fmt.Sprintf("%s %s = %s %s",
		strconv.FormatFloat(amount, 'f', -1, 64),
		from,
		strconv.FormatFloat(result, 'f', precision, 64),
		to,
	)
}
