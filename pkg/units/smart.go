package units

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mesh-intelligence/measures/pkg/types"
)

// space is the whitespace class of the smart pattern: ASCII whitespace plus
// \v, Unicode space separators, the line and paragraph separators and the
// byte order mark.
const space = `[\s\v\p{Zs}\x{2028}\x{2029}\x{feff}]`

// smartPattern matches "<amount><space?><unit> to <unit>" on lower-cased,
// trimmed input. Unit tokens are letters and '/', so hyphenated tokens such
// as sq-meter are never matched.
var smartPattern = regexp.MustCompile(`^(\d+(\.\d+)?)` + space + `*([a-zA-Z/]+)` + space + `+to` + space + `+([a-zA-Z/]+)$`)

// isSpace reports whether r belongs to the space class.
func isSpace(r rune) bool {
	return (unicode.IsSpace(r) && r != '\u0085') || r == '\ufeff'
}

// CompactSpace trims s and collapses every run of smart-pattern whitespace
// into a single ASCII space. Parsing the result is equivalent to parsing s.
func CompactSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// Expression is a parsed smart input with its inferred category.
type Expression struct {
	Input    string         `json:"input"`
	Amount   float64        `json:"amount"`
	FromUnit string         `json:"from_unit"`
	ToUnit   string         `json:"to_unit"`
	Category types.Category `json:"category"`
}

// Parse parses a smart expression such as "10 kilometer to mile" and infers
// its category: the first category, in catalog order, that declares both
// tokens. Tokens are matched literally; there are no aliases.
//
// Returns a *types.ParseError when the input does not match the pattern and
// a *types.UnitsNotFoundError when no category declares both tokens.
func (cv *Converter) Parse(input string) (Expression, error) {
	normalized := strings.TrimFunc(strings.ToLower(input), isSpace)
	m := smartPattern.FindStringSubmatch(normalized)
	if m == nil {
		return Expression{}, &types.ParseError{Input: input, Msg: types.ParseFormatMessage}
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Expression{}, &types.ParseError{Input: input, Msg: types.ParseFormatMessage}
	}
	from, to := m[3], m[4]

	cat, ok := cv.catalog.FindCategory(from, to)
	if !ok {
		return Expression{}, &types.UnitsNotFoundError{From: from, To: to}
	}

	return Expression{
		Input:    input,
		Amount:   amount,
		FromUnit: from,
		ToUnit:   to,
		Category: cat,
	}, nil
}

// ConvertExpression converts a parsed expression within its category.
func (cv *Converter) ConvertExpression(expr Expression) (float64, error) {
	return convertIn(expr.Category, expr.FromUnit, expr.ToUnit, expr.Amount)
}

// Smart parses input and converts it.
func (cv *Converter) Smart(input string) (Expression, float64, error) {
	expr, err := cv.Parse(input)
	if err != nil {
		return Expression{}, 0, err
	}
	result, err := cv.ConvertExpression(expr)
	if err != nil {
		return Expression{}, 0, err
	}
	return expr, result, nil
}

// Parse parses a smart expression against the default catalog.
func Parse(input string) (Expression, error) {
	return defaultConverter.Parse(input)
}

// Smart parses and converts a smart expression against the default catalog.
func Smart(input string) (Expression, float64, error) {
	return defaultConverter.Smart(input)
}
