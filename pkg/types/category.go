package types

// Kind distinguishes how a category converts between its units.
type Kind string

// Category kinds.
const (
	// KindLinear converts by the ratio of two scale factors.
	KindLinear Kind = "linear"
	// KindFormula converts with a category-specific function.
	KindFormula Kind = "formula"
)

// Formula converts value from one unit token to another within a formula
// category. Unit membership is checked by the caller.
type Formula func(value float64, from, to string) float64

// Unit is a single unit token and its scale factor in the category's base
// unit. Formula categories use a placeholder factor of 1.
type Unit struct {
	Token  string  `json:"token" mapstructure:"token" yaml:"token"`
	Factor float64 `json:"factor" mapstructure:"factor" yaml:"factor"`
}

// Category is a measurement domain grouping mutually convertible units.
// Exactly one of the two conversion shapes applies, selected by Kind:
// linear categories use Units factors, formula categories call Formula.
type Category struct {
	ID      string  `json:"id" mapstructure:"id" yaml:"id"`
	Icon    string  `json:"icon,omitempty" mapstructure:"icon" yaml:"icon,omitempty"`
	Kind    Kind    `json:"kind" mapstructure:"kind" yaml:"kind,omitempty"`
	Units   []Unit  `json:"units" mapstructure:"units" yaml:"units"`
	Formula Formula `json:"-" mapstructure:"-" yaml:"-"`
}

// Tokens returns the unit tokens in declaration order.
func (c Category) Tokens() []string {
	tokens := make([]string, len(c.Units))
	for i, u := range c.Units {
		tokens[i] = u.Token
	}
	return tokens
}

// Has reports whether token is declared in this category.
// Tokens are case-sensitive.
func (c Category) Has(token string) bool {
	_, ok := c.Factor(token)
	return ok
}

// Factor returns the scale factor declared for token.
func (c Category) Factor(token string) (float64, bool) {
	for _, u := range c.Units {
		if u.Token == token {
			return u.Factor, true
		}
	}
	return 0, false
}

// Clone returns a copy whose Units slice does not alias c's.
func (c Category) Clone() Category {
	out := c
	out.Units = append([]Unit(nil), c.Units...)
	return out
}
