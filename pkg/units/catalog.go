// Package units implements the measurement catalog and the two conversion
// entry points built on it: the standard converter, which takes an explicit
// category, and the smart converter, which parses "<amount><unit> to <unit>"
// and infers the category from the unit tokens.
//
// Everything here is pure. A Catalog is immutable once built and safe for
// concurrent use.
package units

import (
	"fmt"
	"math"

	"github.com/mesh-intelligence/measures/pkg/types"
)

// Category IDs of the default catalog.
const (
	CategoryLength      = "length"
	CategoryWeight      = "weight"
	CategoryTemperature = "temperature"
	CategoryStorage     = "storage"
	CategorySpeed       = "speed"
	CategoryTime        = "time"
	CategoryArea        = "area"
	CategoryVolume      = "volume"
)

// Temperature unit tokens.
const (
	Celsius    = "celsius"
	Fahrenheit = "fahrenheit"
	Kelvin     = "kelvin"
)

// Catalog is an ordered, immutable set of categories. Declaration order
// decides which category wins when a token pair fits more than one.
type Catalog struct {
	categories []types.Category
	index      map[string]int
}

// defaultCategories returns the built-in seed data in declaration order.
// Factors are base-unit equivalents.
func defaultCategories() []types.Category {
	return []types.Category{
		linear(CategoryLength, "📏", []builtInUnit{
			{"meter", 1},
			{"kilometer", 1000},
			{"centimeter", 0.01},
			{"inch", 0.0254},
			{"foot", 0.3048},
			{"yard", 0.9144},
			{"mile", 1609.34},
		}),
		linear(CategoryWeight, "⚖️", []builtInUnit{
			{"kilogram", 1},
			{"gram", 0.001},
			{"pound", 0.453592},
			{"ounce", 0.0283495},
		}),
		{
			ID:   CategoryTemperature,
			Icon: "🌡️",
			Kind: types.KindFormula,
			Units: []types.Unit{
				{Token: Celsius, Factor: 1},
				{Token: Fahrenheit, Factor: 1},
				{Token: Kelvin, Factor: 1},
			},
			Formula: temperature,
		},
		linear(CategoryStorage, "💾", []builtInUnit{
			{"bit", 1},
			{"byte", 8},
			{"kb", 8192},
			{"mb", 8388608},
			{"gb", 8589934592},
		}),
		linear(CategorySpeed, "🏃", []builtInUnit{
			{"m/s", 1},
			{"km/h", 0.277778},
			{"mph", 0.44704},
		}),
		linear(CategoryTime, "⏱️", []builtInUnit{
			{"second", 1},
			{"minute", 60},
			{"hour", 3600},
			{"day", 86400},
		}),
		linear(CategoryArea, "🟦", []builtInUnit{
			{"sq-meter", 1},
			{"sq-foot", 0.092903},
			{"sq-yard", 0.836127},
			{"acre", 4046.86},
			{"hectare", 10000},
		}),
		linear(CategoryVolume, "🧊", []builtInUnit{
			{"cu-meter", 1},
			{"cu-foot", 0.028317},
			{"liter", 0.001},
			{"gallon", 0.00378541},
		}),
	}
}

// builtInUnit describes a unit seeded into a built-in linear category.
type builtInUnit struct {
	token  string
	factor float64
}

// linear builds a linear category from its units in declaration order.
func linear(id, icon string, units []builtInUnit) types.Category {
	c := types.Category{ID: id, Icon: icon, Kind: types.KindLinear}
	for _, u := range units {
		c.Units = append(c.Units, types.Unit{Token: u.token, Factor: u.factor})
	}
	return c
}

// temperature converts between celsius, fahrenheit and kelvin. Only the four
// pairs through celsius are defined; fahrenheit and kelvin do not convert
// into each other and the value passes through unchanged.
func temperature(v float64, from, to string) float64 {
	switch {
	case from == to:
		return v
	case from == Celsius && to == Fahrenheit:
		return v*9/5 + 32
	case from == Fahrenheit && to == Celsius:
		return (v - 32) * 5 / 9
	case from == Celsius && to == Kelvin:
		return v + 273.15
	case from == Kelvin && to == Celsius:
		return v - 273.15
	default:
		return v
	}
}

var defaultCatalog = mustCatalog(defaultCategories())

// Default returns the process-wide built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

// NewCatalog returns the built-in categories followed by extra. Extra
// categories must be linear with a unique non-empty ID and unique tokens
// whose factors are positive and finite. A zero Kind is treated as linear.
func NewCatalog(extra ...types.Category) (*Catalog, error) {
	cats := defaultCategories()
	for _, c := range extra {
		c = c.Clone()
		if c.Kind == "" {
			c.Kind = types.KindLinear
		}
		if err := validateExtra(c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return newCatalog(cats)
}

func validateExtra(c types.Category) error {
	if c.ID == "" {
		return fmt.Errorf("%w: category id must not be empty", types.ErrInvalidCatalog)
	}
	if c.Kind != types.KindLinear || c.Formula != nil {
		return fmt.Errorf("%w: category %q must be linear", types.ErrInvalidCatalog, c.ID)
	}
	if len(c.Units) == 0 {
		return fmt.Errorf("%w: category %q has no units", types.ErrInvalidCatalog, c.ID)
	}
	for _, u := range c.Units {
		if u.Token == "" {
			return fmt.Errorf("%w: category %q has an empty unit token", types.ErrInvalidCatalog, c.ID)
		}
		if u.Factor <= 0 || math.IsInf(u.Factor, 0) || math.IsNaN(u.Factor) {
			return fmt.Errorf("%w: unit %q in %q must have a positive factor", types.ErrInvalidCatalog, u.Token, c.ID)
		}
	}
	return nil
}

func newCatalog(cats []types.Category) (*Catalog, error) {
	cat := &Catalog{
		categories: cats,
		index:      make(map[string]int, len(cats)),
	}
	for i, c := range cats {
		if _, dup := cat.index[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", types.ErrInvalidCatalog, c.ID)
		}
		seen := make(map[string]bool, len(c.Units))
		for _, u := range c.Units {
			if seen[u.Token] {
				return nil, fmt.Errorf("%w: duplicate unit %q in %q", types.ErrInvalidCatalog, u.Token, c.ID)
			}
			seen[u.Token] = true
		}
		cat.index[c.ID] = i
	}
	return cat, nil
}

func mustCatalog(cats []types.Category) *Catalog {
	c, err := newCatalog(cats)
	if err != nil {
		panic(err)
	}
	return c
}

// ListCategories returns every category in declaration order. The returned
// values are copies.
func (c *Catalog) ListCategories() []types.Category {
	out := make([]types.Category, len(c.categories))
	for i, cat := range c.categories {
		out[i] = cat.Clone()
	}
	return out
}

// Lookup returns the category with the given ID.
// Returns ErrInvalidCategory if no such category exists.
func (c *Catalog) Lookup(categoryID string) (types.Category, error) {
	i, ok := c.index[categoryID]
	if !ok {
		return types.Category{}, fmt.Errorf("%w: %q", types.ErrInvalidCategory, categoryID)
	}
	return c.categories[i].Clone(), nil
}

// UnitsOf returns the unit tokens of a category in declaration order.
// Returns ErrInvalidCategory if no such category exists.
func (c *Catalog) UnitsOf(categoryID string) ([]string, error) {
	i, ok := c.index[categoryID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrInvalidCategory, categoryID)
	}
	return c.categories[i].Tokens(), nil
}

// FindCategory returns the first category, in declaration order, that
// declares both from and to.
func (c *Catalog) FindCategory(from, to string) (types.Category, bool) {
	for _, cat := range c.categories {
		if cat.Has(from) && cat.Has(to) {
			return cat.Clone(), true
		}
	}
	return types.Category{}, false
}
