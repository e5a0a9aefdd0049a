package units

import (
	"fmt"
	"math"

	"github.com/mesh-intelligence/measures/pkg/types"
)

// Converter runs standard and smart conversions against one catalog.
type Converter struct {
	catalog *Catalog
}

// NewConverter returns a Converter over catalog. A nil catalog selects the
// default catalog.
func NewConverter(catalog *Catalog) *Converter {
	if catalog == nil {
		catalog = Default()
	}
	return &Converter{catalog: catalog}
}

// Catalog returns the catalog the converter reads from.
func (cv *Converter) Catalog() *Catalog {
	return cv.catalog
}

// Convert converts amount from one unit to another within the named
// category.
//
// Returns ErrInvalidCategory if the category is unknown, ErrInvalidUnit if
// either token is not declared in it, and ErrInvalidAmount if amount is NaN
// or infinite. Checks run in that order.
func (cv *Converter) Convert(categoryID, from, to string, amount float64) (float64, error) {
	cat, err := cv.catalog.Lookup(categoryID)
	if err != nil {
		return 0, err
	}
	return convertIn(cat, from, to, amount)
}

// convertIn dispatches on the category kind.
func convertIn(cat types.Category, from, to string, amount float64) (float64, error) {
	fromFactor, ok := cat.Factor(from)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s unit", types.ErrInvalidUnit, from, cat.ID)
	}
	toFactor, ok := cat.Factor(to)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s unit", types.ErrInvalidUnit, to, cat.ID)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %v", types.ErrInvalidAmount, amount)
	}

	if from == to {
		return amount, nil
	}

	switch cat.Kind {
	case types.KindLinear:
		return amount * fromFactor / toFactor, nil
	case types.KindFormula:
		if cat.Formula == nil {
			return 0, fmt.Errorf("%w: category %q has no formula", types.ErrInvalidCategory, cat.ID)
		}
		return cat.Formula(amount, from, to), nil
	default:
		return 0, fmt.Errorf("%w: category %q has unknown kind %q", types.ErrInvalidCategory, cat.ID, cat.Kind)
	}
}

var defaultConverter = NewConverter(nil)

// Convert converts amount using the default catalog.
func Convert(categoryID, from, to string, amount float64) (float64, error) {
	return defaultConverter.Convert(categoryID, from, to, amount)
}
