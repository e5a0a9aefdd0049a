package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/measures/pkg/types"
)

func TestDefaultCatalogOrder(t *testing.T) {
	var ids []string
	for _, c := range Default().ListCategories() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{
		CategoryLength, CategoryWeight, CategoryTemperature, CategoryStorage,
		CategorySpeed, CategoryTime, CategoryArea, CategoryVolume,
	}, ids)
}

func TestDefaultCatalogSeedData(t *testing.T) {
	tests := []struct {
		category string
		units    []types.Unit
	}{
		{CategoryLength, []types.Unit{
			{Token: "meter", Factor: 1}, {Token: "kilometer", Factor: 1000},
			{Token: "centimeter", Factor: 0.01}, {Token: "inch", Factor: 0.0254},
			{Token: "foot", Factor: 0.3048}, {Token: "yard", Factor: 0.9144},
			{Token: "mile", Factor: 1609.34},
		}},
		{CategoryWeight, []types.Unit{
			{Token: "kilogram", Factor: 1}, {Token: "gram", Factor: 0.001},
			{Token: "pound", Factor: 0.453592}, {Token: "ounce", Factor: 0.0283495},
		}},
		{CategoryTemperature, []types.Unit{
			{Token: "celsius", Factor: 1}, {Token: "fahrenheit", Factor: 1},
			{Token: "kelvin", Factor: 1},
		}},
		{CategoryStorage, []types.Unit{
			{Token: "bit", Factor: 1}, {Token: "byte", Factor: 8},
			{Token: "kb", Factor: 8192}, {Token: "mb", Factor: 8388608},
			{Token: "gb", Factor: 8589934592},
		}},
		{CategorySpeed, []types.Unit{
			{Token: "m/s", Factor: 1}, {Token: "km/h", Factor: 0.277778},
			{Token: "mph", Factor: 0.44704},
		}},
		{CategoryTime, []types.Unit{
			{Token: "second", Factor: 1}, {Token: "minute", Factor: 60},
			{Token: "hour", Factor: 3600}, {Token: "day", Factor: 86400},
		}},
		{CategoryArea, []types.Unit{
			{Token: "sq-meter", Factor: 1}, {Token: "sq-foot", Factor: 0.092903},
			{Token: "sq-yard", Factor: 0.836127}, {Token: "acre", Factor: 4046.86},
			{Token: "hectare", Factor: 10000},
		}},
		{CategoryVolume, []types.Unit{
			{Token: "cu-meter", Factor: 1}, {Token: "cu-foot", Factor: 0.028317},
			{Token: "liter", Factor: 0.001}, {Token: "gallon", Factor: 0.00378541},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			c, err := Default().Lookup(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.units, c.Units)
		})
	}
}

func TestDefaultCatalogKinds(t *testing.T) {
	for _, c := range Default().ListCategories() {
		if c.ID == CategoryTemperature {
			assert.Equal(t, types.KindFormula, c.Kind)
			assert.NotNil(t, c.Formula)
			continue
		}
		assert.Equal(t, types.KindLinear, c.Kind, c.ID)
		assert.Nil(t, c.Formula, c.ID)
		assert.NotEmpty(t, c.Icon, c.ID)
	}
}

func TestUnitsOf(t *testing.T) {
	got, err := Default().UnitsOf(CategorySpeed)
	require.NoError(t, err)
	assert.Equal(t, []string{"m/s", "km/h", "mph"}, got)

	_, err = Default().UnitsOf("distance")
	assert.ErrorIs(t, err, types.ErrInvalidCategory)
}

func TestListCategoriesReturnsCopies(t *testing.T) {
	cats := Default().ListCategories()
	cats[0].Units[0].Factor = 99
	cats[0].ID = "mutated"

	c, err := Default().Lookup(CategoryLength)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Units[0].Factor)
}

func TestFindCategoryFirstMatchWins(t *testing.T) {
	cat, err := NewCatalog(
		types.Category{ID: "nautical", Units: []types.Unit{{Token: "mile", Factor: 1852}, {Token: "meter", Factor: 1}}},
	)
	require.NoError(t, err)

	c, ok := cat.FindCategory("mile", "meter")
	require.True(t, ok)
	assert.Equal(t, CategoryLength, c.ID)

	_, ok = cat.FindCategory("meter", "kilogram")
	assert.False(t, ok)
}

func TestNewCatalogAppendsExtras(t *testing.T) {
	cat, err := NewCatalog(types.Category{
		ID:    "mass",
		Icon:  "🪨",
		Units: []types.Unit{{Token: "kg", Factor: 1}, {Token: "lb", Factor: 0.453592}},
	})
	require.NoError(t, err)

	cats := cat.ListCategories()
	require.Len(t, cats, 9)
	last := cats[len(cats)-1]
	assert.Equal(t, "mass", last.ID)
	assert.Equal(t, types.KindLinear, last.Kind)

	// The default catalog is untouched.
	assert.Len(t, Default().ListCategories(), 8)
}

func TestNewCatalogRejectsInvalidExtras(t *testing.T) {
	tests := []struct {
		name  string
		extra types.Category
	}{
		{"empty id", types.Category{Units: []types.Unit{{Token: "a", Factor: 1}}}},
		{"duplicate id", types.Category{ID: CategoryLength, Units: []types.Unit{{Token: "a", Factor: 1}}}},
		{"formula kind", types.Category{ID: "x", Kind: types.KindFormula, Units: []types.Unit{{Token: "a", Factor: 1}}}},
		{"no units", types.Category{ID: "x"}},
		{"empty token", types.Category{ID: "x", Units: []types.Unit{{Token: "", Factor: 1}}}},
		{"zero factor", types.Category{ID: "x", Units: []types.Unit{{Token: "a", Factor: 0}}}},
		{"negative factor", types.Category{ID: "x", Units: []types.Unit{{Token: "a", Factor: -2}}}},
		{"duplicate token", types.Category{ID: "x", Units: []types.Unit{{Token: "a", Factor: 1}, {Token: "a", Factor: 2}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.extra)
			assert.ErrorIs(t, err, types.ErrInvalidCatalog)
		})
	}
}
