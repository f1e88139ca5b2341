package catalog

import (
	"testing"

	"storefront-service/config"
	"storefront-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadEmbedded(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load(&config.Config{})
	require.NoError(t, err)
	return c
}

func TestLoadEmbeddedCatalog(t *testing.T) {
	c := loadEmbedded(t)

	products := c.Products()
	require.Len(t, products, 12)
	assert.Equal(t, "Schab wieprzowy", products[0].Name)
	assert.Equal(t, 32.99, products[0].Price)
}

func TestFindByID(t *testing.T) {
	c := loadEmbedded(t)

	p, found := c.FindByID(7)
	require.True(t, found)
	assert.Equal(t, "Żeberka wieprzowe", p.Name)

	_, found = c.FindByID(999)
	assert.False(t, found)
}

func TestFilter(t *testing.T) {
	c := loadEmbedded(t)

	tests := []struct {
		name string
		opts FilterOptions
		want int
	}{
		{"no filters returns all", FilterOptions{}, 12},
		{"all sentinels return all", FilterOptions{Category: "all", Subcategory: "all", Availability: "all"}, 12},
		{"search is case-insensitive substring", FilterOptions{Search: "kurczak"}, 2},
		{"search with uppercase", FilterOptions{Search: "SCHAB"}, 1},
		{"subcategory exact match", FilterOptions{Subcategory: "drób"}, 3},
		{"availability low", FilterOptions{Availability: models.AvailabilityLow}, 3},
		{"availability unavailable", FilterOptions{Availability: models.AvailabilityUnavailable}, 1},
		{"combined filters", FilterOptions{Subcategory: "wieprzowina", Availability: models.AvailabilityAvailable}, 4},
		{"no match", FilterOptions{Search: "ryba"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, c.Filter(tt.opts), tt.want)
		})
	}
}

func TestFilterValues(t *testing.T) {
	c := loadEmbedded(t)

	values := c.FilterValues()
	assert.Equal(t, []string{"mięso"}, values.Categories)
	assert.Equal(t, []string{"wieprzowina", "drób", "wołowina", "podroby", "jagnięcina"}, values.Subcategories)
	assert.Equal(t, []string{
		models.AvailabilityAvailable,
		models.AvailabilityLow,
		models.AvailabilityUnavailable,
	}, values.Availabilities)
}

func TestProductsReturnsCopy(t *testing.T) {
	c := loadEmbedded(t)

	products := c.Products()
	products[0].Name = "zmienione"

	assert.Equal(t, "Schab wieprzowy", c.Products()[0].Name)
}
