package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrbroker/carsearch/internal/models"
)

func priced(provider, category string, publicRate float64) models.PricedOffer {
	return models.PricedOffer{
		Offer: models.Offer{
			ProviderName:    provider,
			VehicleCategory: category,
		},
		Currency:         "MXN",
		PublicRateAmount: publicRate,
	}
}

func TestApply(t *testing.T) {
	fleet := []models.PricedOffer{
		priced("Europcar", "SUV", 1575),
		priced("America", "ECON", 933),
		priced("Mex", "ECON", 890),
	}

	t.Run("No filters sorts ascending by public rate", func(t *testing.T) {
		out, _ := Apply(fleet, nil)

		require.Len(t, out, 3)
		assert.Equal(t, 890.0, out[0].PublicRateAmount)
		assert.Equal(t, 933.0, out[1].PublicRateAmount)
		assert.Equal(t, 1575.0, out[2].PublicRateAmount)
	})

	t.Run("Category filter is case insensitive", func(t *testing.T) {
		out, _ := Apply(fleet, &models.FleetQueryFilters{Categories: []string{"econ"}})

		require.Len(t, out, 2)
		for _, v := range out {
			assert.Equal(t, "ECON", v.VehicleCategory)
		}
	})

	t.Run("Provider filter", func(t *testing.T) {
		out, _ := Apply(fleet, &models.FleetQueryFilters{Providers: []string{"Europcar"}})

		require.Len(t, out, 1)
		assert.Equal(t, "Europcar", out[0].ProviderName)
	})

	t.Run("Price range bounds are inclusive", func(t *testing.T) {
		min, max := 890.0, 933.0
		out, _ := Apply(fleet, &models.FleetQueryFilters{PriceMin: &min, PriceMax: &max})

		assert.Len(t, out, 2)
	})

	t.Run("Filter metadata reflects the filtered fleet", func(t *testing.T) {
		out, filters := Apply(fleet, &models.FleetQueryFilters{Categories: []string{"ECON"}})

		require.Len(t, out, 2)
		assert.Equal(t, []string{"ECON"}, filters.Categories)
		assert.Equal(t, []string{"America", "Mex"}, filters.Providers)
		assert.Equal(t, 890.0, filters.PriceRange.Min)
		assert.Equal(t, 933.0, filters.PriceRange.Max)
		assert.Equal(t, "MXN 890 - MXN 933", filters.PriceRange.Formatted)
	})

	t.Run("Empty fleet yields empty metadata", func(t *testing.T) {
		out, filters := Apply(nil, nil)

		assert.Empty(t, out)
		assert.Empty(t, filters.Categories)
		assert.Empty(t, filters.Providers)
		assert.Zero(t, filters.PriceRange.Max)
	})
}
