package filter

import (
	"sort"
	"strings"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/pkg/currency"
)

// Apply narrows the priced fleet by the caller's optional filters, sorts
// it ascending by public rate, and derives the filter metadata stored
// with the quotation.
func Apply(fleet []models.PricedOffer, filters *models.FleetQueryFilters) ([]models.PricedOffer, models.FleetFilters) {
	filtered := applyFilters(fleet, filters)

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PublicRateAmount < filtered[j].PublicRateAmount
	})

	return filtered, buildFilters(filtered)
}

func applyFilters(fleet []models.PricedOffer, filters *models.FleetQueryFilters) []models.PricedOffer {
	if filters == nil {
		return fleet
	}

	result := make([]models.PricedOffer, 0, len(fleet))
	for _, v := range fleet {
		if matches(v, filters) {
			result = append(result, v)
		}
	}
	return result
}

func matches(v models.PricedOffer, filters *models.FleetQueryFilters) bool {
	if filters.PriceMin != nil && v.PublicRateAmount < *filters.PriceMin {
		return false
	}
	if filters.PriceMax != nil && v.PublicRateAmount > *filters.PriceMax {
		return false
	}
	if len(filters.Categories) > 0 && !containsFold(filters.Categories, v.VehicleCategory) {
		return false
	}
	if len(filters.Providers) > 0 && !containsFold(filters.Providers, v.ProviderName) {
		return false
	}
	return true
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func buildFilters(fleet []models.PricedOffer) models.FleetFilters {
	out := models.FleetFilters{
		Categories: []string{},
		Providers:  []string{},
	}
	if len(fleet) == 0 {
		return out
	}

	out.Categories = distinct(fleet, func(v models.PricedOffer) string { return v.VehicleCategory })
	out.Providers = distinct(fleet, func(v models.PricedOffer) string { return v.ProviderName })

	min, max := fleet[0].PublicRateAmount, fleet[0].PublicRateAmount
	for _, v := range fleet[1:] {
		if v.PublicRateAmount < min {
			min = v.PublicRateAmount
		}
		if v.PublicRateAmount > max {
			max = v.PublicRateAmount
		}
	}
	code := fleet[0].Currency
	out.PriceRange = models.PriceRange{
		Min:       min,
		Max:       max,
		Formatted: currency.Format(code, min) + " - " + currency.Format(code, max),
	}
	return out
}

func distinct(fleet []models.PricedOffer, key func(models.PricedOffer) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range fleet {
		k := key(v)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
