package selection

import "github.com/mcrbroker/carsearch/internal/models"

// ComparableRate is the rate winners are selected by: net rate plus the
// zero-deductible net rate when one is present. Selection only; the
// winner keeps its real net rate for pricing.
func ComparableRate(o models.Offer) float64 {
	rate := o.NetRate
	if o.ZeroDeductibleNetRate > 0 {
		rate += o.ZeroDeductibleNetRate
	}
	return rate
}

// PickWinners reduces the merged offer list to one offer per vehicle
// category. Within a category, each provider is represented by its
// cheapest comparable rate; the provider with the global minimum wins,
// and an exact tie goes to the provider with a live API. Categories with
// no offer carrying a net rate are absent from the result.
func PickWinners(offers []models.Offer, hasAPI map[int]bool) map[string]models.Offer {
	byCategory := make(map[string]map[int][]models.Offer)
	for _, o := range offers {
		if !o.HasNetRate() || o.ProviderID == 0 {
			continue
		}
		cat := o.VehicleCategory
		if cat == "" {
			cat = "UNKNOWN"
		}
		if byCategory[cat] == nil {
			byCategory[cat] = make(map[int][]models.Offer)
		}
		byCategory[cat][o.ProviderID] = append(byCategory[cat][o.ProviderID], o)
	}

	winners := make(map[string]models.Offer, len(byCategory))
	for cat, byProvider := range byCategory {
		winningProvider := 0
		winningRate := 0.0
		first := true

		for pid, list := range byProvider {
			minRate := ComparableRate(list[0])
			for _, o := range list[1:] {
				if r := ComparableRate(o); r < minRate {
					minRate = r
				}
			}

			switch {
			case first, minRate < winningRate:
				winningProvider, winningRate, first = pid, minRate, false
			case minRate == winningRate && hasAPI[pid] && !hasAPI[winningProvider]:
				winningProvider = pid
			}
		}

		best := byProvider[winningProvider][0]
		for _, o := range byProvider[winningProvider][1:] {
			if ComparableRate(o) < ComparableRate(best) {
				best = o
			}
		}
		winners[cat] = best
	}

	return winners
}
