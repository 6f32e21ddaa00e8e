package pricing

import "github.com/mcrbroker/carsearch/internal/models"

// ApplyDebitFilter keeps only offers from providers registered as
// debit-card accepting, restricted to each provider's allowed categories
// (an empty list allows all), and applies the provider's net-rate
// increment so every derived amount reflects it.
func ApplyDebitFilter(offers []models.Offer, conds []models.DebitCondition) []models.Offer {
	byProvider := make(map[int]models.DebitCondition, len(conds))
	for _, c := range conds {
		byProvider[c.ProviderID] = c
	}

	out := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		cond, ok := byProvider[o.ProviderID]
		if !ok {
			continue
		}
		if len(cond.Categories) > 0 && !containsCategory(cond.Categories, o.VehicleCategory) {
			continue
		}
		o.NetRate += cond.IncrementAmount
		out = append(out, o)
	}
	return out
}

func containsCategory(cats []string, cat string) bool {
	for _, c := range cats {
		if c == cat {
			return true
		}
	}
	return false
}
