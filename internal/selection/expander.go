package selection

import (
	"context"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"
)

// Expander multiplies each category winner across every catalog model the
// broker sells in that category, so the fleet shows concrete cars while
// all of them carry the winner's pricing.
type Expander struct {
	catalog repository.CatalogRepository
}

func NewExpander(catalog repository.CatalogRepository) *Expander {
	return &Expander{catalog: catalog}
}

// Expand clones every winner over the models of its category, overriding
// only model name, image and id. A category without catalog models passes
// its winner through unchanged.
func (e *Expander) Expand(ctx context.Context, winners map[string]models.Offer) ([]models.Offer, error) {
	catalog, err := e.catalog.GetModels(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string][]models.CatalogModel)
	for _, m := range catalog {
		byCategory[m.VehicleCategory] = append(byCategory[m.VehicleCategory], m)
	}

	var out []models.Offer
	for cat, winner := range winners {
		catModels := byCategory[cat]
		if len(catModels) == 0 {
			out = append(out, winner)
			continue
		}
		for _, m := range catModels {
			clone := winner
			if m.VehicleName != "" {
				clone.VehicleName = m.VehicleName
			}
			if m.VehicleImage != "" {
				clone.VehicleImage = m.VehicleImage
			}
			if m.VehicleID != 0 {
				clone.VehicleID = m.VehicleID
			}
			out = append(out, clone)
		}
	}

	return out, nil
}
