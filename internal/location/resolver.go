package location

import (
	"context"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"
)

// Resolver maps a zone pair to destinations and the coverage rows of the
// providers that can actually serve the rental. Pure read, no side effects.
type Resolver struct {
	destinations repository.DestinationRepository
	coverage     repository.CoverageRepository
}

// Resolution is the per-request location context every later stage reads.
type Resolution struct {
	Pickup  models.Destination
	Dropoff models.Destination
	Offices []models.OfficeCoverage
}

// SameDestination reports whether both legs resolve to one destination.
func (r *Resolution) SameDestination() bool {
	return r.Pickup.DestinationID == r.Dropoff.DestinationID
}

// HasAPIByProvider indexes live-API capability per provider, used by the
// winner tie-break.
func (r *Resolution) HasAPIByProvider() map[int]bool {
	out := make(map[int]bool)
	for _, o := range r.Offices {
		if o.HasAPI {
			out[o.ProviderID] = true
		}
	}
	return out
}

func NewResolver(destinations repository.DestinationRepository, coverage repository.CoverageRepository) *Resolver {
	return &Resolver{destinations: destinations, coverage: coverage}
}

func (r *Resolver) Resolve(ctx context.Context, criteria models.SearchCriteria) (*Resolution, error) {
	dests, err := r.destinations.GetByZoneIDs(ctx, criteria.PickupZoneID, criteria.DropoffZoneID)
	if err != nil {
		return nil, err
	}
	pickup, ok := dests[criteria.PickupZoneID]
	if !ok {
		return nil, models.ErrDestinationNotFound
	}
	dropoff, ok := dests[criteria.DropoffZoneID]
	if !ok {
		return nil, models.ErrDestinationNotFound
	}

	offices, err := r.coverage.GetActiveOffices(ctx, criteria.PickupZoneID, criteria.DropoffZoneID)
	if err != nil {
		return nil, err
	}

	offices = LabelRoles(offices, criteria.PickupZoneID, criteria.DropoffZoneID)
	if criteria.OneWay() {
		offices = FilterEligible(offices, pickup.DestinationID, dropoff.DestinationID)
	}

	return &Resolution{Pickup: pickup, Dropoff: dropoff, Offices: offices}, nil
}

// LabelRoles tags every coverage row with the leg its zone serves. When
// pickup and dropoff share a zone each office covers both legs and keeps
// the pickup role.
func LabelRoles(offices []models.OfficeCoverage, pickupZoneID, dropoffZoneID int) []models.OfficeCoverage {
	out := make([]models.OfficeCoverage, 0, len(offices))
	for _, o := range offices {
		switch o.ZoneID {
		case pickupZoneID:
			o.Role = models.RolePickup
		case dropoffZoneID:
			o.Role = models.RoleDropoff
		default:
			continue
		}
		out = append(out, o)
	}
	return out
}

// FilterEligible keeps only providers that can serve a rental between two
// different zones. Same destination: the provider needs both roles there.
// Distinct destinations: the provider needs pickup coverage at the pickup
// destination, dropoff coverage at the dropoff destination, and a live
// one-way capable API; a price-listed provider cannot safely serve a
// cross-destination rental.
func FilterEligible(offices []models.OfficeCoverage, pickupDestID, dropoffDestID int) []models.OfficeCoverage {
	if pickupDestID == dropoffDestID {
		roles := make(map[int]map[string]bool)
		for _, o := range offices {
			if o.DestinationID != pickupDestID {
				continue
			}
			if roles[o.ProviderID] == nil {
				roles[o.ProviderID] = make(map[string]bool)
			}
			roles[o.ProviderID][o.Role] = true
		}

		var out []models.OfficeCoverage
		for _, o := range offices {
			r := roles[o.ProviderID]
			if o.DestinationID == pickupDestID && r[models.RolePickup] && r[models.RoleDropoff] {
				out = append(out, o)
			}
		}
		return out
	}

	hasPickup := make(map[int]bool)
	hasDropoff := make(map[int]bool)
	liveOneWay := make(map[int]bool)
	for _, o := range offices {
		if o.DestinationID == pickupDestID && o.Role == models.RolePickup {
			hasPickup[o.ProviderID] = true
		}
		if o.DestinationID == dropoffDestID && o.Role == models.RoleDropoff {
			hasDropoff[o.ProviderID] = true
		}
		if o.HasAPI && o.OneWay {
			liveOneWay[o.ProviderID] = true
		}
	}

	var out []models.OfficeCoverage
	for _, o := range offices {
		if !hasPickup[o.ProviderID] || !hasDropoff[o.ProviderID] || !liveOneWay[o.ProviderID] {
			continue
		}
		// Only the rows on the leg they serve.
		if (o.DestinationID == pickupDestID && o.Role == models.RolePickup) ||
			(o.DestinationID == dropoffDestID && o.Role == models.RoleDropoff) {
			out = append(out, o)
		}
	}
	return out
}
