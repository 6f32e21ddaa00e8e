package suppliers

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/mcrbroker/carsearch/internal/models"
)

// BuildSearchParams produces the per-provider call input from labeled
// coverage rows. Live-API providers get their supplier location codes and
// are skipped with a warning when a code is missing; price-listed
// providers get broker office ids. A provider without a dropoff office
// falls back to its pickup office.
func BuildSearchParams(
	offices []models.OfficeCoverage,
	locations []models.ProviderLocation,
	pickupAt, dropoffAt time.Time,
	log *slog.Logger,
) map[int]SearchParams {
	codeByOffice := make(map[int]string, len(locations))
	for _, l := range locations {
		codeByOffice[l.OfficeID] = l.Code
	}

	byProvider := make(map[int][]models.OfficeCoverage)
	for _, o := range offices {
		byProvider[o.ProviderID] = append(byProvider[o.ProviderID], o)
	}

	params := make(map[int]SearchParams, len(byProvider))
	for pid, ofs := range byProvider {
		var pickup, dropoff *models.OfficeCoverage
		for i := range ofs {
			switch {
			case ofs[i].Role == models.RolePickup && pickup == nil:
				pickup = &ofs[i]
			case ofs[i].Role == models.RoleDropoff && dropoff == nil:
				dropoff = &ofs[i]
			}
		}
		if pickup == nil {
			continue
		}
		if dropoff == nil {
			dropoff = pickup
		}

		p := SearchParams{
			PickupOfficeID:  pickup.OfficeID,
			DropoffOfficeID: dropoff.OfficeID,
			PickupAt:        pickupAt,
			DropoffAt:       dropoffAt,
		}

		if pickup.HasAPI {
			pickupCode := codeByOffice[pickup.OfficeID]
			dropoffCode := codeByOffice[dropoff.OfficeID]
			if dropoffCode == "" {
				dropoffCode = pickupCode
			}
			if pickupCode == "" || dropoffCode == "" {
				log.Warn("provider location code missing",
					"provider", pid, "pickup_office", pickup.OfficeID, "dropoff_office", dropoff.OfficeID)
				continue
			}
			p.PickupLocation = pickupCode
			p.DropoffLocation = dropoffCode
		} else {
			p.PickupLocation = strconv.Itoa(pickup.OfficeID)
			p.DropoffLocation = strconv.Itoa(dropoff.OfficeID)
		}

		params[pid] = p
	}

	return params
}

// APIOfficeIDs returns the office ids of live-API providers, the set
// whose supplier location codes must be loaded.
func APIOfficeIDs(offices []models.OfficeCoverage) []int {
	seen := make(map[int]bool)
	var out []int
	for _, o := range offices {
		if o.HasAPI && !seen[o.OfficeID] {
			seen[o.OfficeID] = true
			out = append(out, o.OfficeID)
		}
	}
	return out
}
