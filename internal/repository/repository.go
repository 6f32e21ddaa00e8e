package repository

import (
	"context"
	"time"

	"github.com/mcrbroker/carsearch/internal/models"
)

// DestinationRepository resolves broker zones to destinations.
type DestinationRepository interface {
	// GetByZoneIDs returns destinations keyed by zone id. Zones without a
	// destination are simply absent from the map.
	GetByZoneIDs(ctx context.Context, pickupZoneID, dropoffZoneID int) (map[int]models.Destination, error)
}

// CoverageRepository reads the office coverage catalog.
type CoverageRepository interface {
	// GetActiveOffices returns every active office of an active provider
	// within either of the two zones.
	GetActiveOffices(ctx context.Context, pickupZoneID, dropoffZoneID int) ([]models.OfficeCoverage, error)
	// GetProviderLocations returns the supplier-specific location codes
	// for the given broker office ids.
	GetProviderLocations(ctx context.Context, officeIDs []int) ([]models.ProviderLocation, error)
}

// CatalogRepository reads the vehicle model catalog.
type CatalogRepository interface {
	GetModels(ctx context.Context) ([]models.CatalogModel, error)
}

// PapRepository reads the per-category margin floor dataset for a
// destination and pickup date, already including the country-level
// default fallback when no season matches.
type PapRepository interface {
	GetByPickupDate(ctx context.Context, pickupDate string, destinationID int) ([]models.PapRow, error)
}

// DebitRepository reads debit-card acceptance conditions per provider.
type DebitRepository interface {
	GetConditions(ctx context.Context) ([]models.DebitCondition, error)
}

// NonAPIOfferRepository fetches statically price-listed provider rows for
// a zone pair and rental window in one aggregate query.
type NonAPIOfferRepository interface {
	FetchOffers(ctx context.Context, pickupZoneID, dropoffZoneID int, pickupAt, dropoffAt time.Time) ([]models.Offer, error)
}
