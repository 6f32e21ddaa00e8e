package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"
)

type nonAPIOfferRepository struct {
	db *sql.DB
}

func NewNonAPIOfferRepository(db *sql.DB) repository.NonAPIOfferRepository {
	return &nonAPIOfferRepository{db: db}
}

// FetchOffers runs the aggregate query that prices every statically
// listed provider for the zone pair and window in one shot. Rental-day
// counting and rate selection live inside the database function.
func (r *nonAPIOfferRepository) FetchOffers(ctx context.Context, pickupZoneID, dropoffZoneID int, pickupAt, dropoffAt time.Time) ([]models.Offer, error) {
	query := `SELECT provider_id, provider_name, category_name,
	                 COALESCE(vehicle_description, ''), COALESCE(vehicle_acriss, ''),
	                 vehicle_name, COALESCE(vehicle_type, ''), vehicle_id, vehicle_image,
	                 pickup_zone_id, dropoff_zone_id, rent_days, net_rate,
	                 COALESCE(zero_deductible_net_rate, 0), COALESCE(zero_deductible_public_rate, 0)
	          FROM non_api_offers($1, $2, $3, $4)`
	rows, err := r.db.QueryContext(ctx, query, pickupZoneID, dropoffZoneID, pickupAt, dropoffAt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		o := models.Offer{Source: models.SourceNonAPI}
		if err := rows.Scan(&o.ProviderID, &o.ProviderName, &o.VehicleCategory,
			&o.VehicleDescription, &o.VehicleAcriss,
			&o.VehicleName, &o.VehicleType, &o.VehicleID, &o.VehicleImage,
			&o.PickupOfficeID, &o.DropoffOfficeID, &o.TotalDays, &o.NetRate,
			&o.ZeroDeductibleNetRate, &o.ZeroDeductiblePublicRate); err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}
