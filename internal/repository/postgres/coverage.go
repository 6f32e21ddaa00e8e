package postgres

import (
	"context"
	"database/sql"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"

	"github.com/lib/pq"
)

type coverageRepository struct {
	db *sql.DB
}

func NewCoverageRepository(db *sql.DB) repository.CoverageRepository {
	return &coverageRepository{db: db}
}

func (r *coverageRepository) GetActiveOffices(ctx context.Context, pickupZoneID, dropoffZoneID int) ([]models.OfficeCoverage, error) {
	query := `SELECT p.id, p.name, o.id, o.destination_id, o.zone_id, p.has_api, p.one_way
	          FROM offices o
	          JOIN providers p ON p.id = o.provider_id
	          WHERE p.active AND o.active AND o.zone_id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array([]int{pickupZoneID, dropoffZoneID}))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offices []models.OfficeCoverage
	for rows.Next() {
		var o models.OfficeCoverage
		if err := rows.Scan(&o.ProviderID, &o.ProviderName, &o.OfficeID, &o.DestinationID,
			&o.ZoneID, &o.HasAPI, &o.OneWay); err != nil {
			return nil, err
		}
		offices = append(offices, o)
	}
	return offices, rows.Err()
}

func (r *coverageRepository) GetProviderLocations(ctx context.Context, officeIDs []int) ([]models.ProviderLocation, error) {
	if len(officeIDs) == 0 {
		return nil, nil
	}
	query := `SELECT office_id, code FROM provider_locations WHERE office_id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(officeIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []models.ProviderLocation
	for rows.Next() {
		var l models.ProviderLocation
		if err := rows.Scan(&l.OfficeID, &l.Code); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}
