package postgres

import (
	"context"
	"database/sql"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"

	"github.com/lib/pq"
)

type destinationRepository struct {
	db *sql.DB
}

func NewDestinationRepository(db *sql.DB) repository.DestinationRepository {
	return &destinationRepository{db: db}
}

func (r *destinationRepository) GetByZoneIDs(ctx context.Context, pickupZoneID, dropoffZoneID int) (map[int]models.Destination, error) {
	query := `SELECT z.id, z.description, d.city_name, d.country_name, d.default_currency,
	                 COALESCE(d.exchange_rate, 1.0), d.id, d.code
	          FROM zones z
	          JOIN destinations d ON d.id = z.destination_id
	          WHERE z.id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array([]int{pickupZoneID, dropoffZoneID}))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]models.Destination, 2)
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ZoneID, &d.Zone, &d.CityName, &d.CountryName, &d.DefaultCurrency,
			&d.ExchangeRate, &d.DestinationID, &d.DestinationCode); err != nil {
			return nil, err
		}
		out[d.ZoneID] = d
	}
	return out, rows.Err()
}
