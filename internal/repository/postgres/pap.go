package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"
)

type papRepository struct {
	db *sql.DB
}

func NewPapRepository(db *sql.DB) repository.PapRepository {
	return &papRepository{db: db}
}

// GetByPickupDate returns the seasonal PAP rows for the destination. When
// no season covers the pickup date, it falls back to category defaults;
// defaults are stored in home-market currency, so outside the home country
// they are divided by a fixed factor.
func (r *papRepository) GetByPickupDate(ctx context.Context, pickupDate string, destinationID int) ([]models.PapRow, error) {
	query := `SELECT c.name, p.pap
	          FROM vehicle_categories c
	          LEFT JOIN pap_rates p ON p.category_id = c.id AND p.destination_id = $1
	          LEFT JOIN seasons s ON s.id = p.season_id
	          WHERE $2::date BETWEEN s.starts_on AND s.ends_on
	          ORDER BY c.name`
	rows, err := r.db.QueryContext(ctx, query, destinationID, pickupDate)
	if err != nil {
		return nil, err
	}
	paps, err := scanPapRows(rows)
	if err != nil {
		return nil, err
	}
	if len(paps) > 0 {
		return paps, nil
	}
	return r.getDefaults(ctx, destinationID)
}

func (r *papRepository) getDefaults(ctx context.Context, destinationID int) ([]models.PapRow, error) {
	var country string
	err := r.db.QueryRowContext(ctx, `SELECT country_name FROM destinations WHERE id = $1`, destinationID).Scan(&country)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	factor := 1.0
	norm := strings.ReplaceAll(strings.ToLower(country), "méxico", "mexico")
	if norm != "mexico" {
		factor = 18.0
	}

	query := `SELECT c.name, COALESCE(c.pap_default, 0) / $1
	          FROM vehicle_categories c
	          ORDER BY c.name`
	rows, err := r.db.QueryContext(ctx, query, factor)
	if err != nil {
		return nil, err
	}
	return scanPapRows(rows)
}

func scanPapRows(rows *sql.Rows) ([]models.PapRow, error) {
	defer rows.Close()

	var out []models.PapRow
	for rows.Next() {
		var row models.PapRow
		var pap sql.NullFloat64
		if err := rows.Scan(&row.CategoryName, &pap); err != nil {
			return nil, err
		}
		row.Pap = pap.Float64
		row.Valid = pap.Valid
		out = append(out, row)
	}
	return out, rows.Err()
}
