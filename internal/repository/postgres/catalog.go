package postgres

import (
	"context"
	"database/sql"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"
)

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) repository.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) GetModels(ctx context.Context) ([]models.CatalogModel, error) {
	query := `SELECT c.name, m.name, COALESCE(m.image, ''), m.id
	          FROM vehicle_models m
	          JOIN vehicle_categories c ON c.id = m.category_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CatalogModel
	for rows.Next() {
		var m models.CatalogModel
		if err := rows.Scan(&m.VehicleCategory, &m.VehicleName, &m.VehicleImage, &m.VehicleID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
