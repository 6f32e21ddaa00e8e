package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"
)

type debitRepository struct {
	db *sql.DB
}

func NewDebitRepository(db *sql.DB) repository.DebitRepository {
	return &debitRepository{db: db}
}

func (r *debitRepository) GetConditions(ctx context.Context) ([]models.DebitCondition, error) {
	query := `SELECT d.provider_id, COALESCE(d.categories, ''), COALESCE(d.increment_amount, 0), d.accepts_downtown
	          FROM debit_card_conditions d
	          JOIN providers p ON p.id = d.provider_id
	          WHERE d.active AND p.active`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DebitCondition
	for rows.Next() {
		var cond models.DebitCondition
		var cats string
		if err := rows.Scan(&cond.ProviderID, &cats, &cond.IncrementAmount, &cond.AcceptsDowntown); err != nil {
			return nil, err
		}
		cond.Categories = splitCategories(cats)
		out = append(out, cond)
	}
	return out, rows.Err()
}

// splitCategories parses the comma-separated allow-list; an empty result
// means every category is allowed.
func splitCategories(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
