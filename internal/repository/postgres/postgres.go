package postgres

import (
	"database/sql"

	"github.com/mcrbroker/carsearch/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles every reference-data repository over one connection pool.
type Store struct {
	db *sql.DB
	repository.DestinationRepository
	repository.CoverageRepository
	repository.CatalogRepository
	repository.PapRepository
	repository.DebitRepository
	repository.NonAPIOfferRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		DestinationRepository: NewDestinationRepository(db),
		CoverageRepository:    NewCoverageRepository(db),
		CatalogRepository:     NewCatalogRepository(db),
		PapRepository:         NewPapRepository(db),
		DebitRepository:       NewDebitRepository(db),
		NonAPIOfferRepository: NewNonAPIOfferRepository(db),
	}
}
