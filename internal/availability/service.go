package availability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcrbroker/carsearch/internal/dispatch"
	"github.com/mcrbroker/carsearch/internal/filter"
	"github.com/mcrbroker/carsearch/internal/location"
	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/pricing"
	"github.com/mcrbroker/carsearch/internal/quotation"
	"github.com/mcrbroker/carsearch/internal/repository"
	"github.com/mcrbroker/carsearch/internal/selection"
	"github.com/mcrbroker/carsearch/internal/suppliers"
)

// Config is the market context the service prices in.
type Config struct {
	// HomeCountry rentals are quoted in HomeCurrency; elsewhere the
	// destination's default currency applies.
	HomeCountry  string
	HomeCurrency string
	Timezone     *time.Location
}

// Service runs one search end to end: resolve locations, fan out to
// supplier groups and the non-API source, select one winner per category,
// expand over the catalog, price, and store the quotation.
type Service struct {
	resolver   *location.Resolver
	coverage   repository.CoverageRepository
	dispatcher *dispatch.Dispatcher
	nonAPI     repository.NonAPIOfferRepository
	debit      repository.DebitRepository
	paps       repository.PapRepository
	expander   *selection.Expander
	engine     *pricing.Engine
	store      quotation.Store
	cfg        Config
	log        *slog.Logger
}

// Result pairs the stored quotation with fan-out metadata.
type Result struct {
	Quotation       *models.Quotation
	GroupsQueried   int
	GroupsSucceeded int
	GroupsFailed    int
	FailedGroups    []string
}

func NewService(
	resolver *location.Resolver,
	coverage repository.CoverageRepository,
	dispatcher *dispatch.Dispatcher,
	nonAPI repository.NonAPIOfferRepository,
	debit repository.DebitRepository,
	paps repository.PapRepository,
	expander *selection.Expander,
	engine *pricing.Engine,
	store quotation.Store,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	return &Service{
		resolver:   resolver,
		coverage:   coverage,
		dispatcher: dispatcher,
		nonAPI:     nonAPI,
		debit:      debit,
		paps:       paps,
		expander:   expander,
		engine:     engine,
		store:      store,
		cfg:        cfg,
		log:        log,
	}
}

func (s *Service) Search(ctx context.Context, criteria models.SearchCriteria) (*Result, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	pickupAt, err := criteria.PickupAt(s.cfg.Timezone)
	if err != nil {
		return nil, err
	}
	dropoffAt, err := criteria.DropoffAt(s.cfg.Timezone)
	if err != nil {
		return nil, err
	}
	if !dropoffAt.After(pickupAt) {
		return nil, models.ErrDropoffNotAfter
	}

	res, err := s.resolver.Resolve(ctx, criteria)
	if err != nil {
		return nil, err
	}

	merged, dres, err := s.collectOffers(ctx, criteria, res, pickupAt, dropoffAt)
	if err != nil {
		return nil, err
	}

	winners := selection.PickWinners(merged, res.HasAPIByProvider())

	expanded, err := s.expander.Expand(ctx, winners)
	if err != nil {
		return nil, err
	}

	if criteria.CarWarranty == models.WarrantyDebitCard {
		conds, err := s.debit.GetConditions(ctx)
		if err != nil {
			return nil, err
		}
		expanded = pricing.ApplyDebitFilter(expanded, conds)
	}

	papRows, err := s.paps.GetByPickupDate(ctx, criteria.PickupDate, res.Pickup.DestinationID)
	if err != nil {
		return nil, err
	}

	currency := s.cfg.HomeCurrency
	rate := 1.0
	if res.Pickup.CountryName != s.cfg.HomeCountry {
		// Foreign rentals stay in the destination's own currency.
		currency = res.Pickup.DefaultCurrency
	}

	fleet := s.engine.Anchor(expanded, pricing.PapByCategory(papRows))
	fleet = s.engine.Finalize(fleet, pricing.Context{
		Currency:       currency,
		ExchangeRate:   rate,
		HomeCurrency:   s.cfg.HomeCurrency,
		IsPlatinum:     criteria.Platinum,
		ZeroDeductible: criteria.ZeroDeductible,
	})

	fleet, filters := filter.Apply(fleet, criteria.Filters)

	q := &models.Quotation{
		QuotationID: uuid.NewString(),
		Criteria:    criteria,
		Fleet:       fleet,
		Filters:     filters,
	}
	if err := s.store.Put(ctx, q); err != nil {
		return nil, err
	}

	result := &Result{Quotation: q}
	if dres != nil {
		result.GroupsQueried = dres.GroupsQueried
		result.GroupsSucceeded = dres.GroupsSucceeded
		result.GroupsFailed = dres.GroupsFailed
		result.FailedGroups = dres.FailedGroups
	}
	return result, nil
}

// collectOffers gathers the merged offer list from both sources. In
// zero-deductible mode only the non-API source is consulted: that
// coverage is looked up, never priced dynamically.
func (s *Service) collectOffers(
	ctx context.Context,
	criteria models.SearchCriteria,
	res *location.Resolution,
	pickupAt, dropoffAt time.Time,
) ([]models.Offer, *dispatch.Result, error) {
	if criteria.ZeroDeductible {
		if !res.SameDestination() {
			return []models.Offer{}, nil, nil
		}
		offers := s.fetchNonAPI(ctx, criteria, pickupAt, dropoffAt)
		return keepZeroDeductible(offers), nil, nil
	}

	locations, err := s.coverage.GetProviderLocations(ctx, suppliers.APIOfficeIDs(res.Offices))
	if err != nil {
		return nil, nil, err
	}
	params := suppliers.BuildSearchParams(res.Offices, locations, pickupAt, dropoffAt, s.log)

	dres := s.dispatcher.Dispatch(ctx, params)
	merged := dres.Offers

	if res.SameDestination() {
		offers := s.fetchNonAPI(ctx, criteria, pickupAt, dropoffAt)
		for i := range offers {
			offers[i].ZeroDeductibleNetRate = 0
			offers[i].ZeroDeductiblePublicRate = 0
		}
		merged = append(merged, offers...)
	}

	return merged, dres, nil
}

// fetchNonAPI treats a failing aggregate query the same way as a failing
// supplier group: logged, empty contribution.
func (s *Service) fetchNonAPI(ctx context.Context, criteria models.SearchCriteria, pickupAt, dropoffAt time.Time) []models.Offer {
	offers, err := s.nonAPI.FetchOffers(ctx, criteria.PickupZoneID, criteria.DropoffZoneID, pickupAt, dropoffAt)
	if err != nil {
		s.log.Error("non-api offer source failed", "err", err)
		return nil
	}
	return offers
}

// keepZeroDeductible drops rows without a precomputed zero-deductible
// rate; providers without those columns cannot serve the coverage.
func keepZeroDeductible(offers []models.Offer) []models.Offer {
	out := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.ZeroDeductibleNetRate > 0 {
			out = append(out, o)
		}
	}
	return out
}
