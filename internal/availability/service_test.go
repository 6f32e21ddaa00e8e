package availability

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrbroker/carsearch/internal/dispatch"
	"github.com/mcrbroker/carsearch/internal/location"
	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/pricing"
	"github.com/mcrbroker/carsearch/internal/quotation"
	"github.com/mcrbroker/carsearch/internal/selection"
	"github.com/mcrbroker/carsearch/internal/suppliers"
)

type fakeDestinations struct {
	byZone map[int]models.Destination
}

func (f *fakeDestinations) GetByZoneIDs(ctx context.Context, pickupZoneID, dropoffZoneID int) (map[int]models.Destination, error) {
	out := make(map[int]models.Destination)
	for _, id := range []int{pickupZoneID, dropoffZoneID} {
		if d, ok := f.byZone[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

type fakeCoverage struct {
	offices   []models.OfficeCoverage
	locations []models.ProviderLocation
}

func (f *fakeCoverage) GetActiveOffices(ctx context.Context, pickupZoneID, dropoffZoneID int) ([]models.OfficeCoverage, error) {
	return f.offices, nil
}

func (f *fakeCoverage) GetProviderLocations(ctx context.Context, officeIDs []int) ([]models.ProviderLocation, error) {
	return f.locations, nil
}

type fakeCatalog struct {
	models []models.CatalogModel
}

func (f *fakeCatalog) GetModels(ctx context.Context) ([]models.CatalogModel, error) {
	return f.models, nil
}

type fakePaps struct {
	rows []models.PapRow
}

func (f *fakePaps) GetByPickupDate(ctx context.Context, pickupDate string, destinationID int) ([]models.PapRow, error) {
	return f.rows, nil
}

type fakeDebit struct {
	conds []models.DebitCondition
	calls int
}

func (f *fakeDebit) GetConditions(ctx context.Context) ([]models.DebitCondition, error) {
	f.calls++
	return f.conds, nil
}

type fakeNonAPI struct {
	offers []models.Offer
	err    error
	calls  int
}

func (f *fakeNonAPI) FetchOffers(ctx context.Context, pickupZoneID, dropoffZoneID int, pickupAt, dropoffAt time.Time) ([]models.Offer, error) {
	f.calls++
	return f.offers, f.err
}

type fakeAdapter struct {
	offers []models.Offer
	err    error
	calls  int
}

func (f *fakeAdapter) Name() string { return "europcar_group" }

func (f *fakeAdapter) GetAvailability(ctx context.Context, params suppliers.SearchParams) ([]models.Offer, error) {
	f.calls++
	return f.offers, f.err
}

type fixture struct {
	service *Service
	store   *quotation.MemoryStore
	adapter *fakeAdapter
	nonAPI  *fakeNonAPI
	debit   *fakeDebit
}

func newFixture(t *testing.T, mutate ...func(*fixture)) *fixture {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	fx := &fixture{
		store: quotation.NewMemoryStore(time.Hour),
		adapter: &fakeAdapter{offers: []models.Offer{
			{ProviderID: 1, VehicleCategory: "ECON", VehicleName: "Generic", NetRate: 500, TotalDays: 3, Source: models.SourceAPI},
		}},
		nonAPI: &fakeNonAPI{offers: []models.Offer{
			{ProviderID: 28, ProviderName: "Mex", VehicleCategory: "ECON", VehicleName: "Aveo",
				NetRate: 420, TotalDays: 3, ZeroDeductibleNetRate: 120, ZeroDeductiblePublicRate: 180,
				Source: models.SourceNonAPI},
		}},
		debit: &fakeDebit{conds: []models.DebitCondition{{ProviderID: 28, IncrementAmount: 50}}},
	}
	for _, m := range mutate {
		m(fx)
	}

	dests := &fakeDestinations{byZone: map[int]models.Destination{
		5: {ZoneID: 5, DestinationID: 1, CityName: "Cancún", CountryName: "México", DefaultCurrency: "MXN", ExchangeRate: 1},
	}}
	coverage := &fakeCoverage{
		offices: []models.OfficeCoverage{
			{ProviderID: 1, ProviderName: "Europcar", OfficeID: 10, DestinationID: 1, ZoneID: 5, HasAPI: true},
			{ProviderID: 28, ProviderName: "Mex", OfficeID: 40, DestinationID: 1, ZoneID: 5},
		},
		locations: []models.ProviderLocation{{OfficeID: 10, Code: "CUNT01"}},
	}

	registry := suppliers.NewRegistry(suppliers.Group{
		Key: "europcar_group", ProviderIDs: []int{1, 93, 109}, Adapter: fx.adapter,
	})
	dispatcher := dispatch.NewDispatcher(registry, dispatch.Config{Timeout: time.Second}, log)

	fx.service = NewService(
		location.NewResolver(dests, coverage),
		coverage,
		dispatcher,
		fx.nonAPI,
		fx.debit,
		&fakePaps{rows: []models.PapRow{{CategoryName: "ECON", Pap: 250, Valid: true}}},
		selection.NewExpander(&fakeCatalog{models: []models.CatalogModel{
			{VehicleCategory: "ECON", VehicleID: 11, VehicleName: "Versa", VehicleImage: "versa.png"},
		}}),
		pricing.NewEngine(),
		fx.store,
		Config{HomeCountry: "México", HomeCurrency: "MXN", Timezone: time.UTC},
		log,
	)
	return fx
}

func criteria() models.SearchCriteria {
	return models.SearchCriteria{
		PickupZoneID:  5,
		DropoffZoneID: 5,
		PickupDate:    "2026-09-10",
		PickupTime:    "10:00",
		DropoffDate:   "2026-09-13",
		DropoffTime:   "10:00",
		CarWarranty:   models.WarrantyCreditCard,
	}
}

func TestSearch(t *testing.T) {
	t.Run("Full round trip stores a retrievable quotation", func(t *testing.T) {
		fx := newFixture(t)

		result, err := fx.service.Search(context.Background(), criteria())

		require.NoError(t, err)
		require.NotNil(t, result.Quotation)
		assert.NotEmpty(t, result.Quotation.QuotationID)
		assert.Equal(t, 1, result.GroupsQueried)
		assert.Equal(t, 1, result.GroupsSucceeded)

		stored, ok := fx.store.Get(context.Background(), result.Quotation.QuotationID)
		require.True(t, ok)
		assert.Equal(t, result.Quotation.QuotationID, stored.QuotationID)
	})

	t.Run("Winner expands over the catalog with one price", func(t *testing.T) {
		fx := newFixture(t)

		result, err := fx.service.Search(context.Background(), criteria())

		require.NoError(t, err)
		fleet := result.Quotation.Fleet
		// Non-API 420 beats API 500, so the fleet carries the non-API price
		// on the catalog's ECON model.
		require.Len(t, fleet, 1)
		assert.Equal(t, 28, fleet[0].ProviderID)
		assert.Equal(t, "Versa", fleet[0].VehicleName)
		assert.Equal(t, "MXN", fleet[0].Currency)
		assert.Positive(t, fleet[0].PublicRateAmount)
		assert.Positive(t, fleet[0].Total)
	})

	t.Run("Zero deductible searches never touch the live suppliers", func(t *testing.T) {
		fx := newFixture(t)
		c := criteria()
		c.ZeroDeductible = true

		result, err := fx.service.Search(context.Background(), c)

		require.NoError(t, err)
		assert.Zero(t, fx.adapter.calls)
		assert.Equal(t, 1, fx.nonAPI.calls)
		assert.Zero(t, result.GroupsQueried)
		require.Len(t, result.Quotation.Fleet, 1)
		assert.Positive(t, result.Quotation.Fleet[0].RateWithZeroDeductible)
	})

	t.Run("Round trip searches zero the non-API deductible columns", func(t *testing.T) {
		fx := newFixture(t)

		result, err := fx.service.Search(context.Background(), criteria())

		require.NoError(t, err)
		for _, v := range result.Quotation.Fleet {
			assert.Zero(t, v.ZeroDeductibleNetRate)
		}
	})

	t.Run("Debit warranty consults the conditions table", func(t *testing.T) {
		fx := newFixture(t)
		c := criteria()
		c.CarWarranty = models.WarrantyDebitCard

		result, err := fx.service.Search(context.Background(), c)

		require.NoError(t, err)
		assert.Equal(t, 1, fx.debit.calls)
		// Provider 28 is the only debit-accepting provider; its rate carries
		// the increment.
		require.Len(t, result.Quotation.Fleet, 1)
		assert.Equal(t, 470.0, result.Quotation.Fleet[0].NetRate)
	})

	t.Run("Non-API source failure degrades to live offers only", func(t *testing.T) {
		fx := newFixture(t, func(fx *fixture) {
			fx.nonAPI.err = errors.New("db down")
		})

		result, err := fx.service.Search(context.Background(), criteria())

		require.NoError(t, err)
		require.Len(t, result.Quotation.Fleet, 1)
		assert.Equal(t, 1, result.Quotation.Fleet[0].ProviderID)
	})

	t.Run("No offers still yields a stored empty quotation", func(t *testing.T) {
		fx := newFixture(t, func(fx *fixture) {
			fx.adapter.offers = nil
			fx.nonAPI.offers = nil
		})

		result, err := fx.service.Search(context.Background(), criteria())

		require.NoError(t, err)
		assert.Empty(t, result.Quotation.Fleet)
		_, ok := fx.store.Get(context.Background(), result.Quotation.QuotationID)
		assert.True(t, ok)
	})

	t.Run("Unknown zone is a domain error", func(t *testing.T) {
		fx := newFixture(t)
		c := criteria()
		c.PickupZoneID = 99
		c.DropoffZoneID = 99

		_, err := fx.service.Search(context.Background(), c)

		assert.ErrorIs(t, err, models.ErrDestinationNotFound)
	})

	t.Run("Dropoff before pickup is rejected", func(t *testing.T) {
		fx := newFixture(t)
		c := criteria()
		c.DropoffDate = c.PickupDate
		c.DropoffTime = c.PickupTime

		_, err := fx.service.Search(context.Background(), c)

		assert.ErrorIs(t, err, models.ErrDropoffNotAfter)
	})

	t.Run("Validation failures surface before any work", func(t *testing.T) {
		fx := newFixture(t)
		c := criteria()
		c.PickupZoneID = 0

		_, err := fx.service.Search(context.Background(), c)

		var verr models.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Zero(t, fx.adapter.calls)
	})
}
