package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrbroker/carsearch/internal/availability"
	"github.com/mcrbroker/carsearch/internal/dispatch"
	"github.com/mcrbroker/carsearch/internal/location"
	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/pricing"
	"github.com/mcrbroker/carsearch/internal/quotation"
	"github.com/mcrbroker/carsearch/internal/selection"
	"github.com/mcrbroker/carsearch/internal/suppliers"
)

type stubDestinations struct{}

func (stubDestinations) GetByZoneIDs(ctx context.Context, pickupZoneID, dropoffZoneID int) (map[int]models.Destination, error) {
	d := models.Destination{ZoneID: 5, DestinationID: 1, CityName: "Cancún", CountryName: "México", DefaultCurrency: "MXN"}
	return map[int]models.Destination{5: d}, nil
}

type stubCoverage struct{}

func (stubCoverage) GetActiveOffices(ctx context.Context, pickupZoneID, dropoffZoneID int) ([]models.OfficeCoverage, error) {
	return []models.OfficeCoverage{
		{ProviderID: 28, ProviderName: "Mex", OfficeID: 40, DestinationID: 1, ZoneID: 5},
	}, nil
}

func (stubCoverage) GetProviderLocations(ctx context.Context, officeIDs []int) ([]models.ProviderLocation, error) {
	return nil, nil
}

type stubCatalog struct{}

func (stubCatalog) GetModels(ctx context.Context) ([]models.CatalogModel, error) { return nil, nil }

type stubPaps struct{}

func (stubPaps) GetByPickupDate(ctx context.Context, pickupDate string, destinationID int) ([]models.PapRow, error) {
	return nil, nil
}

type stubDebit struct{}

func (stubDebit) GetConditions(ctx context.Context) ([]models.DebitCondition, error) {
	return nil, nil
}

type stubNonAPI struct{}

func (stubNonAPI) FetchOffers(ctx context.Context, pickupZoneID, dropoffZoneID int, pickupAt, dropoffAt time.Time) ([]models.Offer, error) {
	return []models.Offer{
		{ProviderID: 28, ProviderName: "Mex", VehicleCategory: "ECON", VehicleName: "Aveo",
			NetRate: 420, TotalDays: 3, Source: models.SourceNonAPI},
	}, nil
}

func newTestHandler(t *testing.T) (*SearchHandler, quotation.Store) {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	store := quotation.NewMemoryStore(time.Hour)

	dispatcher := dispatch.NewDispatcher(suppliers.NewRegistry(), dispatch.Config{Timeout: time.Second}, log)
	service := availability.NewService(
		location.NewResolver(stubDestinations{}, stubCoverage{}),
		stubCoverage{},
		dispatcher,
		stubNonAPI{},
		stubDebit{},
		stubPaps{},
		selection.NewExpander(stubCatalog{}),
		pricing.NewEngine(),
		store,
		availability.Config{HomeCountry: "México", HomeCurrency: "MXN", Timezone: time.UTC},
		log,
	)
	return NewSearchHandler(service, store), store
}

func doSearch(t *testing.T, h *SearchHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cars/search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Search(e.NewContext(req, rec)))
	return rec
}

const validBody = `{
	"pickup_zone_id": 5,
	"dropoff_zone_id": 5,
	"pickup_date": "2026-09-10",
	"pickup_time": "10:00",
	"dropoff_date": "2026-09-13",
	"dropoff_time": "10:00",
	"car_warranty": "credit_card"
}`

func TestSearchEndpoint(t *testing.T) {
	t.Run("Returns the stored quotation with metadata", func(t *testing.T) {
		h, store := newTestHandler(t)

		rec := doSearch(t, h, validBody)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Quotation)
		assert.Equal(t, 1, resp.Metadata.TotalResults)
		assert.NotEmpty(t, resp.Quotation.QuotationID)

		_, ok := store.Get(context.Background(), resp.Quotation.QuotationID)
		assert.True(t, ok)
	})

	t.Run("Validation failure is a 400", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := doSearch(t, h, `{"pickup_zone_id": 0}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "validation_error", resp.Error)
	})

	t.Run("Unknown zone is a 422", func(t *testing.T) {
		h, _ := newTestHandler(t)

		body := strings.Replace(validBody, `"pickup_zone_id": 5`, `"pickup_zone_id": 9`, 1)
		body = strings.Replace(body, `"dropoff_zone_id": 5`, `"dropoff_zone_id": 9`, 1)
		rec := doSearch(t, h, body)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "domain_error", resp.Error)
	})

	t.Run("Malformed body is a 400", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rec := doSearch(t, h, `{"pickup_zone_id": `)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetQuotation(t *testing.T) {
	t.Run("Known id", func(t *testing.T) {
		h, store := newTestHandler(t)
		q := &models.Quotation{QuotationID: "q-1"}
		require.NoError(t, store.Put(context.Background(), q))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/v1/quotations/:id")
		c.SetParamNames("id")
		c.SetParamValues("q-1")

		require.NoError(t, h.GetQuotation(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var got models.Quotation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "q-1", got.QuotationID)
	})

	t.Run("Unknown id is a 404", func(t *testing.T) {
		h, _ := newTestHandler(t)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/api/v1/quotations/:id")
		c.SetParamNames("id")
		c.SetParamValues("missing")

		require.NoError(t, h.GetQuotation(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "not_found", resp.Error)
	})
}

func TestHealthHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, HealthHandler(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
