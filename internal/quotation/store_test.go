package quotation

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcrbroker/carsearch/internal/models"
)

func sampleQuotation(id string) *models.Quotation {
	return &models.Quotation{
		QuotationID: id,
		Criteria: models.SearchCriteria{
			PickupZoneID:  5,
			DropoffZoneID: 5,
			PickupDate:    "2026-09-10",
			PickupTime:    "10:00",
			DropoffDate:   "2026-09-13",
			DropoffTime:   "10:00",
			CarWarranty:   models.WarrantyCreditCard,
		},
		Fleet: []models.PricedOffer{
			{
				Offer:            models.Offer{ProviderID: 1, VehicleCategory: "ECON", VehicleName: "Aveo", NetRate: 500},
				Currency:         "MXN",
				PublicRateAmount: 933,
				Total:            2799,
			},
		},
		Filters: models.FleetFilters{
			Categories: []string{"ECON"},
			Providers:  []string{"Europcar"},
			PriceRange: models.PriceRange{Min: 933, Max: 933},
		},
	}
}

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, ttl)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	t.Run("Get returns what Put stored", func(t *testing.T) {
		store, _ := newTestRedisStore(t, time.Hour)
		ctx := context.Background()
		q := sampleQuotation("q-1")

		require.NoError(t, store.Put(ctx, q))

		got, ok := store.Get(ctx, "q-1")
		require.True(t, ok)
		assert.Equal(t, q, got)
	})

	t.Run("Get misses after the TTL", func(t *testing.T) {
		store, mr := newTestRedisStore(t, time.Minute)
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, sampleQuotation("q-2")))
		mr.FastForward(2 * time.Minute)

		_, ok := store.Get(ctx, "q-2")
		assert.False(t, ok)
	})

	t.Run("Unknown id is a miss, not an error", func(t *testing.T) {
		store, _ := newTestRedisStore(t, time.Hour)

		got, ok := store.Get(context.Background(), "nope")
		assert.False(t, ok)
		assert.Nil(t, got)
	})
}

func TestMemoryStore(t *testing.T) {
	t.Run("Get returns what Put stored", func(t *testing.T) {
		store := NewMemoryStore(time.Hour)
		ctx := context.Background()
		q := sampleQuotation("q-1")

		require.NoError(t, store.Put(ctx, q))

		got, ok := store.Get(ctx, "q-1")
		require.True(t, ok)
		assert.Equal(t, q, got)
	})

	t.Run("Entries expire", func(t *testing.T) {
		store := NewMemoryStore(time.Minute)
		current := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return current }

		require.NoError(t, store.Put(context.Background(), sampleQuotation("q-2")))

		current = current.Add(2 * time.Minute)
		_, ok := store.Get(context.Background(), "q-2")
		assert.False(t, ok)
	})

	t.Run("Zero TTL falls back to the default", func(t *testing.T) {
		store := NewMemoryStore(0)
		assert.Equal(t, DefaultTTL, store.ttl)
	})
}
