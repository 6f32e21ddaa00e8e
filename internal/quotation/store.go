package quotation

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcrbroker/carsearch/internal/models"
)

// DefaultTTL is how long a stored quotation stays retrievable: 7 days.
const DefaultTTL = 10080 * time.Minute

const keyPrefix = "carsearch:quotation:"

// Store persists quotations by id for the booking flow. A stored
// quotation is immutable; Get reports absence, never an error, once the
// TTL has passed.
type Store interface {
	Put(ctx context.Context, q *models.Quotation) error
	Get(ctx context.Context, id string) (*models.Quotation, bool)
	Close() error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, q *models.Quotation) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, keyPrefix+q.QuotationID, data, s.ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Quotation, bool) {
	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}
	var q models.Quotation
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, false
	}
	return &q, true
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore keeps quotations in process memory with the same TTL
// semantics, for tests and single-node setups without redis.
type MemoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(ctx context.Context, q *models.Quotation) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[q.QuotationID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Quotation, bool) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || s.now().After(entry.expiresAt) {
		return nil, false
	}
	var q models.Quotation
	if err := json.Unmarshal(entry.data, &q); err != nil {
		return nil, false
	}
	return &q, true
}

func (s *MemoryStore) Close() error {
	return nil
}
