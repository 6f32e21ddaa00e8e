package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcrbroker/carsearch/internal/models"
	"github.com/mcrbroker/carsearch/internal/repository"
)

const catalogKey = "carsearch:models:by_category:v1"

// Catalog caches the vehicle model catalog, a slow-changing reference
// table read on every search.
type Catalog interface {
	Get(ctx context.Context) ([]models.CatalogModel, bool)
	Set(ctx context.Context, catalog []models.CatalogModel) error
	Close() error
}

type RedisCatalog struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	Port     string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host: "localhost",
		Port: "6379",
		TTL:  10 * time.Minute,
	}
}

func NewRedisCatalog(cfg RedisConfig) (*RedisCatalog, error) {
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

	return &RedisCatalog{client: client, ttl: cfg.TTL}, nil
}

func NewRedisCatalogWithClient(client *redis.Client, ttl time.Duration) *RedisCatalog {
	return &RedisCatalog{client: client, ttl: ttl}
}

func (c *RedisCatalog) Get(ctx context.Context) ([]models.CatalogModel, bool) {
	data, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		return nil, false
	}

	var catalog []models.CatalogModel
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, false
	}
	return catalog, true
}

func (c *RedisCatalog) Set(ctx context.Context, catalog []models.CatalogModel) error {
	data, err := json.Marshal(catalog)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

func (c *RedisCatalog) Close() error {
	return c.client.Close()
}

type NoOpCatalog struct{}

func NewNoOpCatalog() *NoOpCatalog {
	return &NoOpCatalog{}
}

func (c *NoOpCatalog) Get(ctx context.Context) ([]models.CatalogModel, bool) {
	return nil, false
}

func (c *NoOpCatalog) Set(ctx context.Context, catalog []models.CatalogModel) error {
	return nil
}

func (c *NoOpCatalog) Close() error {
	return nil
}

// CachedCatalogRepository reads through the cache before hitting the
// database. Stale reads up to the TTL are acceptable.
type CachedCatalogRepository struct {
	repo  repository.CatalogRepository
	cache Catalog
	log   *slog.Logger
}

func NewCachedCatalogRepository(repo repository.CatalogRepository, cache Catalog, log *slog.Logger) *CachedCatalogRepository {
	return &CachedCatalogRepository{repo: repo, cache: cache, log: log}
}

func (r *CachedCatalogRepository) GetModels(ctx context.Context) ([]models.CatalogModel, error) {
	if catalog, ok := r.cache.Get(ctx); ok {
		return catalog, nil
	}

	catalog, err := r.repo.GetModels(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, catalog); err != nil {
		r.log.Warn("catalog cache set failed", "err", err)
	}
	return catalog, nil
}
