package main

import (
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mcrbroker/carsearch/internal/availability"
	"github.com/mcrbroker/carsearch/internal/cache"
	"github.com/mcrbroker/carsearch/internal/dispatch"
	"github.com/mcrbroker/carsearch/internal/handler"
	"github.com/mcrbroker/carsearch/internal/location"
	"github.com/mcrbroker/carsearch/internal/pricing"
	"github.com/mcrbroker/carsearch/internal/quotation"
	"github.com/mcrbroker/carsearch/internal/ratelimit"
	"github.com/mcrbroker/carsearch/internal/repository/postgres"
	"github.com/mcrbroker/carsearch/internal/selection"
	"github.com/mcrbroker/carsearch/internal/suppliers"
)

type Config struct {
	Port            string
	DatabaseURL     string
	CacheEnabled    bool
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	CatalogTTL      time.Duration
	QuotationTTL    time.Duration
	DispatchTimeout time.Duration
	AdapterTimeout  time.Duration
	HomeCountry     string
	HomeCurrency    string
	Timezone        string
	LogFormat       string
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	initLogger(cfg.LogFormat)
	log := slog.Default()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	store := postgres.NewStore(db)

	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Error("invalid timezone", "tz", cfg.Timezone, "err", err)
		os.Exit(1)
	}

	registry := buildRegistry(cfg, log)
	log.Info("initialized supplier groups", "count", len(registry.Groups()))

	rateLimiter := ratelimit.NewGroupLimiterWithDefaults()
	for _, g := range registry.Groups() {
		rateLimiter.SetGroupLimit(g.Key, 10, 20)
	}

	dispatcher := dispatch.NewDispatcher(registry, dispatch.Config{
		Timeout:     cfg.DispatchTimeout,
		RateLimiter: rateLimiter,
	}, log)

	var catalogCache cache.Catalog
	var quotationStore quotation.Store
	if cfg.CacheEnabled {
		redisCatalog, err := cache.NewRedisCatalog(cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			TTL:      cfg.CatalogTTL,
		})
		if err != nil {
			log.Error("failed to connect to redis", "err", err)
			os.Exit(1)
		}
		catalogCache = redisCatalog

		redisStore, err := quotation.NewRedisStore(quotation.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			TTL:      cfg.QuotationTTL,
		})
		if err != nil {
			log.Error("failed to connect to redis", "err", err)
			os.Exit(1)
		}
		quotationStore = redisStore
		log.Info("redis enabled", "host", cfg.RedisHost+":"+cfg.RedisPort, "quotation_ttl", cfg.QuotationTTL)
	} else {
		catalogCache = cache.NewNoOpCatalog()
		quotationStore = quotation.NewMemoryStore(cfg.QuotationTTL)
		log.Info("redis disabled, using in-memory quotation store")
	}

	resolver := location.NewResolver(store, store)
	expander := selection.NewExpander(cache.NewCachedCatalogRepository(store, catalogCache, log))
	engine := pricing.NewEngine()

	service := availability.NewService(
		resolver, store, dispatcher, store, store, store,
		expander, engine, quotationStore,
		availability.Config{
			HomeCountry:  cfg.HomeCountry,
			HomeCurrency: cfg.HomeCurrency,
			Timezone:     tz,
		}, log)

	searchHandler := handler.NewSearchHandler(service, quotationStore)

	api := e.Group("/api/v1")
	api.POST("/cars/search", searchHandler.Search)
	api.GET("/quotations/:id", searchHandler.GetQuotation)
	e.GET("/health", handler.HealthHandler)

	log.Info("starting availability server", "port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// Provider groups mirror the supplier logins in production: several
// brands can sit behind one adapter.
var defaultGroups = []struct {
	key       string
	providers []int
}{
	{"europcar_group", []int{1, 93, 109}},
	{"america_group", []int{32}},
	{"infinity_group", []int{106}},
	{"mex_group", []int{28}},
	{"niza_cars", []int{126}},
}

func buildRegistry(cfg Config, log *slog.Logger) *suppliers.Registry {
	var groups []suppliers.Group
	for _, g := range defaultGroups {
		envKey := "SUPPLIER_" + strings.ToUpper(g.key)
		baseURL := getEnv(envKey+"_URL", "")
		if baseURL == "" {
			log.Warn("supplier group has no base url, skipping", "group", g.key)
			continue
		}
		apiKey := getEnv(envKey+"_API_KEY", "")
		groups = append(groups, suppliers.Group{
			Key:         g.key,
			ProviderIDs: g.providers,
			Adapter:     suppliers.NewHTTPAdapter(g.key, baseURL, apiKey, cfg.AdapterTimeout),
		})
	}
	return suppliers.NewRegistry(groups...)
}

func initLogger(format string) {
	var h slog.Handler
	if strings.ToLower(format) == "json" {
		h = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		h = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(h))
}

func loadConfig() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     getEnv("DATABASE_URL", "postgres://localhost/carsearch?sslmode=disable"),
		CacheEnabled:    getEnvBool("CACHE_ENABLED", true),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogTTL:      getEnvDuration("CATALOG_TTL", 10*time.Minute),
		QuotationTTL:    getEnvDuration("QUOTATION_TTL", quotation.DefaultTTL),
		DispatchTimeout: getEnvDuration("DISPATCH_TIMEOUT", 15*time.Second),
		AdapterTimeout:  getEnvDuration("ADAPTER_TIMEOUT", 12*time.Second),
		HomeCountry:     getEnv("HOME_COUNTRY", "México"),
		HomeCurrency:    getEnv("HOME_CURRENCY", "MXN"),
		Timezone:        getEnv("TIMEZONE", "America/Merida"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
