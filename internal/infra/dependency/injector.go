// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Chanakan5591/carbonyx/config"
	"github.com/Chanakan5591/carbonyx/internal/application/adapter"
	"github.com/Chanakan5591/carbonyx/internal/application/usecase/activity"
	"github.com/Chanakan5591/carbonyx/internal/application/usecase/emission"
	"github.com/Chanakan5591/carbonyx/internal/application/usecase/offset"
	"github.com/Chanakan5591/carbonyx/internal/infra/server/router"
	"github.com/Chanakan5591/carbonyx/internal/integration/adapters"
	"github.com/Chanakan5591/carbonyx/internal/integration/cache"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/controller"
	"github.com/Chanakan5591/carbonyx/internal/integration/entrypoint/middleware"
	"github.com/Chanakan5591/carbonyx/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// Registry holds every collector served on /metrics.
	Registry *prometheus.Registry
}

type options struct {
	now         func() time.Time
	dbHealth    controller.HealthChecker
	cacheHealth controller.HealthChecker
}

// Option customizes the injector.
type Option func(*options)

// WithClock overrides the clock used as "now" by the rollup endpoint.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithHealthCheckers overrides the database and cache health checks.
func WithHealthCheckers(db, cache controller.HealthChecker) Option {
	return func(o *options) {
		o.dbHealth = db
		o.cacheHealth = cache
	}
}

// NewInjector creates a new dependency injector with all dependencies wired.
// Rollups are cached only when redisClient is set and cfg.Rollup.CacheTTL is positive.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, opts ...Option) *Injector {
	o := &options{now: time.Now}
	for _, opt := range opts {
		opt(o)
	}

	// Collectors live on a per-injector registry served on /metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sqlDB, err := db.DB(); err == nil {
		registry.MustRegister(collectors.NewDBStatsCollector(sqlDB, "carbonyx"))
	}

	// Create repositories
	dataStore := persistence.NewEmissionDataStore(db)
	activityRepo := persistence.NewActivityRecordRepository(db)
	factorRepo := persistence.NewEmissionFactorRepository(db)
	offsetRepo := persistence.NewOffsetPurchaseRepository(db)

	var rollupCache adapter.RollupCache
	if redisClient != nil && cfg.Rollup.CacheTTL > 0 {
		rollupCache = cache.NewInstrumentedRollupCache(
			cache.NewRollupCache(redisClient, cfg.Rollup.CacheTTL),
			registry,
		)
	} else if redisClient != nil {
		slog.Info("Rollup cache disabled by non-positive TTL", "ttl", cfg.Rollup.CacheTTL.String())
	}

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)

	// Create emission use cases
	computeRollupUseCase := emission.NewComputeRollupUseCase(dataStore, rollupCache, emission.RollupConfig{
		Years:    cfg.Rollup.Years,
		Location: cfg.Rollup.Location,
	})
	listFactorsUseCase := emission.NewListEmissionFactorsUseCase(dataStore)

	// Create activity use cases
	recordActivityUseCase := activity.NewRecordActivityUseCase(activityRepo, factorRepo, rollupCache, cfg.Rollup.Location)
	listActivitiesUseCase := activity.NewListActivitiesUseCase(activityRepo, cfg.Rollup.Location)
	deleteActivityUseCase := activity.NewDeleteActivityUseCase(activityRepo, rollupCache)

	// Create offset use cases
	recordOffsetUseCase := offset.NewRecordOffsetUseCase(offsetRepo, rollupCache)
	listOffsetsUseCase := offset.NewListOffsetsUseCase(offsetRepo)

	// Create controllers
	if o.dbHealth == nil {
		o.dbHealth = func(ctx context.Context) bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(ctx) == nil
		}
	}
	if o.cacheHealth == nil && redisClient != nil {
		o.cacheHealth = func(ctx context.Context) bool {
			return redisClient.Ping(ctx).Err() == nil
		}
	}
	healthController := controller.NewHealthController(o.dbHealth, o.cacheHealth)
	emissionController := controller.NewEmissionController(computeRollupUseCase, listFactorsUseCase, o.now)
	activityController := controller.NewActivityController(recordActivityUseCase, listActivitiesUseCase, deleteActivityUseCase)
	offsetController := controller.NewOffsetController(recordOffsetUseCase, listOffsetsUseCase)

	// Create middleware
	writeRateLimiter := middleware.NewRateLimiter(cfg.RateLimit.MaxWrites, cfg.RateLimit.Window)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	httpMetrics := middleware.NewHTTPMetrics(registry)

	r := router.NewRouter(
		healthController,
		emissionController,
		activityController,
		offsetController,
		writeRateLimiter,
		authMiddleware,
		httpMetrics,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)

	return &Injector{
		Config:   cfg,
		DB:       db,
		Router:   r,
		Registry: registry,
	}
}
