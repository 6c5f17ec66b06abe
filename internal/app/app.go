// Package app wires together all dependencies and runs the storefront backend.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikii-john/e-commerce-backend/internal/config"
	"github.com/mikii-john/e-commerce-backend/internal/event"
	handler "github.com/mikii-john/e-commerce-backend/internal/handler/http"
	"github.com/mikii-john/e-commerce-backend/internal/postgrest"
	"github.com/mikii-john/e-commerce-backend/internal/repository"
	memoryrepo "github.com/mikii-john/e-commerce-backend/internal/repository/memory"
	pgrepo "github.com/mikii-john/e-commerce-backend/internal/repository/postgrest"
	"github.com/mikii-john/e-commerce-backend/internal/repository/rediscache"
	"github.com/mikii-john/e-commerce-backend/internal/service"
	"github.com/mikii-john/e-commerce-backend/pkg/database"
	"github.com/mikii-john/e-commerce-backend/pkg/health"
	"github.com/mikii-john/e-commerce-backend/pkg/httpclient"
	pkgkafka "github.com/mikii-john/e-commerce-backend/pkg/kafka"
)

const serviceName = "storefront-backend"

// App holds the running components of the storefront backend.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
// The repository implementation is chosen here, once: either the remote
// PostgREST-backed store or the in-memory seed catalogue.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app := &App{cfg: cfg, logger: logger}

	retry := postgrest.RetryOptions{MaxAttempts: cfg.RetryMaxAttempts, Delay: cfg.RetryDelay}

	var productRepo repository.ProductRepository
	var orderRepo repository.OrderRepository

	if cfg.UseRemoteStore {
		base := httpclient.New(httpclient.DefaultConfig())
		breaker := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("store"), logger)
		storeClient := postgrest.NewClient(postgrest.Config{
			BaseURL: cfg.StoreURL,
			APIKey:  cfg.StoreAnonKey,
		}, breaker, logger)

		pr := pgrepo.NewProductRepository(storeClient, retry, logger)
		productRepo = pr
		orderRepo = pgrepo.NewOrderRepository(storeClient, retry, logger)

		// Probe the store at startup. A failure is logged but not fatal:
		// the service still serves requests and reports the store through
		// the readiness endpoint.
		if err := pr.Ping(ctx); err != nil {
			logger.Warn("store connection check failed, continuing",
				slog.String("store_url", cfg.StoreURL),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Info("connected to remote store", slog.String("store_url", cfg.StoreURL))
		}
	} else {
		productRepo = memoryrepo.NewProductRepository(memoryrepo.SeedProducts())
		orderRepo = memoryrepo.NewOrderRepository()
		logger.Info("using in-memory catalogue", slog.Int("products", len(memoryrepo.SeedProducts())))
	}

	if cfg.RedisEnabled {
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		app.rdb = rdb
		productRepo = rediscache.NewProductRepository(productRepo, rdb, cfg.CacheTTL, logger)
		logger.Info("product cache enabled",
			slog.String("addr", cfg.RedisAddr()),
			slog.Duration("ttl", cfg.CacheTTL),
		)
	}

	var publisher service.EventPublisher = event.NoopPublisher{}
	if cfg.KafkaEnabled {
		kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
		app.producer = pkgkafka.NewProducer(kafkaCfg, logger)
		publisher = event.NewProducer(app.producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	catalog := service.NewCatalogService(productRepo, logger)
	orders := service.NewOrderService(orderRepo, productRepo, publisher, logger)

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("store", productRepo.Ping)
	if app.rdb != nil {
		healthHandler.RegisterNonCritical("redis", func(ctx context.Context) error {
			return app.rdb.Ping(ctx).Err()
		})
	}
	if app.producer != nil {
		healthHandler.RegisterNonCritical("kafka", app.producer.Ping)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:     catalog,
		Orders:      orders,
		Health:      healthHandler,
		Logger:      logger,
		CORSOrigin:  cfg.CORSOrigin,
		ServiceName: serviceName,
	})

	app.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
