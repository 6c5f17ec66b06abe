package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mikii-john/e-commerce-backend/internal/service"
	"github.com/mikii-john/e-commerce-backend/pkg/health"
	"github.com/mikii-john/e-commerce-backend/pkg/middleware"
)

// RouterConfig carries the dependencies and settings for the HTTP router.
type RouterConfig struct {
	Catalog     *service.CatalogService
	Orders      *service.OrderService
	Health      *health.Handler
	Logger      *slog.Logger
	CORSOrigin  string
	ServiceName string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	corsCfg := middleware.DefaultCORSConfig()
	if cfg.CORSOrigin != "" {
		corsCfg.AllowedOrigins = []string{cfg.CORSOrigin}
	}

	// Global middleware
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	// Health and metrics endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/api/health", cfg.Health.StatusHandler())
	r.Handle("/metrics", promhttp.Handler())

	productHandler := NewProductHandler(cfg.Catalog, cfg.Logger)
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", productHandler.ListProducts)
		r.Get("/category/{category}", productHandler.ListProductsByCategory)
		r.Get("/{id}", productHandler.GetProduct)
	})

	orderHandler := NewOrderHandler(cfg.Orders, cfg.Logger)
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", orderHandler.ListOrders)
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/{id}", orderHandler.GetOrder)
	})

	return r
}
