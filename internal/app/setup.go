// Package app wires the catalog: storage, decorators, transports and servers.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/internal/migrations"
	"github.com/abgdnv/productcatalog/internal/product"
	"github.com/abgdnv/productcatalog/internal/repository"
	"github.com/abgdnv/productcatalog/internal/store"
	"github.com/abgdnv/productcatalog/internal/transport/page"
	"github.com/abgdnv/productcatalog/internal/transport/rest"
	"github.com/abgdnv/productcatalog/internal/validation"
	"github.com/abgdnv/productcatalog/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/productcatalog/pkg/config"
	"github.com/abgdnv/productcatalog/pkg/messaging"
	"github.com/abgdnv/productcatalog/pkg/nats"
	"github.com/abgdnv/productcatalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// ServiceName is used for the config env prefix, the tracer resource and the gRPC health service.
const ServiceName = "catalog"

type Dependencies struct {
	Products repository.Repository[product.Product]
	Binder   *validation.Binder
	Renderer *page.Renderer
	Logger   *slog.Logger
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// NewDependencies builds the transport dependencies around an already decorated repository.
func NewDependencies(products repository.Repository[product.Product], logger *slog.Logger) (*Dependencies, error) {
	renderer, err := page.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}
	return &Dependencies{
		Products: products,
		Binder:   validation.NewBinder(validation.NewValidator()),
		Renderer: renderer,
		Logger:   logger,
	}, nil
}

// SetupDependencies opens the configured storage, stacks the circuit breaker and event
// publishing on top of it and builds the transport dependencies.
// The returned function releases the storage connections.
func SetupDependencies(ctx context.Context, cfg *config.Config, publisher messaging.Publisher, logger *slog.Logger) (*Dependencies, func(), error) {
	repo, closeStore, err := SetupStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	if cfg.CircuitBreaker.Enabled {
		repo = repository.NewCircuitBreaker(repo, cfg.CircuitBreaker, logger)
	}
	repo = repository.NewPublishing(repo, publisher, ProductEvents(), logger)

	deps, err := NewDependencies(repo, logger)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return deps, closeStore, nil
}

// SetupStore opens the storage backend selected by cfg.Driver, applying migrations first when asked to.
func SetupStore(ctx context.Context, cfg pkgconfig.DatabaseConfig, logger *slog.Logger) (repository.Repository[product.Product], func(), error) {
	if cfg.Driver == pkgconfig.DriverMemory {
		logger.Warn("Using in-memory storage, data will not survive a restart")
		return store.NewInMemoryStore(), func() {}, nil
	}

	if cfg.Migrate {
		if err := migrations.Up(cfg.URL); err != nil {
			return nil, nil, err
		}
		logger.Info("Database migrations applied")
	}

	switch cfg.Driver {
	case pkgconfig.DriverGorm:
		db, closeDB, err := bootstrap.NewGormDB(ctx, cfg.URL, cfg.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open gorm database: %w", err)
		}
		logger.Info("Successfully connected to the database!", "driver", cfg.Driver)
		return store.NewGormStore[product.Product](db), func() { _ = closeDB() }, nil
	default:
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.URL, cfg.Timeout)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
		}
		logger.Info("Successfully connected to the database!", "driver", cfg.Driver)
		return store.NewPgStore(dbPool), dbPool.Close, nil
	}
}

// SetupPublisher connects to JetStream when NATS is enabled and makes sure the product stream exists.
// Otherwise events are dropped. The returned function drains the connection.
func SetupPublisher(ctx context.Context, cfg pkgconfig.NATSConfig, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Enabled {
		return messaging.NopPublisher{}, func() {}, nil
	}
	nc, err := nats.NewClient(cfg.Url, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := nats.NewJetStreamContext(nc) // closes nc on failure
	if err != nil {
		return nil, nil, err
	}
	if err = nats.EnsureStream(ctx, js, cfg.Stream, product.SubjectPrefix); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Connected to NATS", "url", cfg.Url, "stream", cfg.Stream)
	return nats.NewPublisher(js), func() { _ = nc.Drain() }, nil
}

// ProductEvents maps repository writes to product events.
func ProductEvents() repository.EventFactory[product.Product] {
	return repository.EventFactory[product.Product]{
		Created: func(p *product.Product) messaging.Event { return product.Created(p) },
		Updated: func(p *product.Product) messaging.Event { return product.Updated(p) },
		Deleted: func(p *product.Product) messaging.Event { return product.Deleted(p) },
	}
}

// SetupHttpHandler builds the router with the JSON API, the HTML pages and /healthz.
// Used by E2E tests to run the application in an httptest server.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	rest.NewHandler(deps.Products, deps.Logger).RegisterRoutes(mux)
	page.NewHandler(deps.Products, deps.Binder, deps.Renderer, deps.Logger).RegisterRoutes(mux)
	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/products", http.StatusFound)
	})
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics)
	}
}

// SetupHttpServer creates the HTTP server. With traces or metrics enabled every request is
// instrumented by otelhttp.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	handler := SetupHttpHandler(deps)
	if cfg.Telemetry.Enabled || cfg.Telemetry.Metrics.Enabled {
		handler = server.Traced(handler, ServiceName)
	}
	return server.NewHTTPServer(cfg.HTTPServer, handler)
}

// SetupGrpcServer creates the gRPC server exposing the standard health service.
func SetupGrpcServer(reflectionEnabled bool, logger *slog.Logger) (*grpc.Server, *health.Server) {
	register, healthServer := server.HealthRegistration(ServiceName)
	return server.NewGRPCServer(logger, reflectionEnabled, register), healthServer
}
