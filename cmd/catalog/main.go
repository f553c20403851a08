// Package main runs the product catalog service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/abgdnv/productcatalog/internal/app"
	"github.com/abgdnv/productcatalog/internal/config"
	"github.com/abgdnv/productcatalog/pkg/bootstrap"
	"github.com/abgdnv/productcatalog/pkg/config/configloader"
	"github.com/abgdnv/productcatalog/pkg/telemetry"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, opens storage and the event publisher, then serves HTTP,
// gRPC health and pprof until ctx is cancelled.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](app.ServiceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	tp, err := telemetry.NewTracerProvider(ctx, app.ServiceName, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to create tracer provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down tracer provider", "error", err)
		}
	}()

	var metricsHandler http.Handler
	if cfg.Telemetry.Metrics.Enabled {
		mp, handler, err := telemetry.NewMeterProvider(app.ServiceName)
		if err != nil {
			return fmt.Errorf("failed to create meter provider: %w", err)
		}
		defer func() {
			if err := mp.Shutdown(context.Background()); err != nil {
				logger.Error("Failed to shut down meter provider", "error", err)
			}
		}()
		metricsHandler = handler
	}

	publisher, closePublisher, err := app.SetupPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		return fmt.Errorf("failed to set up event publisher: %w", err)
	}
	defer closePublisher()

	deps, closeStore, err := app.SetupDependencies(ctx, cfg, publisher, logger)
	if err != nil {
		return fmt.Errorf("failed to set up dependencies: %w", err)
	}
	defer closeStore()
	deps.Metrics = metricsHandler

	httpServer := app.SetupHttpServer(deps, cfg)

	g, gCtx := errgroup.WithContext(ctx)
	timeout := cfg.Shutdown.Timeout

	serve(gCtx, g, logger, "HTTP", httpServer.Addr, timeout, listenAndServe(httpServer), httpServer.Shutdown)

	if cfg.GRPC.Enabled {
		grpcServer, healthServer := app.SetupGrpcServer(cfg.GRPC.ReflectionEnabled, logger)
		grpcAddr := ":" + cfg.GRPC.Port
		serve(gCtx, g, logger, "gRPC", grpcAddr, timeout,
			func() error {
				lis, err := net.Listen("tcp", grpcAddr)
				if err != nil {
					return fmt.Errorf("failed to listen on gRPC port: %w", err)
				}
				return grpcServer.Serve(lis)
			},
			func(shutdownCtx context.Context) error {
				healthServer.Shutdown()
				stopped := make(chan struct{})
				go func() {
					grpcServer.GracefulStop()
					close(stopped)
				}()
				select {
				case <-stopped:
					return nil
				case <-shutdownCtx.Done():
					grpcServer.Stop()
					return fmt.Errorf("grpc server graceful stop timed out")
				}
			})
	}

	if cfg.PProf.Enabled {
		pprofServer := &http.Server{
			Addr:              cfg.PProf.Addr,
			ReadHeaderTimeout: cfg.HTTPServer.Timeout.ReadHeader,
		}
		serve(gCtx, g, logger, "pprof", pprofServer.Addr, timeout, listenAndServe(pprofServer), pprofServer.Shutdown)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// serve runs start in the group and calls stop, bounded by timeout, once ctx is done.
func serve(ctx context.Context, g *errgroup.Group, logger *slog.Logger, name, addr string, timeout time.Duration,
	start func() error, stop func(context.Context) error) {
	g.Go(func() error {
		logger.Info(name+" server listening", slog.String("addr", addr))
		return start()
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down " + name + " server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := stop(shutdownCtx); err != nil {
			return fmt.Errorf("%s server shutdown: %w", name, err)
		}
		logger.Info(name + " server stopped")
		return nil
	})
}

func listenAndServe(srv *http.Server) func() error {
	return func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server on %s failed: %w", srv.Addr, err)
		}
		return nil
	}
}
