package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/asakaida/edurecords/internal/handlers"
	"github.com/asakaida/edurecords/internal/infrastructure/config"
	"github.com/asakaida/edurecords/internal/infrastructure/database"
	"github.com/asakaida/edurecords/internal/infrastructure/logging"
	"github.com/asakaida/edurecords/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	defaultEnv      = "dev"
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Get environment from ENV variable or use default
	env := os.Getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	logger := logging.Default()

	// Initialize configuration
	if err := config.InitConfig(env); err != nil {
		logger.Error("failed to initialize config", slog.Any("error", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger = logging.New(cfg.Log).With(slog.String("env", env))

	// Connect to database
	store, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("connected to database",
		slog.String("driver", store.Driver()),
		slog.String("address", cfg.Database.Address()))

	personRepo, err := database.NewPersonRepository(store)
	if err != nil {
		logger.Error("failed to create person repository", slog.Any("error", err))
		os.Exit(1)
	}

	// Metrics
	collector := metrics.NewCollector()
	exporter := metrics.NewPrometheusExporter(prometheus.DefaultRegisterer)
	recorder := &metrics.Recorder{Collector: collector, Exporter: exporter}

	// Create gRPC server
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(logger),
			metrics.UnaryServerInterceptor(collector, exporter),
		),
	)
	handlers.RegisterPersonServiceServer(grpcServer, handlers.NewPersonHandler(personRepo, recorder))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(handlers.PersonServiceName, healthpb.HealthCheckResponse_SERVING)

	// Start listening
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen", slog.String("address", addr), slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("gRPC server listening", slog.String("address", addr))

	serverErrors := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			serverErrors <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	var metricsServer *http.Server
	if cfg.Server.MetricsPort != 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.MetricsPort),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			logger.Info("metrics server listening", slog.String("address", metricsServer.Addr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrors <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		logger.Error("server error", slog.Any("error", err))
	case sig := <-sigChan:
		logger.Info("received signal, initiating graceful shutdown", slog.String("signal", sig.String()))
	}

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		logger.Info("gRPC server stopped gracefully")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("error shutting down metrics server", slog.Any("error", err))
		}
	}

	api := collector.GetAPIMetrics()
	rows := collector.GetRowMetrics()
	logger.Info("shutdown complete",
		slog.Any("requests", api.RequestCounts),
		slog.Any("errors", api.ErrorCounts),
		slog.Any("rows_affected", rows.RowsAffected))
}
