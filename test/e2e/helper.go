package e2e

import (
	"context"
	"io"
	"net"
	"path/filepath"
	"testing"

	"github.com/asakaida/edurecords/internal/handlers"
	"github.com/asakaida/edurecords/internal/infrastructure/config"
	"github.com/asakaida/edurecords/internal/infrastructure/database"
	"github.com/asakaida/edurecords/internal/infrastructure/logging"
	"github.com/asakaida/edurecords/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1024 * 1024

// E2ETestServer represents an E2E test server
type E2ETestServer struct {
	Server       *grpc.Server
	Client       *handlers.Client
	HealthClient healthpb.HealthClient
	Conn         *grpc.ClientConn
	Store        database.Store
	Collector    *metrics.Collector
	Registry     *prometheus.Registry
	Listener     *bufconn.Listener
}

// SetupE2ETest starts the person service over bufconn, backed by a migrated SQLite database
func SetupE2ETest(t *testing.T) *E2ETestServer {
	t.Helper()

	store, err := database.Open(&config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "e2e.db"),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if err := store.RunMigrations(); err != nil {
		store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	personRepo, err := database.NewPersonRepository(store)
	if err != nil {
		store.Close()
		t.Fatalf("failed to create person repository: %v", err)
	}

	logger := logging.NewWithWriter(config.LogConfig{Level: "debug", Format: "text"}, io.Discard)
	collector := metrics.NewCollector()
	registry := prometheus.NewRegistry()
	exporter := metrics.NewPrometheusExporter(registry)

	// Create in-memory gRPC server with bufconn
	listener := bufconn.Listen(bufSize)
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.UnaryServerInterceptor(logger),
			metrics.UnaryServerInterceptor(collector, exporter),
		),
	)
	handlers.RegisterPersonServiceServer(server, handlers.NewPersonHandler(
		personRepo,
		&metrics.Recorder{Collector: collector, Exporter: exporter},
	))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus(handlers.PersonServiceName, healthpb.HealthCheckResponse_SERVING)

	// Start server in background
	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	bufDialer := func(context.Context, string) (net.Conn, error) {
		return listener.Dial()
	}

	conn, err := grpc.NewClient(
		"passthrough://bufconn",
		grpc.WithContextDialer(bufDialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		server.Stop()
		store.Close()
		t.Fatalf("failed to create client connection: %v", err)
	}

	return &E2ETestServer{
		Server:       server,
		Client:       handlers.NewClient(conn),
		HealthClient: healthpb.NewHealthClient(conn),
		Conn:         conn,
		Store:        store,
		Collector:    collector,
		Registry:     registry,
		Listener:     listener,
	}
}

// Teardown cleans up the E2E test environment
func (e *E2ETestServer) Teardown(t *testing.T) {
	t.Helper()

	if e.Conn != nil {
		e.Conn.Close()
	}
	if e.Server != nil {
		e.Server.Stop()
	}
	if e.Listener != nil {
		e.Listener.Close()
	}
	if e.Store != nil {
		if err := e.Store.Close(); err != nil {
			t.Logf("warning: failed to close database: %v", err)
		}
	}
}

// Exec runs a raw statement against the backing database
func (e *E2ETestServer) Exec(t *testing.T, query string, args ...interface{}) {
	t.Helper()

	if _, err := e.Store.SQL().Exec(query, args...); err != nil {
		t.Fatalf("failed to exec %q: %v", query, err)
	}
}
