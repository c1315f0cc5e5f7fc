package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yourorg/flatdash/internal/demo"
	"github.com/yourorg/flatdash/internal/domain"
	"github.com/yourorg/flatdash/internal/handler"
	"github.com/yourorg/flatdash/internal/infrastructure/logger"
	"github.com/yourorg/flatdash/internal/observability/metrics"
	"github.com/yourorg/flatdash/internal/observability/tracing"
	"github.com/yourorg/flatdash/internal/repository"
	"github.com/yourorg/flatdash/pkg/config"
	"github.com/yourorg/flatdash/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting flatdash server",
		slog.String("environment", cfg.Environment),
		slog.Bool("demo_mode", !cfg.IsConfigured()),
	)

	// 3. Initialize tracing (no-op without an OTLP endpoint)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Init(ctx, log, "flatdash", cfg.Environment, cfg.OTLPEndpoint)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Initialize demo fixture provider; every read path needs it as the
	// fallback branch.
	demoProvider, err := demo.NewProvider()
	if err != nil {
		log.Error("failed to load demo fixtures", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Connect to the database only when the configuration is real.
	// A malformed DSN is fatal; an unreachable database is not.
	var (
		pool        *database.ConnectionPool
		flatRepo    domain.FlatRepository
		leaseRepo   domain.LeaseRepository
		tenantRepo  domain.TenantRepository
		paymentRepo domain.RentPaymentRepository
	)
	if cfg.IsConfigured() {
		pool, err = database.NewConnectionPool(ctx, &database.Config{
			DSN:             cfg.DatabaseURL,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxLifetime: cfg.DBConnMaxLifetime,
		}, log)
		if err != nil {
			log.Error("failed to open database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		db := pool.GetDB()
		flatRepo = repository.NewPostgresFlatRepository(db, log)
		leaseRepo = repository.NewPostgresLeaseRepository(db, log)
		tenantRepo = repository.NewPostgresTenantRepository(db, log)
		paymentRepo = repository.NewPostgresRentPaymentRepository(db, log)
	} else {
		log.Info("no usable database configuration, serving demo data")
	}

	// 6. Initialize handlers
	dashboardHandler := handler.NewDashboardHandler(flatRepo, paymentRepo, demoProvider, cfg, log)
	flatsHandler := handler.NewFlatsHandler(flatRepo, leaseRepo, demoProvider, cfg, log)
	paymentsHandler := handler.NewPaymentsHandler(paymentRepo, demoProvider, cfg, log)
	paymentUpdateHandler := handler.NewPaymentUpdateHandler(paymentRepo, demoProvider, cfg, log)
	tenantsHandler := handler.NewTenantsHandler(tenantRepo, demoProvider, cfg, log)
	leasesHandler := handler.NewLeasesHandler(leaseRepo, demoProvider, cfg, log)
	healthHandler := handler.NewHealthHandler(pool, log)

	// 7. Setup HTTP routes
	mux := http.NewServeMux()
	mux.Handle("GET /api/dashboard-stats", dashboardHandler)
	mux.Handle("GET /api/flats", flatsHandler)
	mux.Handle("GET /api/payments", paymentsHandler)
	mux.Handle("PATCH /api/payments/{id}", paymentUpdateHandler)
	mux.Handle("GET /api/tenants", tenantsHandler)
	mux.Handle("GET /api/leases", leasesHandler)
	mux.HandleFunc("GET /healthz", healthHandler.Health)
	mux.HandleFunc("GET /readyz", healthHandler.Ready)
	mux.Handle("/metrics", promhttp.Handler())

	// Chain middleware: request ID -> metrics -> CORS -> content type -> mux
	var root http.Handler = mux
	root = handler.ValidateJSONContentType(log)(root)
	root = handler.CORSMiddleware(cfg.CORSAllowedOrigins)(root)
	root = metrics.HTTPMetricsMiddleware(root)
	root = otelhttp.NewHandler(root, "flatdash")
	root = handler.WithRequestID(root, log)

	// 8. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting", slog.Int("port", cfg.ServerPort))

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
