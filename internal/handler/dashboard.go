package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/yourorg/flatdash/internal/demo"
	"github.com/yourorg/flatdash/internal/domain"
	"github.com/yourorg/flatdash/internal/resolver"
	"github.com/yourorg/flatdash/internal/service"
	"github.com/yourorg/flatdash/pkg/config"
)

// DashboardHandler handles the dashboard statistics view
type DashboardHandler struct {
	flatRepo    domain.FlatRepository
	paymentRepo domain.RentPaymentRepository
	demo        *demo.Provider
	cfg         *config.Config
	logger      *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	flatRepo domain.FlatRepository,
	paymentRepo domain.RentPaymentRepository,
	demoProvider *demo.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		flatRepo:    flatRepo,
		paymentRepo: paymentRepo,
		demo:        demoProvider,
		cfg:         cfg,
		logger:      logger,
	}
}

// ServeHTTP handles GET /api/dashboard-stats. Flat and payment rows are
// independent datasets, so the two queries run concurrently and join before
// aggregation. Stats count payments due within the current calendar month.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := resolver.Resolve(r.Context(), h.cfg.IsConfigured(), "dashboard_stats", h.logger,
		h.fetchLiveStats,
		h.demo.Stats,
	)
	writeResolved(w, result)
}

func (h *DashboardHandler) fetchLiveStats(ctx context.Context) (domain.DashboardStats, error) {
	var (
		wg          sync.WaitGroup
		flats       []domain.Flat
		payments    []domain.RentPayment
		flatsErr    error
		paymentsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		flats, flatsErr = h.flatRepo.ListStatuses(ctx)
	}()
	go func() {
		defer wg.Done()
		payments, paymentsErr = h.paymentRepo.ListDueSince(ctx, service.MonthStart(time.Now()))
	}()
	wg.Wait()

	if flatsErr != nil {
		return domain.DashboardStats{}, flatsErr
	}
	if paymentsErr != nil {
		return domain.DashboardStats{}, paymentsErr
	}

	return service.ComputeDashboardStats(flats, payments), nil
}
