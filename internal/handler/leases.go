package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/yourorg/flatdash/internal/demo"
	"github.com/yourorg/flatdash/internal/domain"
	"github.com/yourorg/flatdash/internal/resolver"
	"github.com/yourorg/flatdash/pkg/config"
)

// LeasesHandler handles the leases listing
type LeasesHandler struct {
	leaseRepo domain.LeaseRepository
	demo      *demo.Provider
	cfg       *config.Config
	logger    *slog.Logger
}

// NewLeasesHandler creates a new leases handler
func NewLeasesHandler(
	leaseRepo domain.LeaseRepository,
	demoProvider *demo.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) *LeasesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeasesHandler{
		leaseRepo: leaseRepo,
		demo:      demoProvider,
		cfg:       cfg,
		logger:    logger,
	}
}

// ServeHTTP handles GET /api/leases: all leases newest start date first,
// with flat and tenant context.
func (h *LeasesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := resolver.Resolve(r.Context(), h.cfg.IsConfigured(), "leases", h.logger,
		func(ctx context.Context) ([]domain.LeaseView, error) {
			return h.leaseRepo.ListWithContext(ctx)
		},
		h.demo.Leases,
	)
	writeResolved(w, result)
}
