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

// TenantsHandler handles the tenants listing
type TenantsHandler struct {
	tenantRepo domain.TenantRepository
	demo       *demo.Provider
	cfg        *config.Config
	logger     *slog.Logger
}

// NewTenantsHandler creates a new tenants handler
func NewTenantsHandler(
	tenantRepo domain.TenantRepository,
	demoProvider *demo.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) *TenantsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantsHandler{
		tenantRepo: tenantRepo,
		demo:       demoProvider,
		cfg:        cfg,
		logger:     logger,
	}
}

// ServeHTTP handles GET /api/tenants: tenants holding an active lease,
// ordered by full name, with lease and flat context.
func (h *TenantsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := resolver.Resolve(r.Context(), h.cfg.IsConfigured(), "tenants", h.logger,
		func(ctx context.Context) ([]domain.TenantView, error) {
			return h.tenantRepo.ListWithActiveLease(ctx)
		},
		h.demo.Tenants,
	)
	writeResolved(w, result)
}
