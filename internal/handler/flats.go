package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/yourorg/flatdash/internal/demo"
	"github.com/yourorg/flatdash/internal/domain"
	"github.com/yourorg/flatdash/internal/resolver"
	"github.com/yourorg/flatdash/internal/service"
	"github.com/yourorg/flatdash/pkg/config"
)

// FlatsHandler handles the flats listing with active lease context
type FlatsHandler struct {
	flatRepo  domain.FlatRepository
	leaseRepo domain.LeaseRepository
	demo      *demo.Provider
	cfg       *config.Config
	logger    *slog.Logger
}

// NewFlatsHandler creates a new flats handler
func NewFlatsHandler(
	flatRepo domain.FlatRepository,
	leaseRepo domain.LeaseRepository,
	demoProvider *demo.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) *FlatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlatsHandler{
		flatRepo:  flatRepo,
		leaseRepo: leaseRepo,
		demo:      demoProvider,
		cfg:       cfg,
		logger:    logger,
	}
}

// ServeHTTP handles GET /api/flats. Flats arrive ordered by flat_number from
// the query; the merge step attaches active leases without reordering.
func (h *FlatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := resolver.Resolve(r.Context(), h.cfg.IsConfigured(), "flats", h.logger,
		h.fetchLiveFlats,
		h.demo.Flats,
	)
	writeResolved(w, result)
}

func (h *FlatsHandler) fetchLiveFlats(ctx context.Context) ([]domain.FlatView, error) {
	var (
		wg        sync.WaitGroup
		flats     []domain.Flat
		leases    []domain.ActiveLease
		flatsErr  error
		leasesErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		flats, flatsErr = h.flatRepo.ListAll(ctx)
	}()
	go func() {
		defer wg.Done()
		leases, leasesErr = h.leaseRepo.ListActive(ctx)
	}()
	wg.Wait()

	if flatsErr != nil {
		return nil, flatsErr
	}
	if leasesErr != nil {
		return nil, leasesErr
	}

	return service.MergeFlatsWithActiveLease(flats, leases), nil
}
