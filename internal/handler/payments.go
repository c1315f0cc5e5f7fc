package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/yourorg/flatdash/internal/demo"
	"github.com/yourorg/flatdash/internal/domain"
	"github.com/yourorg/flatdash/internal/observability/metrics"
	"github.com/yourorg/flatdash/internal/resolver"
	"github.com/yourorg/flatdash/internal/service"
	"github.com/yourorg/flatdash/pkg/config"
)

// PaymentsHandler handles the rent payments listing
type PaymentsHandler struct {
	paymentRepo domain.RentPaymentRepository
	demo        *demo.Provider
	cfg         *config.Config
	logger      *slog.Logger
}

// NewPaymentsHandler creates a new payments handler
func NewPaymentsHandler(
	paymentRepo domain.RentPaymentRepository,
	demoProvider *demo.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) *PaymentsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentsHandler{
		paymentRepo: paymentRepo,
		demo:        demoProvider,
		cfg:         cfg,
		logger:      logger,
	}
}

// ServeHTTP handles GET /api/payments. Optional status and search query
// params apply the same filter the dashboard uses client-side; omitting both
// returns the full list, newest due date first.
func (h *PaymentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	result := resolver.Resolve(r.Context(), h.cfg.IsConfigured(), "payments", h.logger,
		func(ctx context.Context) ([]domain.PaymentView, error) {
			return h.paymentRepo.ListWithContext(ctx)
		},
		h.demo.Payments,
	)

	statusFilter := r.URL.Query().Get("status")
	searchTerm := r.URL.Query().Get("search")
	if statusFilter != "" || searchTerm != "" {
		result.Data = service.FilterPayments(result.Data, statusFilter, searchTerm)
	}

	writeResolved(w, result)
}

// PaymentUpdateHandler handles payment status mutations
type PaymentUpdateHandler struct {
	paymentRepo domain.RentPaymentRepository
	demo        *demo.Provider
	cfg         *config.Config
	logger      *slog.Logger
	validate    *validator.Validate
}

// NewPaymentUpdateHandler creates a new payment update handler
func NewPaymentUpdateHandler(
	paymentRepo domain.RentPaymentRepository,
	demoProvider *demo.Provider,
	cfg *config.Config,
	logger *slog.Logger,
) *PaymentUpdateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentUpdateHandler{
		paymentRepo: paymentRepo,
		demo:        demoProvider,
		cfg:         cfg,
		logger:      logger,
		validate:    validator.New(),
	}
}

type updatePaymentRequest struct {
	Status      string     `json:"status" validate:"required,oneof=paid pending overdue"`
	PaymentDate *time.Time `json:"payment_date"`
}

// ServeHTTP handles PATCH /api/payments/{id}. Marking a payment paid stamps
// the supplied or current instant; any other status clears the date. Writes
// are never masked: a live update failure is reported, not substituted. In
// demo mode the update applies to the in-memory demo copy and succeeds.
func (h *PaymentUpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing payment id")
		return
	}

	var req updatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn("rejected payment update",
			slog.String("payment_id", id),
			slog.String("status", req.Status),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, domain.ErrInvalidStatus.Error())
		return
	}

	paymentDate := service.ResolvePaymentDate(req.Status, req.PaymentDate, time.Now().UTC())

	if !h.cfg.IsConfigured() {
		updated, err := h.demo.UpdatePayment(id, req.Status, paymentDate)
		if err != nil {
			metrics.ObservePaymentUpdate("demo", "not_found")
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		metrics.ObservePaymentUpdate("demo", "ok")
		w.Header().Set(DataSourceHeader, string(resolver.SourceDemo))
		writeJSON(w, http.StatusOK, updated)
		return
	}

	updated, err := h.paymentRepo.UpdateStatus(r.Context(), id, req.Status, paymentDate)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			metrics.ObservePaymentUpdate("live", "not_found")
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		metrics.ObservePaymentUpdate("live", "error")
		h.logger.Error("failed to update payment",
			slog.String("payment_id", id),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to update payment")
		return
	}

	metrics.ObservePaymentUpdate("live", "ok")
	w.Header().Set(DataSourceHeader, string(resolver.SourceLive))
	writeJSON(w, http.StatusOK, updated)
}
