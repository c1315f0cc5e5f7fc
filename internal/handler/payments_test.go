package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/flatdash/internal/domain"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

// patchMux routes through a real ServeMux so r.PathValue resolves
func patchMux(h http.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("PATCH /api/payments/{id}", h)
	return mux
}

func doPatch(mux *http.ServeMux, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("PATCH", "/api/payments/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestUpdatePaymentDemoMarksPaid(t *testing.T) {
	provider := mustProvider(t)
	h := NewPaymentUpdateHandler(nil, provider, demoConfig(), nil)
	mux := patchMux(h)

	before := time.Now().UTC()
	rec := doPatch(mux, "demo-payment-3", `{"status":"paid"}`)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Equal(t, "demo", rec.Header().Get(DataSourceHeader))

	var got domain.PaymentView
	decodeBody(t, rec, &got)
	assert.Equal(t, "demo-payment-3", got.ID)
	assert.Equal(t, domain.PaymentPaid, got.Status)
	require.NotNil(t, got.PaymentDate, "marking paid must stamp a payment date")
	assert.False(t, got.PaymentDate.Before(before))

	// the mutation sticks for subsequent reads
	for _, p := range provider.Payments() {
		if p.ID == "demo-payment-3" {
			assert.Equal(t, domain.PaymentPaid, p.Status)
		}
	}
}

func TestUpdatePaymentDemoHonorsSuppliedDate(t *testing.T) {
	provider := mustProvider(t)
	h := NewPaymentUpdateHandler(nil, provider, demoConfig(), nil)
	mux := patchMux(h)

	rec := doPatch(mux, "demo-payment-5", `{"status":"paid","payment_date":"2026-08-15T00:00:00Z"}`)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	var got domain.PaymentView
	decodeBody(t, rec, &got)
	require.NotNil(t, got.PaymentDate)
	assert.Equal(t, time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), got.PaymentDate.UTC())
}

func TestUpdatePaymentDemoClearsDateOnPending(t *testing.T) {
	provider := mustProvider(t)
	h := NewPaymentUpdateHandler(nil, provider, demoConfig(), nil)
	mux := patchMux(h)

	// demo-payment-1 ships as paid with a date; reverting clears it
	rec := doPatch(mux, "demo-payment-1", `{"status":"pending"}`)

	require.Equal(t, 200, rec.Code, rec.Body.String())
	var got domain.PaymentView
	decodeBody(t, rec, &got)
	assert.Equal(t, domain.PaymentPending, got.Status)
	assert.Nil(t, got.PaymentDate)
}

func TestUpdatePaymentRejectsInvalidStatus(t *testing.T) {
	h := NewPaymentUpdateHandler(nil, mustProvider(t), demoConfig(), nil)
	mux := patchMux(h)

	rec := doPatch(mux, "demo-payment-1", `{"status":"refunded"}`)
	assert.Equal(t, 400, rec.Code)

	rec = doPatch(mux, "demo-payment-1", `{}`)
	assert.Equal(t, 400, rec.Code)

	rec = doPatch(mux, "demo-payment-1", `{status`)
	assert.Equal(t, 400, rec.Code)
}

func TestUpdatePaymentUnknownIDReturns404(t *testing.T) {
	h := NewPaymentUpdateHandler(nil, mustProvider(t), demoConfig(), nil)
	mux := patchMux(h)

	rec := doPatch(mux, "no-such-payment", `{"status":"paid"}`)
	assert.Equal(t, 404, rec.Code)
}

func TestUpdatePaymentLiveNotFound(t *testing.T) {
	repo := &fakePaymentRepo{err: domain.ErrPaymentNotFound}
	h := NewPaymentUpdateHandler(repo, mustProvider(t), liveConfig(), nil)
	mux := patchMux(h)

	rec := doPatch(mux, "p-missing", `{"status":"overdue"}`)
	assert.Equal(t, 404, rec.Code)
	assert.Equal(t, 1, repo.calls)
}

func TestUpdatePaymentLiveErrorIsNotMasked(t *testing.T) {
	repo := &fakePaymentRepo{err: assert.AnError}
	h := NewPaymentUpdateHandler(repo, mustProvider(t), liveConfig(), nil)
	mux := patchMux(h)

	rec := doPatch(mux, "p1", `{"status":"paid"}`)
	assert.Equal(t, 500, rec.Code)
	assert.Empty(t, rec.Header().Get(DataSourceHeader))
}

func TestListPaymentsDemoFilters(t *testing.T) {
	provider := mustProvider(t)
	h := NewPaymentsHandler(nil, provider, demoConfig(), nil)

	get := func(target string) []domain.PaymentView {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
		require.Equal(t, 200, rec.Code)
		assert.Equal(t, "demo", rec.Header().Get(DataSourceHeader))
		var got []domain.PaymentView
		decodeBody(t, rec, &got)
		return got
	}

	all := get("/api/payments")
	assert.Len(t, all, 6)

	pending := get("/api/payments?status=pending")
	require.NotEmpty(t, pending)
	for _, p := range pending {
		assert.Equal(t, domain.PaymentPending, p.Status)
	}

	byName := get("/api/payments?search=rajesh")
	require.NotEmpty(t, byName)
	for _, p := range byName {
		require.NotNil(t, p.Lease)
		require.NotNil(t, p.Lease.Tenant)
		assert.Contains(t, strings.ToLower(p.Lease.Tenant.FullName), "rajesh")
	}

	none := get("/api/payments?status=paid&search=zzz-no-match")
	assert.Empty(t, none)
}

func TestListPaymentsLiveFallsBackOnError(t *testing.T) {
	provider := mustProvider(t)
	repo := &fakePaymentRepo{err: assert.AnError}
	h := NewPaymentsHandler(repo, provider, liveConfig(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/payments", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "demo", rec.Header().Get(DataSourceHeader))
	var got []domain.PaymentView
	decodeBody(t, rec, &got)
	assert.Len(t, got, 6)
}
