package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/flatdash/internal/domain"
)

func TestComputeDashboardStatsFlatCounts(t *testing.T) {
	flats := []domain.Flat{
		{Status: "occupied"},
		{Status: "vacant"},
		{Status: "maintenance"},
		{Status: "occupied"},
	}

	stats := ComputeDashboardStats(flats, nil)

	assert.Equal(t, 4, stats.TotalFlats)
	assert.Equal(t, 2, stats.OccupiedFlats)
	assert.Equal(t, 1, stats.VacantFlats)
	assert.Equal(t, 1, stats.MaintenanceFlats)
}

func TestComputeDashboardStatsPaymentTotals(t *testing.T) {
	payments := []domain.RentPayment{
		{Status: "paid", Amount: 500},
		{Status: "pending", Amount: 300},
		{Status: "overdue", Amount: 200},
	}

	stats := ComputeDashboardStats(nil, payments)

	assert.Equal(t, 1, stats.PendingPayments)
	assert.Equal(t, 1, stats.OverduePayments)
	assert.Equal(t, 500.0, stats.TotalRentCollected)
	assert.Equal(t, 500.0, stats.TotalRentPending)
}

func TestComputeDashboardStatsEmptyInputs(t *testing.T) {
	stats := ComputeDashboardStats(nil, nil)
	assert.Equal(t, domain.DashboardStats{}, stats)

	stats = ComputeDashboardStats([]domain.Flat{}, []domain.RentPayment{})
	assert.Equal(t, domain.DashboardStats{}, stats)
}

func TestComputeDashboardStatsUnknownStatuses(t *testing.T) {
	flats := []domain.Flat{
		{Status: "occupied"},
		{Status: "condemned"},
	}
	payments := []domain.RentPayment{
		{Status: "paid", Amount: 100},
		{Status: "refunded", Amount: 999},
	}

	stats := ComputeDashboardStats(flats, payments)

	// Unknown statuses still count toward the total but nowhere else
	assert.Equal(t, 2, stats.TotalFlats)
	assert.LessOrEqual(t, stats.OccupiedFlats+stats.VacantFlats+stats.MaintenanceFlats, stats.TotalFlats)
	assert.Equal(t, 100.0, stats.TotalRentCollected)
	assert.Equal(t, 0.0, stats.TotalRentPending)
}

func TestComputeDashboardStatsPure(t *testing.T) {
	flats := []domain.Flat{{Status: "occupied"}, {Status: "vacant"}}
	payments := []domain.RentPayment{{Status: "pending", Amount: 250}}

	first := ComputeDashboardStats(flats, payments)
	second := ComputeDashboardStats(flats, payments)

	assert.Equal(t, first, second)
}

func TestOccupancyRate(t *testing.T) {
	assert.Equal(t, 0.0, OccupancyRate(domain.DashboardStats{}))
	assert.Equal(t, 50.0, OccupancyRate(domain.DashboardStats{TotalFlats: 4, OccupiedFlats: 2}))
}

func TestMergeFlatsWithActiveLease(t *testing.T) {
	flats := []domain.Flat{
		{ID: "f1", FlatNumber: "A-101", Status: "occupied"},
		{ID: "f2", FlatNumber: "A-102", Status: "vacant"},
		{ID: "f3", FlatNumber: "B-201", Status: "occupied"},
	}
	leases := []domain.ActiveLease{
		{FlatID: "f3", TenantFullName: "Priya Sharma"},
		{FlatID: "f1", TenantFullName: "Rajesh Kumar"},
	}

	views := MergeFlatsWithActiveLease(flats, leases)

	require.Len(t, views, 3)
	// Input order preserved
	assert.Equal(t, "A-101", views[0].FlatNumber)
	assert.Equal(t, "A-102", views[1].FlatNumber)
	assert.Equal(t, "B-201", views[2].FlatNumber)

	require.NotNil(t, views[0].CurrentLease)
	assert.Equal(t, "Rajesh Kumar", views[0].CurrentLease.Tenant.FullName)
	assert.Nil(t, views[1].CurrentLease)
	require.NotNil(t, views[2].CurrentLease)
	assert.Equal(t, "Priya Sharma", views[2].CurrentLease.Tenant.FullName)
}

func TestMergeFlatsWithActiveLeaseDuplicateLeases(t *testing.T) {
	flats := []domain.Flat{{ID: "f1", FlatNumber: "A-101"}}
	leases := []domain.ActiveLease{
		{FlatID: "f1", TenantFullName: "First Match"},
		{FlatID: "f1", TenantFullName: "Ignored"},
	}

	views := MergeFlatsWithActiveLease(flats, leases)

	require.Len(t, views, 1)
	require.NotNil(t, views[0].CurrentLease)
	assert.Equal(t, "First Match", views[0].CurrentLease.Tenant.FullName)
}

func TestMergeFlatsWithActiveLeasePure(t *testing.T) {
	flats := []domain.Flat{{ID: "f1"}, {ID: "f2"}}
	leases := []domain.ActiveLease{{FlatID: "f1", TenantFullName: "Someone"}}

	first := MergeFlatsWithActiveLease(flats, leases)
	second := MergeFlatsWithActiveLease(flats, leases)

	assert.Equal(t, first, second)
}

func TestMergePaymentsWithContext(t *testing.T) {
	payments := []domain.RentPayment{
		{ID: "p1", LeaseID: "l1"},
		{ID: "p2", LeaseID: "missing"},
		{ID: "p3", LeaseID: "l2"},
	}
	leases := []domain.Lease{
		{ID: "l1", FlatID: "f1", TenantID: "t1"},
		{ID: "l2", FlatID: "gone", TenantID: "t2"},
	}
	flats := []domain.Flat{{ID: "f1", FlatNumber: "A-101"}}
	tenants := []domain.Tenant{
		{ID: "t1", FullName: "Rajesh Kumar"},
		{ID: "t2", FullName: "Priya Sharma"},
	}

	views := MergePaymentsWithContext(payments, leases, flats, tenants)

	require.Len(t, views, 3)
	require.NotNil(t, views[0].Lease)
	assert.Equal(t, "A-101", views[0].Lease.Flat.FlatNumber)
	assert.Equal(t, "Rajesh Kumar", views[0].Lease.Tenant.FullName)

	// Dangling lease reference: no context at all
	assert.Nil(t, views[1].Lease)

	// Lease present but its flat is gone: tenant survives, flat does not
	require.NotNil(t, views[2].Lease)
	assert.Nil(t, views[2].Lease.Flat)
	assert.Equal(t, "Priya Sharma", views[2].Lease.Tenant.FullName)
}

func paymentFixtures() []domain.PaymentView {
	return []domain.PaymentView{
		{
			RentPayment: domain.RentPayment{ID: "p1", Status: "paid"},
			Lease: &domain.PaymentLease{
				Flat:   &domain.FlatSummary{FlatNumber: "A-101"},
				Tenant: &domain.TenantSummary{FullName: "Rajesh Kumar"},
			},
		},
		{
			RentPayment: domain.RentPayment{ID: "p2", Status: "pending"},
			Lease: &domain.PaymentLease{
				Flat:   &domain.FlatSummary{FlatNumber: "B-201"},
				Tenant: &domain.TenantSummary{FullName: "Priya Sharma"},
			},
		},
		{
			RentPayment: domain.RentPayment{ID: "p3", Status: "overdue"},
			// No joined context at all
		},
		{
			RentPayment: domain.RentPayment{ID: "p4", Status: "pending"},
			Lease: &domain.PaymentLease{
				Tenant: &domain.TenantSummary{FullName: "Amit Patel"},
			},
		},
	}
}

func TestFilterPaymentsNoFilters(t *testing.T) {
	payments := paymentFixtures()
	filtered := FilterPayments(payments, "all", "")
	assert.Equal(t, payments, filtered)
}

func TestFilterPaymentsByStatus(t *testing.T) {
	filtered := FilterPayments(paymentFixtures(), "pending", "")
	require.Len(t, filtered, 2)
	assert.Equal(t, "p2", filtered[0].ID)
	assert.Equal(t, "p4", filtered[1].ID)
}

func TestFilterPaymentsBySearch(t *testing.T) {
	// Case-insensitive match on tenant name
	filtered := FilterPayments(paymentFixtures(), "all", "priya")
	require.Len(t, filtered, 1)
	assert.Equal(t, "p2", filtered[0].ID)

	// Case-insensitive match on flat number
	filtered = FilterPayments(paymentFixtures(), "all", "a-10")
	require.Len(t, filtered, 1)
	assert.Equal(t, "p1", filtered[0].ID)
}

func TestFilterPaymentsMissingContextNeverMatches(t *testing.T) {
	filtered := FilterPayments(paymentFixtures(), "all", "anything")
	assert.Empty(t, filtered)
}

func TestFilterPaymentsCombined(t *testing.T) {
	filtered := FilterPayments(paymentFixtures(), "pending", "amit")
	require.Len(t, filtered, 1)
	assert.Equal(t, "p4", filtered[0].ID)
}

func TestFilterPaymentsCommutes(t *testing.T) {
	payments := paymentFixtures()

	statusFirst := FilterPayments(FilterPayments(payments, "pending", ""), "all", "a")
	searchFirst := FilterPayments(FilterPayments(payments, "all", "a"), "pending", "")

	assert.Equal(t, statusFirst, searchFirst)
}

func TestFilterPaymentsEmptyResultIsValid(t *testing.T) {
	filtered := FilterPayments(paymentFixtures(), "paid", "priya")
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2025, time.September, 17, 14, 30, 0, 0, loc)

	got := MonthStart(now)

	assert.Equal(t, time.Date(2025, time.September, 1, 0, 0, 0, 0, loc), got)
}

func TestValidPaymentStatus(t *testing.T) {
	assert.True(t, ValidPaymentStatus("paid"))
	assert.True(t, ValidPaymentStatus("pending"))
	assert.True(t, ValidPaymentStatus("overdue"))
	assert.False(t, ValidPaymentStatus("all"))
	assert.False(t, ValidPaymentStatus(""))
	assert.False(t, ValidPaymentStatus("refunded"))
}

func TestResolvePaymentDate(t *testing.T) {
	now := time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC)
	supplied := time.Date(2025, time.August, 28, 9, 0, 0, 0, time.UTC)

	got := ResolvePaymentDate("paid", &supplied, now)
	require.NotNil(t, got)
	assert.Equal(t, supplied, *got)

	got = ResolvePaymentDate("paid", nil, now)
	require.NotNil(t, got)
	assert.Equal(t, now, *got)

	assert.Nil(t, ResolvePaymentDate("pending", &supplied, now))
	assert.Nil(t, ResolvePaymentDate("overdue", nil, now))
}
