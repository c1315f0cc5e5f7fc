package service

import (
	"strings"
	"time"

	"github.com/yourorg/flatdash/internal/domain"
)

// ComputeDashboardStats calculates dashboard statistics from raw flat and
// payment rows. Payments are expected to be pre-filtered to the current
// month's window by the caller; this function only counts and sums.
func ComputeDashboardStats(flats []domain.Flat, payments []domain.RentPayment) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalFlats: len(flats),
	}

	for _, f := range flats {
		switch f.Status {
		case domain.FlatOccupied:
			stats.OccupiedFlats++
		case domain.FlatVacant:
			stats.VacantFlats++
		case domain.FlatMaintenance:
			stats.MaintenanceFlats++
		}
	}

	for _, p := range payments {
		switch p.Status {
		case domain.PaymentPending:
			stats.PendingPayments++
			stats.TotalRentPending += p.Amount
		case domain.PaymentOverdue:
			stats.OverduePayments++
			stats.TotalRentPending += p.Amount
		case domain.PaymentPaid:
			stats.TotalRentCollected += p.Amount
		}
	}

	return stats
}

// OccupancyRate returns occupied flats as a percentage of total flats.
// Zero flats yields 0, not NaN.
func OccupancyRate(stats domain.DashboardStats) float64 {
	if stats.TotalFlats == 0 {
		return 0
	}
	return float64(stats.OccupiedFlats) / float64(stats.TotalFlats) * 100
}

// MergeFlatsWithActiveLease attaches the tenant of each flat's active lease.
// Output order matches input order. If the lease list holds more than one
// entry for a flat the first in input order wins and the rest are ignored.
// A flat with no matching lease keeps a nil CurrentLease.
func MergeFlatsWithActiveLease(flats []domain.Flat, leases []domain.ActiveLease) []domain.FlatView {
	byFlat := make(map[string]string, len(leases))
	for _, l := range leases {
		if _, ok := byFlat[l.FlatID]; !ok {
			byFlat[l.FlatID] = l.TenantFullName
		}
	}

	views := make([]domain.FlatView, 0, len(flats))
	for _, f := range flats {
		view := domain.FlatView{Flat: f}
		if name, ok := byFlat[f.ID]; ok {
			view.CurrentLease = &domain.CurrentLease{
				Tenant: domain.TenantSummary{FullName: name},
			}
		}
		views = append(views, view)
	}
	return views
}

// MergePaymentsWithContext attaches lease, flat and tenant context onto each
// payment from normalized rows. Payment order is preserved; a payment whose
// lease, flat or tenant is missing keeps the corresponding field nil.
// The live path gets this join from SQL; the demo provider uses this.
func MergePaymentsWithContext(payments []domain.RentPayment, leases []domain.Lease, flats []domain.Flat, tenants []domain.Tenant) []domain.PaymentView {
	leaseByID := make(map[string]domain.Lease, len(leases))
	for _, l := range leases {
		leaseByID[l.ID] = l
	}
	flatByID := make(map[string]domain.Flat, len(flats))
	for _, f := range flats {
		flatByID[f.ID] = f
	}
	tenantByID := make(map[string]domain.Tenant, len(tenants))
	for _, t := range tenants {
		tenantByID[t.ID] = t
	}

	views := make([]domain.PaymentView, 0, len(payments))
	for _, p := range payments {
		view := domain.PaymentView{RentPayment: p}
		if lease, ok := leaseByID[p.LeaseID]; ok {
			ctx := &domain.PaymentLease{}
			if flat, ok := flatByID[lease.FlatID]; ok {
				ctx.Flat = &domain.FlatSummary{FlatNumber: flat.FlatNumber}
			}
			if tenant, ok := tenantByID[lease.TenantID]; ok {
				ctx.Tenant = &domain.TenantSummary{FullName: tenant.FullName}
			}
			view.Lease = ctx
		}
		views = append(views, view)
	}
	return views
}

// FilterPayments applies a status filter and a case-insensitive substring
// search over tenant name or flat number. Both filters combine with AND and
// commute. Payments missing joined context simply fail the search match;
// they never cause an error. Input order is preserved.
func FilterPayments(payments []domain.PaymentView, statusFilter, searchTerm string) []domain.PaymentView {
	filtered := make([]domain.PaymentView, 0, len(payments))
	term := strings.ToLower(searchTerm)

	for _, p := range payments {
		if statusFilter != "all" && statusFilter != "" && p.Status != statusFilter {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesSearch(p domain.PaymentView, term string) bool {
	if p.Lease == nil {
		return false
	}
	if p.Lease.Tenant != nil && strings.Contains(strings.ToLower(p.Lease.Tenant.FullName), term) {
		return true
	}
	if p.Lease.Flat != nil && strings.Contains(strings.ToLower(p.Lease.Flat.FlatNumber), term) {
		return true
	}
	return false
}

// MonthStart returns the first instant of t's calendar month in t's location.
// Dashboard statistics count payments due from this instant onward.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
