package demo

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourorg/flatdash/internal/domain"
	"github.com/yourorg/flatdash/internal/service"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type fixtureFile struct {
	Version  int              `yaml:"version"`
	Stats    statsFixture     `yaml:"stats"`
	Flats    []flatFixture    `yaml:"flats"`
	Tenants  []tenantFixture  `yaml:"tenants"`
	Leases   []leaseFixture   `yaml:"leases"`
	Payments []paymentFixture `yaml:"payments"`
}

type statsFixture struct {
	TotalFlats         int     `yaml:"total_flats"`
	OccupiedFlats      int     `yaml:"occupied_flats"`
	VacantFlats        int     `yaml:"vacant_flats"`
	MaintenanceFlats   int     `yaml:"maintenance_flats"`
	PendingPayments    int     `yaml:"pending_payments"`
	OverduePayments    int     `yaml:"overdue_payments"`
	TotalRentCollected float64 `yaml:"total_rent_collected"`
	TotalRentPending   float64 `yaml:"total_rent_pending"`
}

type flatFixture struct {
	ID          string    `yaml:"id"`
	FlatNumber  string    `yaml:"flat_number"`
	Floor       int       `yaml:"floor"`
	Bedrooms    int       `yaml:"bedrooms"`
	Bathrooms   int       `yaml:"bathrooms"`
	AreaSqft    float64   `yaml:"area_sqft"`
	MonthlyRent float64   `yaml:"monthly_rent"`
	Status      string    `yaml:"status"`
	Description string    `yaml:"description"`
	CreatedAt   time.Time `yaml:"created_at"`
}

type tenantFixture struct {
	ID               string    `yaml:"id"`
	FullName         string    `yaml:"full_name"`
	Email            string    `yaml:"email"`
	Phone            string    `yaml:"phone"`
	EmergencyContact string    `yaml:"emergency_contact"`
	EmergencyPhone   string    `yaml:"emergency_phone"`
	IDNumber         string    `yaml:"id_number"`
	Occupation       string    `yaml:"occupation"`
	CreatedAt        time.Time `yaml:"created_at"`
}

type leaseFixture struct {
	ID              string    `yaml:"id"`
	FlatID          string    `yaml:"flat_id"`
	TenantID        string    `yaml:"tenant_id"`
	StartDate       time.Time `yaml:"start_date"`
	EndDate         time.Time `yaml:"end_date"`
	MonthlyRent     float64   `yaml:"monthly_rent"`
	SecurityDeposit float64   `yaml:"security_deposit"`
	Status          string    `yaml:"status"`
	CreatedAt       time.Time `yaml:"created_at"`
}

type paymentFixture struct {
	ID            string     `yaml:"id"`
	LeaseID       string     `yaml:"lease_id"`
	Amount        float64    `yaml:"amount"`
	PaymentDate   *time.Time `yaml:"payment_date"`
	DueDate       time.Time  `yaml:"due_date"`
	PaymentMethod string     `yaml:"payment_method"`
	Status        string     `yaml:"status"`
	Notes         string     `yaml:"notes"`
	CreatedAt     time.Time  `yaml:"created_at"`
}

// Provider serves the embedded demo fixture set. The fixtures themselves are
// parsed once and never change; payment updates issued in demo mode mutate
// only this provider's in-memory copy, guarded by the mutex.
type Provider struct {
	mu sync.RWMutex

	stats       domain.DashboardStats
	flatViews   []domain.FlatView
	tenantViews []domain.TenantView
	leaseViews  []domain.LeaseView
	payments    []domain.PaymentView
}

// NewProvider parses the embedded fixtures and assembles the demo views
// through the same merge functions the live path semantics define.
func NewProvider() (*Provider, error) {
	var f fixtureFile
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse demo fixtures: %w", err)
	}

	flats := make([]domain.Flat, 0, len(f.Flats))
	for _, x := range f.Flats {
		flats = append(flats, domain.Flat(x))
	}
	tenants := make([]domain.Tenant, 0, len(f.Tenants))
	for _, x := range f.Tenants {
		tenants = append(tenants, domain.Tenant(x))
	}
	leases := make([]domain.Lease, 0, len(f.Leases))
	for _, x := range f.Leases {
		leases = append(leases, domain.Lease(x))
	}
	payments := make([]domain.RentPayment, 0, len(f.Payments))
	for _, x := range f.Payments {
		payments = append(payments, domain.RentPayment(x))
	}

	tenantByID := make(map[string]domain.Tenant, len(tenants))
	for _, t := range tenants {
		tenantByID[t.ID] = t
	}
	flatByID := make(map[string]domain.Flat, len(flats))
	for _, fl := range flats {
		flatByID[fl.ID] = fl
	}

	var active []domain.ActiveLease
	for _, l := range leases {
		if l.Status != domain.LeaseActive {
			continue
		}
		active = append(active, domain.ActiveLease{
			FlatID:         l.FlatID,
			TenantFullName: tenantByID[l.TenantID].FullName,
		})
	}

	// Payments newest due date first, matching the live query ordering
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].DueDate.After(payments[j].DueDate)
	})

	p := &Provider{
		stats:     domain.DashboardStats(f.Stats),
		flatViews: service.MergeFlatsWithActiveLease(flats, active),
		payments:  service.MergePaymentsWithContext(payments, leases, flats, tenants),
	}

	p.tenantViews = buildTenantViews(tenants, leases, flatByID)
	p.leaseViews = buildLeaseViews(leases, flatByID, tenantByID)

	return p, nil
}

func buildTenantViews(tenants []domain.Tenant, leases []domain.Lease, flatByID map[string]domain.Flat) []domain.TenantView {
	activeByTenant := make(map[string]domain.Lease, len(leases))
	for _, l := range leases {
		if l.Status != domain.LeaseActive {
			continue
		}
		if _, ok := activeByTenant[l.TenantID]; !ok {
			activeByTenant[l.TenantID] = l
		}
	}

	// Only tenants holding an active lease, ordered by name
	var views []domain.TenantView
	for _, t := range tenants {
		lease, ok := activeByTenant[t.ID]
		if !ok {
			continue
		}
		view := domain.TenantView{
			Tenant: t,
			Lease:  &domain.TenantLease{Lease: lease},
		}
		if flat, ok := flatByID[lease.FlatID]; ok {
			view.Lease.Flat = &domain.FlatSummary{
				FlatNumber:  flat.FlatNumber,
				MonthlyRent: flat.MonthlyRent,
			}
		}
		views = append(views, view)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].FullName < views[j].FullName
	})
	return views
}

func buildLeaseViews(leases []domain.Lease, flatByID map[string]domain.Flat, tenantByID map[string]domain.Tenant) []domain.LeaseView {
	views := make([]domain.LeaseView, 0, len(leases))
	for _, l := range leases {
		view := domain.LeaseView{Lease: l}
		if flat, ok := flatByID[l.FlatID]; ok {
			floor := flat.Floor
			view.Flat = &domain.FlatSummary{FlatNumber: flat.FlatNumber, Floor: &floor}
		}
		if tenant, ok := tenantByID[l.TenantID]; ok {
			view.Tenant = &domain.TenantSummary{
				FullName: tenant.FullName,
				Email:    tenant.Email,
				Phone:    tenant.Phone,
			}
		}
		views = append(views, view)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].StartDate.After(views[j].StartDate)
	})
	return views
}

// Stats returns the pre-aggregated demo dashboard statistics
func (p *Provider) Stats() domain.DashboardStats {
	return p.stats
}

// Flats returns the demo flat views with active leases attached
func (p *Provider) Flats() []domain.FlatView {
	out := make([]domain.FlatView, len(p.flatViews))
	for i, v := range p.flatViews {
		out[i] = cloneFlatView(v)
	}
	return out
}

// Payments returns the demo payment views, reflecting any demo-mode updates
func (p *Provider) Payments() []domain.PaymentView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]domain.PaymentView, len(p.payments))
	for i, v := range p.payments {
		out[i] = clonePaymentView(v)
	}
	return out
}

// Tenants returns the demo tenants holding active leases
func (p *Provider) Tenants() []domain.TenantView {
	out := make([]domain.TenantView, len(p.tenantViews))
	for i, v := range p.tenantViews {
		out[i] = cloneTenantView(v)
	}
	return out
}

// Leases returns the demo leases with context, newest start date first
func (p *Provider) Leases() []domain.LeaseView {
	out := make([]domain.LeaseView, len(p.leaseViews))
	for i, v := range p.leaseViews {
		out[i] = cloneLeaseView(v)
	}
	return out
}

// UpdatePayment applies a status update to the in-memory demo copy and
// returns the updated view. No real write is ever attempted in demo mode.
func (p *Provider) UpdatePayment(id, status string, paymentDate *time.Time) (*domain.PaymentView, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.payments {
		if p.payments[i].ID != id {
			continue
		}
		p.payments[i].Status = status
		if paymentDate != nil {
			t := *paymentDate
			p.payments[i].PaymentDate = &t
		} else {
			p.payments[i].PaymentDate = nil
		}
		updated := clonePaymentView(p.payments[i])
		return &updated, nil
	}
	return nil, domain.ErrPaymentNotFound
}

func cloneFlatView(v domain.FlatView) domain.FlatView {
	out := v
	if v.CurrentLease != nil {
		lease := *v.CurrentLease
		out.CurrentLease = &lease
	}
	return out
}

func clonePaymentView(v domain.PaymentView) domain.PaymentView {
	out := v
	if v.PaymentDate != nil {
		t := *v.PaymentDate
		out.PaymentDate = &t
	}
	if v.Lease != nil {
		lease := &domain.PaymentLease{}
		if v.Lease.Flat != nil {
			flat := *v.Lease.Flat
			lease.Flat = &flat
		}
		if v.Lease.Tenant != nil {
			tenant := *v.Lease.Tenant
			lease.Tenant = &tenant
		}
		out.Lease = lease
	}
	return out
}

func cloneTenantView(v domain.TenantView) domain.TenantView {
	out := v
	if v.Lease != nil {
		lease := &domain.TenantLease{Lease: v.Lease.Lease}
		if v.Lease.Flat != nil {
			flat := *v.Lease.Flat
			lease.Flat = &flat
		}
		out.Lease = lease
	}
	return out
}

func cloneLeaseView(v domain.LeaseView) domain.LeaseView {
	out := v
	if v.Flat != nil {
		flat := *v.Flat
		if v.Flat.Floor != nil {
			fl := *v.Flat.Floor
			flat.Floor = &fl
		}
		out.Flat = &flat
	}
	if v.Tenant != nil {
		tenant := *v.Tenant
		out.Tenant = &tenant
	}
	return out
}
