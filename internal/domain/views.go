package domain

// DashboardStats is a derived view recomputed on every request from current
// flat and payment rows. It has no identity and is never persisted.
type DashboardStats struct {
	TotalFlats         int     `json:"totalFlats"`
	OccupiedFlats      int     `json:"occupiedFlats"`
	VacantFlats        int     `json:"vacantFlats"`
	MaintenanceFlats   int     `json:"maintenanceFlats"`
	PendingPayments    int     `json:"pendingPayments"`
	OverduePayments    int     `json:"overduePayments"`
	TotalRentCollected float64 `json:"totalRentCollected"`
	TotalRentPending   float64 `json:"totalRentPending"`
}

// FlatSummary is the flat context embedded in lease/payment/tenant views.
// Floor is a pointer so a legitimate ground floor (0) survives omitempty.
type FlatSummary struct {
	FlatNumber  string  `json:"flat_number"`
	Floor       *int    `json:"floor,omitempty"`
	MonthlyRent float64 `json:"monthly_rent,omitempty"`
}

// TenantSummary is the tenant context embedded in other views
type TenantSummary struct {
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// CurrentLease marks a flat as occupied by naming the tenant. Its presence
// on a FlatView is the occupancy signal for rendering.
type CurrentLease struct {
	Tenant TenantSummary `json:"tenant"`
}

// FlatView is a flat with its active lease attached when one exists.
// CurrentLease is nil, not empty, when the flat has no active lease.
type FlatView struct {
	Flat
	CurrentLease *CurrentLease `json:"current_lease,omitempty"`
}

// PaymentLease is the lease context attached to a payment. Flat and tenant
// are independently optional: a dangling lease reference leaves both nil.
type PaymentLease struct {
	Flat   *FlatSummary   `json:"flat,omitempty"`
	Tenant *TenantSummary `json:"tenant,omitempty"`
}

// PaymentView is a rent payment with lease/flat/tenant context
type PaymentView struct {
	RentPayment
	Lease *PaymentLease `json:"lease,omitempty"`
}

// TenantLease is a tenant's active lease with its flat context
type TenantLease struct {
	Lease
	Flat *FlatSummary `json:"flat,omitempty"`
}

// TenantView is a tenant with active lease context when one exists
type TenantView struct {
	Tenant
	Lease *TenantLease `json:"lease,omitempty"`
}

// LeaseView is a lease with flat and tenant context
type LeaseView struct {
	Lease
	Flat   *FlatSummary   `json:"flat,omitempty"`
	Tenant *TenantSummary `json:"tenant,omitempty"`
}
