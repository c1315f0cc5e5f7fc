package domain

import (
	"context"
	"errors"
	"time"
)

// Flat statuses. The set is open-ended: statistics count the known values
// without assuming no others exist.
const (
	FlatVacant      = "vacant"
	FlatOccupied    = "occupied"
	FlatMaintenance = "maintenance"
)

// Lease statuses
const (
	LeaseActive     = "active"
	LeaseExpired    = "expired"
	LeaseTerminated = "terminated"
)

// Rent payment statuses
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentOverdue = "overdue"
)

var (
	// ErrPaymentNotFound indicates the payment id does not exist
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrInvalidStatus indicates a status value outside the recognized set
	ErrInvalidStatus = errors.New("invalid payment status")
)

// Flat represents a rentable unit. Status is a declared field and is not
// cross-validated against lease existence.
type Flat struct {
	ID          string    `json:"id"`
	FlatNumber  string    `json:"flat_number"`
	Floor       int       `json:"floor"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	AreaSqft    float64   `json:"area_sqft"`
	MonthlyRent float64   `json:"monthly_rent"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Tenant represents a person renting a flat
type Tenant struct {
	ID               string    `json:"id"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	EmergencyContact string    `json:"emergency_contact"`
	EmergencyPhone   string    `json:"emergency_phone"`
	IDNumber         string    `json:"id_number"`
	Occupation       string    `json:"occupation"`
	CreatedAt        time.Time `json:"created_at"`
}

// Lease represents a time-bounded rental agreement linking one tenant to one
// flat. At most one active lease per flat is assumed but not enforced.
type Lease struct {
	ID              string    `json:"id"`
	FlatID          string    `json:"flat_id"`
	TenantID        string    `json:"tenant_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MonthlyRent     float64   `json:"monthly_rent"`
	SecurityDeposit float64   `json:"security_deposit"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// RentPayment represents one due/paid obligation tied to a lease.
// PaymentDate stays nil until the payment is marked paid.
type RentPayment struct {
	ID            string     `json:"id"`
	LeaseID       string     `json:"lease_id"`
	Amount        float64    `json:"amount"`
	PaymentDate   *time.Time `json:"payment_date"`
	DueDate       time.Time  `json:"due_date"`
	PaymentMethod string     `json:"payment_method"`
	Status        string     `json:"status"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ActiveLease is the minimal lease row the flat merge needs: which flat it
// covers and who rents it.
type ActiveLease struct {
	FlatID         string `json:"flat_id"`
	TenantFullName string `json:"tenant_full_name"`
}

// FlatRepository defines read access to flats
type FlatRepository interface {
	// ListAll returns every flat ordered by flat_number ascending
	ListAll(ctx context.Context) ([]Flat, error)
	// ListStatuses returns flats with only the status column populated
	ListStatuses(ctx context.Context) ([]Flat, error)
}

// LeaseRepository defines read access to leases
type LeaseRepository interface {
	// ListActive returns (flat_id, tenant name) pairs for active leases
	ListActive(ctx context.Context) ([]ActiveLease, error)
	// ListWithContext returns leases with flat and tenant context,
	// ordered by start_date descending
	ListWithContext(ctx context.Context) ([]LeaseView, error)
}

// TenantRepository defines read access to tenants
type TenantRepository interface {
	// ListWithActiveLease returns tenants ordered by full_name, each with
	// its active lease context when one exists
	ListWithActiveLease(ctx context.Context) ([]TenantView, error)
}

// RentPaymentRepository defines access to rent payments
type RentPaymentRepository interface {
	// ListWithContext returns payments with lease/flat/tenant context,
	// ordered by due_date descending
	ListWithContext(ctx context.Context) ([]PaymentView, error)
	// ListDueSince returns payments with due_date >= since, status and
	// amount populated
	ListDueSince(ctx context.Context, since time.Time) ([]RentPayment, error)
	// UpdateStatus sets a payment's status and payment date and returns
	// the updated view
	UpdateStatus(ctx context.Context, id, status string, paymentDate *time.Time) (*PaymentView, error)
}
