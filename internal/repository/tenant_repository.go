package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/flatdash/internal/domain"
	"github.com/yourorg/flatdash/internal/observability/metrics"
)

// PostgresTenantRepository implements domain.TenantRepository using PostgreSQL
type PostgresTenantRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresTenantRepository creates a new tenant repository
func NewPostgresTenantRepository(db *sql.DB, logger *slog.Logger) *PostgresTenantRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTenantRepository{db: db, logger: logger}
}

// ListWithActiveLease returns tenants holding an active lease, ordered by
// full name, each with the lease and its flat attached. Tenants without an
// active lease are excluded, matching the tenants listing this serves.
func (r *PostgresTenantRepository) ListWithActiveLease(ctx context.Context) ([]domain.TenantView, error) {
	query := `
		SELECT t.id, t.full_name, t.email, t.phone, t.emergency_contact,
		       t.emergency_phone, t.id_number, t.occupation, t.created_at,
		       l.id, l.flat_id, l.tenant_id, l.start_date, l.end_date,
		       l.monthly_rent, l.security_deposit, l.status, l.created_at,
		       f.flat_number, f.monthly_rent
		FROM tenants t
		JOIN leases l ON l.tenant_id = t.id AND l.status = 'active'
		LEFT JOIN flats f ON f.id = l.flat_id
		ORDER BY t.full_name
	`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		metrics.ObserveQuery("tenants_list", "error", time.Since(start))
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	var out []domain.TenantView
	for rows.Next() {
		var (
			v          domain.TenantView
			lease      domain.Lease
			flatNumber sql.NullString
			flatRent   sql.NullFloat64
		)
		if err := rows.Scan(
			&v.ID, &v.FullName, &v.Email, &v.Phone, &v.EmergencyContact,
			&v.EmergencyPhone, &v.IDNumber, &v.Occupation, &v.CreatedAt,
			&lease.ID, &lease.FlatID, &lease.TenantID, &lease.StartDate,
			&lease.EndDate, &lease.MonthlyRent, &lease.SecurityDeposit,
			&lease.Status, &lease.CreatedAt,
			&flatNumber, &flatRent,
		); err != nil {
			metrics.ObserveQuery("tenants_list", "error", time.Since(start))
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		v.Lease = &domain.TenantLease{Lease: lease}
		if flatNumber.Valid {
			v.Lease.Flat = &domain.FlatSummary{
				FlatNumber:  flatNumber.String,
				MonthlyRent: flatRent.Float64,
			}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		metrics.ObserveQuery("tenants_list", "error", time.Since(start))
		return nil, fmt.Errorf("failed to read tenants: %w", err)
	}

	metrics.ObserveQuery("tenants_list", "ok", time.Since(start))
	return out, nil
}
