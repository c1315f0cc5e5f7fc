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

// PostgresLeaseRepository implements domain.LeaseRepository using PostgreSQL
type PostgresLeaseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresLeaseRepository creates a new lease repository
func NewPostgresLeaseRepository(db *sql.DB, logger *slog.Logger) *PostgresLeaseRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresLeaseRepository{db: db, logger: logger}
}

// ListActive returns one (flat_id, tenant name) pair per active lease.
// Duplicate flat_ids are possible when the single-active-lease invariant is
// violated upstream; resolving that is the merge step's job.
func (r *PostgresLeaseRepository) ListActive(ctx context.Context) ([]domain.ActiveLease, error) {
	query := `
		SELECT l.flat_id, t.full_name
		FROM leases l
		JOIN tenants t ON t.id = l.tenant_id
		WHERE l.status = 'active'
		ORDER BY l.created_at
	`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		metrics.ObserveQuery("leases_active", "error", time.Since(start))
		return nil, fmt.Errorf("failed to list active leases: %w", err)
	}
	defer rows.Close()

	var out []domain.ActiveLease
	for rows.Next() {
		var l domain.ActiveLease
		if err := rows.Scan(&l.FlatID, &l.TenantFullName); err != nil {
			metrics.ObserveQuery("leases_active", "error", time.Since(start))
			return nil, fmt.Errorf("failed to scan active lease: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		metrics.ObserveQuery("leases_active", "error", time.Since(start))
		return nil, fmt.Errorf("failed to read active leases: %w", err)
	}

	metrics.ObserveQuery("leases_active", "ok", time.Since(start))
	return out, nil
}

// ListWithContext returns all leases with flat and tenant context, newest
// start date first.
func (r *PostgresLeaseRepository) ListWithContext(ctx context.Context) ([]domain.LeaseView, error) {
	query := `
		SELECT l.id, l.flat_id, l.tenant_id, l.start_date, l.end_date,
		       l.monthly_rent, l.security_deposit, l.status, l.created_at,
		       f.flat_number, f.floor,
		       t.full_name, t.email, t.phone
		FROM leases l
		LEFT JOIN flats f ON f.id = l.flat_id
		LEFT JOIN tenants t ON t.id = l.tenant_id
		ORDER BY l.start_date DESC
	`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		metrics.ObserveQuery("leases_list", "error", time.Since(start))
		return nil, fmt.Errorf("failed to list leases: %w", err)
	}
	defer rows.Close()

	var out []domain.LeaseView
	for rows.Next() {
		var (
			v          domain.LeaseView
			flatNumber sql.NullString
			floor      sql.NullInt64
			fullName   sql.NullString
			email      sql.NullString
			phone      sql.NullString
		)
		if err := rows.Scan(
			&v.ID, &v.FlatID, &v.TenantID, &v.StartDate, &v.EndDate,
			&v.MonthlyRent, &v.SecurityDeposit, &v.Status, &v.CreatedAt,
			&flatNumber, &floor, &fullName, &email, &phone,
		); err != nil {
			metrics.ObserveQuery("leases_list", "error", time.Since(start))
			return nil, fmt.Errorf("failed to scan lease: %w", err)
		}
		if flatNumber.Valid {
			v.Flat = &domain.FlatSummary{FlatNumber: flatNumber.String}
			if floor.Valid {
				fl := int(floor.Int64)
				v.Flat.Floor = &fl
			}
		}
		if fullName.Valid {
			v.Tenant = &domain.TenantSummary{
				FullName: fullName.String,
				Email:    email.String,
				Phone:    phone.String,
			}
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		metrics.ObserveQuery("leases_list", "error", time.Since(start))
		return nil, fmt.Errorf("failed to read leases: %w", err)
	}

	metrics.ObserveQuery("leases_list", "ok", time.Since(start))
	return out, nil
}
