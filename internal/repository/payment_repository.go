package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/flatdash/internal/domain"
	"github.com/yourorg/flatdash/internal/observability/metrics"
)

// PostgresRentPaymentRepository implements domain.RentPaymentRepository
// using PostgreSQL
type PostgresRentPaymentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresRentPaymentRepository creates a new rent payment repository
func NewPostgresRentPaymentRepository(db *sql.DB, logger *slog.Logger) *PostgresRentPaymentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRentPaymentRepository{db: db, logger: logger}
}

// ListWithContext returns all payments newest due date first, with flat
// number and tenant name joined through the lease. Joins are LEFT so a
// payment with a dangling lease reference still comes back, just without
// context.
func (r *PostgresRentPaymentRepository) ListWithContext(ctx context.Context) ([]domain.PaymentView, error) {
	query := `
		SELECT p.id, p.lease_id, p.amount, p.payment_date, p.due_date,
		       p.payment_method, p.status, p.notes, p.created_at,
		       l.id, f.flat_number, t.full_name
		FROM rent_payments p
		LEFT JOIN leases l ON l.id = p.lease_id
		LEFT JOIN flats f ON f.id = l.flat_id
		LEFT JOIN tenants t ON t.id = l.tenant_id
		ORDER BY p.due_date DESC
	`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		metrics.ObserveQuery("payments_list", "error", time.Since(start))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var out []domain.PaymentView
	for rows.Next() {
		v, err := scanPaymentView(rows)
		if err != nil {
			metrics.ObserveQuery("payments_list", "error", time.Since(start))
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		metrics.ObserveQuery("payments_list", "error", time.Since(start))
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}

	metrics.ObserveQuery("payments_list", "ok", time.Since(start))
	return out, nil
}

// ListDueSince returns payments due on or after the given instant, status
// and amount only. Dashboard statistics pass the start of the current month.
func (r *PostgresRentPaymentRepository) ListDueSince(ctx context.Context, since time.Time) ([]domain.RentPayment, error) {
	query := `SELECT status, amount FROM rent_payments WHERE due_date >= $1`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		metrics.ObserveQuery("payments_due_since", "error", time.Since(start))
		return nil, fmt.Errorf("failed to list payments due since %s: %w", since.Format(time.RFC3339), err)
	}
	defer rows.Close()

	var out []domain.RentPayment
	for rows.Next() {
		var p domain.RentPayment
		if err := rows.Scan(&p.Status, &p.Amount); err != nil {
			metrics.ObserveQuery("payments_due_since", "error", time.Since(start))
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		metrics.ObserveQuery("payments_due_since", "error", time.Since(start))
		return nil, fmt.Errorf("failed to read payments: %w", err)
	}

	metrics.ObserveQuery("payments_due_since", "ok", time.Since(start))
	return out, nil
}

// UpdateStatus sets a payment's status and payment date in one statement and
// returns the updated view with its lease context. paymentDate nil clears
// the column; validation of the status value happens in the handler, there
// is no safe fallback substitute for a failed write.
func (r *PostgresRentPaymentRepository) UpdateStatus(ctx context.Context, id, status string, paymentDate *time.Time) (*domain.PaymentView, error) {
	query := `
		WITH updated AS (
			UPDATE rent_payments
			SET status = $1, payment_date = $2
			WHERE id = $3
			RETURNING id, lease_id, amount, payment_date, due_date,
			          payment_method, status, notes, created_at
		)
		SELECT p.id, p.lease_id, p.amount, p.payment_date, p.due_date,
		       p.payment_method, p.status, p.notes, p.created_at,
		       l.id, f.flat_number, t.full_name
		FROM updated p
		LEFT JOIN leases l ON l.id = p.lease_id
		LEFT JOIN flats f ON f.id = l.flat_id
		LEFT JOIN tenants t ON t.id = l.tenant_id
	`
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, status, paymentDate, id)
	v, err := scanPaymentView(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.ObserveQuery("payments_update", "not_found", time.Since(start))
			return nil, domain.ErrPaymentNotFound
		}
		metrics.ObserveQuery("payments_update", "error", time.Since(start))
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	metrics.ObserveQuery("payments_update", "ok", time.Since(start))
	r.logger.Debug("payment updated",
		slog.String("payment_id", id),
		slog.String("status", status),
	)
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPaymentView(row rowScanner) (*domain.PaymentView, error) {
	var (
		v           domain.PaymentView
		paymentDate sql.NullTime
		leaseID     sql.NullString
		flatNumber  sql.NullString
		fullName    sql.NullString
	)
	if err := row.Scan(
		&v.ID, &v.LeaseID, &v.Amount, &paymentDate, &v.DueDate,
		&v.PaymentMethod, &v.Status, &v.Notes, &v.CreatedAt,
		&leaseID, &flatNumber, &fullName,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	if paymentDate.Valid {
		t := paymentDate.Time
		v.PaymentDate = &t
	}
	if leaseID.Valid {
		lease := &domain.PaymentLease{}
		if flatNumber.Valid {
			lease.Flat = &domain.FlatSummary{FlatNumber: flatNumber.String}
		}
		if fullName.Valid {
			lease.Tenant = &domain.TenantSummary{FullName: fullName.String}
		}
		v.Lease = lease
	}
	return &v, nil
}
