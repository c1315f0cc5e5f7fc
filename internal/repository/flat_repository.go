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

// PostgresFlatRepository implements domain.FlatRepository using PostgreSQL
type PostgresFlatRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresFlatRepository creates a new flat repository
func NewPostgresFlatRepository(db *sql.DB, logger *slog.Logger) *PostgresFlatRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresFlatRepository{db: db, logger: logger}
}

// ListAll returns every flat ordered by flat_number ascending. The merge
// step downstream relies on this ordering and must not re-sort.
func (r *PostgresFlatRepository) ListAll(ctx context.Context) ([]domain.Flat, error) {
	query := `
		SELECT id, flat_number, floor, bedrooms, bathrooms, area_sqft,
		       monthly_rent, status, description, created_at
		FROM flats
		ORDER BY flat_number
	`
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		metrics.ObserveQuery("flats_list", "error", time.Since(start))
		return nil, fmt.Errorf("failed to list flats: %w", err)
	}
	defer rows.Close()

	var out []domain.Flat
	for rows.Next() {
		var f domain.Flat
		if err := rows.Scan(
			&f.ID, &f.FlatNumber, &f.Floor, &f.Bedrooms, &f.Bathrooms,
			&f.AreaSqft, &f.MonthlyRent, &f.Status, &f.Description, &f.CreatedAt,
		); err != nil {
			metrics.ObserveQuery("flats_list", "error", time.Since(start))
			return nil, fmt.Errorf("failed to scan flat: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		metrics.ObserveQuery("flats_list", "error", time.Since(start))
		return nil, fmt.Errorf("failed to read flats: %w", err)
	}

	metrics.ObserveQuery("flats_list", "ok", time.Since(start))
	return out, nil
}

// ListStatuses returns flats with only the status column populated, the
// minimal projection dashboard statistics need.
func (r *PostgresFlatRepository) ListStatuses(ctx context.Context) ([]domain.Flat, error) {
	query := `SELECT status FROM flats`

	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		metrics.ObserveQuery("flats_statuses", "error", time.Since(start))
		return nil, fmt.Errorf("failed to list flat statuses: %w", err)
	}
	defer rows.Close()

	var out []domain.Flat
	for rows.Next() {
		var f domain.Flat
		if err := rows.Scan(&f.Status); err != nil {
			metrics.ObserveQuery("flats_statuses", "error", time.Since(start))
			return nil, fmt.Errorf("failed to scan flat status: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		metrics.ObserveQuery("flats_statuses", "error", time.Since(start))
		return nil, fmt.Errorf("failed to read flat statuses: %w", err)
	}

	metrics.ObserveQuery("flats_statuses", "ok", time.Since(start))
	return out, nil
}
