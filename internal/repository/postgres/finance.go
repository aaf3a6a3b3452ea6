package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/syndesk/syndesk/internal/models"
)

type FinanceStore struct {
	pool *pgxpool.Pool
}

func NewFinanceStore(pool *pgxpool.Pool) *FinanceStore {
	return &FinanceStore{pool: pool}
}

func (s *FinanceStore) Create(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID, kind, category string, amountCents int64, note string, occurredOn time.Time) (*models.FinanceEntry, error) {
	query := `
		INSERT INTO finance_entries (tenant_id, building_id, kind, category, amount_cents, note, occurred_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, tenant_id, building_id, kind, category, amount_cents, note, occurred_on, created_at`

	var e models.FinanceEntry
	err := s.pool.QueryRow(ctx, query, tenantID, buildingID, kind, category, amountCents, note, occurredOn).Scan(
		&e.ID,
		&e.TenantID,
		&e.BuildingID,
		&e.Kind,
		&e.Category,
		&e.AmountCents,
		&e.Note,
		&e.OccurredOn,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert finance entry: %w", err)
	}
	return &e, nil
}

// ListByTenant lists entries in a window, newest occurrence first. Zero
// from/to mean unbounded on that side.
func (s *FinanceStore) ListByTenant(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.FinanceEntry, error) {
	query := `
		SELECT id, tenant_id, building_id, kind, category, amount_cents, note, occurred_on, created_at
		FROM finance_entries
		WHERE tenant_id = $1`
	args := []any{tenantID}

	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND occurred_on >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND occurred_on <= $%d", len(args))
	}
	query += " ORDER BY occurred_on DESC, created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list finance entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.FinanceEntry, 0)
	for rows.Next() {
		var e models.FinanceEntry
		if err := rows.Scan(
			&e.ID,
			&e.TenantID,
			&e.BuildingID,
			&e.Kind,
			&e.Category,
			&e.AmountCents,
			&e.Note,
			&e.OccurredOn,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan finance entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate finance entries: %w", err)
	}
	return entries, nil
}

func (s *FinanceStore) Delete(ctx context.Context, tenantID, entryID uuid.UUID) error {
	query := `DELETE FROM finance_entries WHERE id = $1 AND tenant_id = $2`
	if _, err := s.pool.Exec(ctx, query, entryID, tenantID); err != nil {
		return fmt.Errorf("delete finance entry: %w", err)
	}
	return nil
}

// Summarize totals income and expense over a window in one query.
func (s *FinanceStore) Summarize(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*models.FinanceSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE kind = 'income'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE kind = 'expense'), 0),
			COUNT(*)
		FROM finance_entries
		WHERE tenant_id = $1`
	args := []any{tenantID}

	if !from.IsZero() {
		args = append(args, from)
		query += fmt.Sprintf(" AND occurred_on >= $%d", len(args))
	}
	if !to.IsZero() {
		args = append(args, to)
		query += fmt.Sprintf(" AND occurred_on <= $%d", len(args))
	}

	var sum models.FinanceSummary
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&sum.IncomeCents,
		&sum.ExpenseCents,
		&sum.EntryCount,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize finance entries: %w", err)
	}
	sum.NetCents = sum.IncomeCents - sum.ExpenseCents
	return &sum, nil
}
