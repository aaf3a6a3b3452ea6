package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/syndesk/syndesk/internal/models"
)

type ResidentStore struct {
	pool *pgxpool.Pool
}

func NewResidentStore(pool *pgxpool.Pool) *ResidentStore {
	return &ResidentStore{pool: pool}
}

func (s *ResidentStore) Create(ctx context.Context, tenantID uuid.UUID, unitID *uuid.UUID, name, email, phone string) (*models.Resident, error) {
	query := `
		INSERT INTO residents (tenant_id, unit_id, name, email, phone, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, true, now())
		RETURNING id, tenant_id, unit_id, name, email, phone, is_active, created_at`

	var r models.Resident
	err := s.pool.QueryRow(ctx, query, tenantID, unitID, name, email, phone).Scan(
		&r.ID,
		&r.TenantID,
		&r.UnitID,
		&r.Name,
		&r.Email,
		&r.Phone,
		&r.IsActive,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert resident: %w", err)
	}
	return &r, nil
}

func (s *ResidentStore) GetByID(ctx context.Context, tenantID, residentID uuid.UUID) (*models.Resident, error) {
	query := `
		SELECT id, tenant_id, unit_id, name, email, phone, is_active, created_at
		FROM residents
		WHERE id = $1 AND tenant_id = $2`

	var r models.Resident
	err := s.pool.QueryRow(ctx, query, residentID, tenantID).Scan(
		&r.ID,
		&r.TenantID,
		&r.UnitID,
		&r.Name,
		&r.Email,
		&r.Phone,
		&r.IsActive,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resident: %w", err)
	}
	return &r, nil
}

func (s *ResidentStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Resident, error) {
	query := `
		SELECT id, tenant_id, unit_id, name, email, phone, is_active, created_at
		FROM residents
		WHERE tenant_id = $1
		ORDER BY name`

	rows, err := s.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	defer rows.Close()
	return scanResidents(rows)
}

func (s *ResidentStore) Update(ctx context.Context, tenantID, residentID uuid.UUID, unitID *uuid.UUID, name, email, phone string, isActive bool) (*models.Resident, error) {
	query := `
		UPDATE residents
		SET unit_id = $3, name = $4, email = $5, phone = $6, is_active = $7
		WHERE id = $1 AND tenant_id = $2
		RETURNING id, tenant_id, unit_id, name, email, phone, is_active, created_at`

	var r models.Resident
	err := s.pool.QueryRow(ctx, query, residentID, tenantID, unitID, name, email, phone, isActive).Scan(
		&r.ID,
		&r.TenantID,
		&r.UnitID,
		&r.Name,
		&r.Email,
		&r.Phone,
		&r.IsActive,
		&r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update resident: %w", err)
	}
	return &r, nil
}

// ListActiveByEmail returns active residents with exactly this email inside
// one tenant. The tenant filter is part of the query text, never optional.
// Ordering by (created_at, id) makes "first match" deterministic for the
// auto-link resolver.
func (s *ResidentStore) ListActiveByEmail(ctx context.Context, tenantID uuid.UUID, email string) ([]models.Resident, error) {
	query := `
		SELECT id, tenant_id, unit_id, name, email, phone, is_active, created_at
		FROM residents
		WHERE tenant_id = $1 AND email = $2 AND is_active = true
		ORDER BY created_at, id`

	rows, err := s.pool.Query(ctx, query, tenantID, email)
	if err != nil {
		return nil, fmt.Errorf("list residents by email: %w", err)
	}
	defer rows.Close()
	return scanResidents(rows)
}

func scanResidents(rows pgx.Rows) ([]models.Resident, error) {
	residents := make([]models.Resident, 0)
	for rows.Next() {
		var r models.Resident
		if err := rows.Scan(
			&r.ID,
			&r.TenantID,
			&r.UnitID,
			&r.Name,
			&r.Email,
			&r.Phone,
			&r.IsActive,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		residents = append(residents, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate residents: %w", err)
	}
	return residents, nil
}
