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

type UnitStore struct {
	pool *pgxpool.Pool
}

func NewUnitStore(pool *pgxpool.Pool) *UnitStore {
	return &UnitStore{pool: pool}
}

func (s *UnitStore) Create(ctx context.Context, tenantID, buildingID uuid.UUID, label string, floor int) (*models.Unit, error) {
	query := `
		INSERT INTO units (tenant_id, building_id, label, floor, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, tenant_id, building_id, label, floor, created_at`

	var u models.Unit
	err := s.pool.QueryRow(ctx, query, tenantID, buildingID, label, floor).Scan(
		&u.ID,
		&u.TenantID,
		&u.BuildingID,
		&u.Label,
		&u.Floor,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert unit: %w", err)
	}
	return &u, nil
}

func (s *UnitStore) GetByID(ctx context.Context, tenantID, unitID uuid.UUID) (*models.Unit, error) {
	query := `
		SELECT id, tenant_id, building_id, label, floor, created_at
		FROM units
		WHERE id = $1 AND tenant_id = $2`

	var u models.Unit
	err := s.pool.QueryRow(ctx, query, unitID, tenantID).Scan(
		&u.ID,
		&u.TenantID,
		&u.BuildingID,
		&u.Label,
		&u.Floor,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &u, nil
}

// ListByBuilding lists a building's units, or the whole tenant's when
// buildingID is uuid.Nil.
func (s *UnitStore) ListByBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) ([]models.Unit, error) {
	var query string
	var args []any

	if buildingID != uuid.Nil {
		query = `
			SELECT id, tenant_id, building_id, label, floor, created_at
			FROM units
			WHERE tenant_id = $1 AND building_id = $2
			ORDER BY floor, label`
		args = []any{tenantID, buildingID}
	} else {
		query = `
			SELECT id, tenant_id, building_id, label, floor, created_at
			FROM units
			WHERE tenant_id = $1
			ORDER BY floor, label`
		args = []any{tenantID}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	units := make([]models.Unit, 0)
	for rows.Next() {
		var u models.Unit
		if err := rows.Scan(
			&u.ID,
			&u.TenantID,
			&u.BuildingID,
			&u.Label,
			&u.Floor,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate units: %w", err)
	}
	return units, nil
}

func (s *UnitStore) Update(ctx context.Context, tenantID, unitID uuid.UUID, label string, floor int) (*models.Unit, error) {
	query := `
		UPDATE units
		SET label = $3, floor = $4
		WHERE id = $1 AND tenant_id = $2
		RETURNING id, tenant_id, building_id, label, floor, created_at`

	var u models.Unit
	err := s.pool.QueryRow(ctx, query, unitID, tenantID, label, floor).Scan(
		&u.ID,
		&u.TenantID,
		&u.BuildingID,
		&u.Label,
		&u.Floor,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update unit: %w", err)
	}
	return &u, nil
}

func (s *UnitStore) Delete(ctx context.Context, tenantID, unitID uuid.UUID) error {
	query := `DELETE FROM units WHERE id = $1 AND tenant_id = $2`
	if _, err := s.pool.Exec(ctx, query, unitID, tenantID); err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	return nil
}
