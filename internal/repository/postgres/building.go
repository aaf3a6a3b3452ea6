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

type BuildingStore struct {
	pool *pgxpool.Pool
}

func NewBuildingStore(pool *pgxpool.Pool) *BuildingStore {
	return &BuildingStore{pool: pool}
}

func (s *BuildingStore) Create(ctx context.Context, tenantID uuid.UUID, name, address string) (*models.Building, error) {
	query := `
		INSERT INTO buildings (tenant_id, name, address, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, tenant_id, name, address, created_at`

	var b models.Building
	err := s.pool.QueryRow(ctx, query, tenantID, name, address).Scan(
		&b.ID,
		&b.TenantID,
		&b.Name,
		&b.Address,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert building: %w", err)
	}
	return &b, nil
}

func (s *BuildingStore) GetByID(ctx context.Context, tenantID, buildingID uuid.UUID) (*models.Building, error) {
	query := `
		SELECT id, tenant_id, name, address, created_at
		FROM buildings
		WHERE id = $1 AND tenant_id = $2`

	var b models.Building
	err := s.pool.QueryRow(ctx, query, buildingID, tenantID).Scan(
		&b.ID,
		&b.TenantID,
		&b.Name,
		&b.Address,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get building: %w", err)
	}
	return &b, nil
}

func (s *BuildingStore) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Building, error) {
	query := `
		SELECT id, tenant_id, name, address, created_at
		FROM buildings
		WHERE tenant_id = $1
		ORDER BY name`

	rows, err := s.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list buildings: %w", err)
	}
	defer rows.Close()

	buildings := make([]models.Building, 0)
	for rows.Next() {
		var b models.Building
		if err := rows.Scan(
			&b.ID,
			&b.TenantID,
			&b.Name,
			&b.Address,
			&b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan building: %w", err)
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buildings: %w", err)
	}
	return buildings, nil
}

func (s *BuildingStore) Update(ctx context.Context, tenantID, buildingID uuid.UUID, name, address string) (*models.Building, error) {
	query := `
		UPDATE buildings
		SET name = $3, address = $4
		WHERE id = $1 AND tenant_id = $2
		RETURNING id, tenant_id, name, address, created_at`

	var b models.Building
	err := s.pool.QueryRow(ctx, query, buildingID, tenantID, name, address).Scan(
		&b.ID,
		&b.TenantID,
		&b.Name,
		&b.Address,
		&b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update building: %w", err)
	}
	return &b, nil
}

func (s *BuildingStore) Delete(ctx context.Context, tenantID, buildingID uuid.UUID) error {
	query := `DELETE FROM buildings WHERE id = $1 AND tenant_id = $2`
	if _, err := s.pool.Exec(ctx, query, buildingID, tenantID); err != nil {
		return fmt.Errorf("delete building: %w", err)
	}
	return nil
}
