package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/syndesk/syndesk/internal/models"
	"github.com/syndesk/syndesk/internal/repository"
)

type PortalUserStore struct {
	pool *pgxpool.Pool
}

func NewPortalUserStore(pool *pgxpool.Pool) *PortalUserStore {
	return &PortalUserStore{pool: pool}
}

func (s *PortalUserStore) GetByExternalID(ctx context.Context, externalUserID string, tenantID uuid.UUID) (*models.PortalUser, error) {
	query := `
		SELECT id, external_user_id, tenant_id, resident_id, name, email, phone, created_at, updated_at
		FROM portal_users
		WHERE external_user_id = $1 AND tenant_id = $2`

	var u models.PortalUser
	err := s.pool.QueryRow(ctx, query, externalUserID, tenantID).Scan(
		&u.ID,
		&u.ExternalUserID,
		&u.TenantID,
		&u.ResidentID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get portal user: %w", err)
	}
	return &u, nil
}

// Upsert writes the link in one atomic statement. The unique index on
// (external_user_id, tenant_id) makes concurrent upserts converge: two
// racing resolutions of the same identity carry identical fields, so the
// loser's DO UPDATE rewrites the same values.
func (s *PortalUserStore) Upsert(ctx context.Context, externalUserID string, tenantID uuid.UUID, fields repository.PortalUserFields) (*models.PortalUser, error) {
	query := `
		INSERT INTO portal_users (external_user_id, tenant_id, resident_id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		ON CONFLICT (external_user_id, tenant_id) DO UPDATE
		SET resident_id = EXCLUDED.resident_id,
		    name = EXCLUDED.name,
		    email = EXCLUDED.email,
		    phone = EXCLUDED.phone,
		    updated_at = now()
		RETURNING id, external_user_id, tenant_id, resident_id, name, email, phone, created_at, updated_at`

	var u models.PortalUser
	err := s.pool.QueryRow(ctx, query, externalUserID, tenantID, fields.ResidentID, fields.Name, fields.Email, fields.Phone).Scan(
		&u.ID,
		&u.ExternalUserID,
		&u.TenantID,
		&u.ResidentID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert portal user: %w", err)
	}
	return &u, nil
}
