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

type StaffUserStore struct {
	pool *pgxpool.Pool
}

func NewStaffUserStore(pool *pgxpool.Pool) *StaffUserStore {
	return &StaffUserStore{pool: pool}
}

func (s *StaffUserStore) Create(ctx context.Context, tenantID uuid.UUID, email, displayName, passwordHash string) (*models.StaffUser, error) {
	query := `
		INSERT INTO staff_users (tenant_id, email, display_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, tenant_id, email, display_name, password_hash, created_at`

	var u models.StaffUser
	err := s.pool.QueryRow(ctx, query, tenantID, email, displayName, passwordHash).Scan(
		&u.ID,
		&u.TenantID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert staff user: %w", err)
	}
	return &u, nil
}

// GetByEmail looks up a staff user by email, globally. Login starts from an
// email alone, so this is the one lookup without a tenant filter.
func (s *StaffUserStore) GetByEmail(ctx context.Context, email string) (*models.StaffUser, error) {
	query := `
		SELECT id, tenant_id, email, display_name, password_hash, created_at
		FROM staff_users
		WHERE email = $1`

	var u models.StaffUser
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.TenantID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff user by email: %w", err)
	}
	return &u, nil
}

func (s *StaffUserStore) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*models.StaffUser, error) {
	query := `
		SELECT id, tenant_id, email, display_name, password_hash, created_at
		FROM staff_users
		WHERE id = $1 AND tenant_id = $2`

	var u models.StaffUser
	err := s.pool.QueryRow(ctx, query, userID, tenantID).Scan(
		&u.ID,
		&u.TenantID,
		&u.Email,
		&u.DisplayName,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff user: %w", err)
	}
	return &u, nil
}
