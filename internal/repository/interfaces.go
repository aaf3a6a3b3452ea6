package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syndesk/syndesk/internal/models"
)

// Every method takes a context (all of these do I/O) and, wherever tenant
// data is touched, a tenantID. The tenant filter is applied inside the
// repository; callers cannot issue an unscoped query by construction.

// TenantRepository handles tenant rows.
type TenantRepository interface {
	Create(ctx context.Context, name string) (*models.Tenant, error)
	GetByID(ctx context.Context, tenantID uuid.UUID) (*models.Tenant, error)
}

// StaffUserRepository handles manager accounts.
type StaffUserRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, email, displayName, passwordHash string) (*models.StaffUser, error)

	// GetByEmail is the login lookup: global, not tenant-scoped, because
	// the user types only an email. Returns nil, nil when not found.
	GetByEmail(ctx context.Context, email string) (*models.StaffUser, error)
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*models.StaffUser, error)
}

// BuildingRepository handles building rows.
type BuildingRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, name, address string) (*models.Building, error)
	GetByID(ctx context.Context, tenantID, buildingID uuid.UUID) (*models.Building, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Building, error)
	Update(ctx context.Context, tenantID, buildingID uuid.UUID, name, address string) (*models.Building, error)
	Delete(ctx context.Context, tenantID, buildingID uuid.UUID) error
}

// UnitRepository handles unit rows.
type UnitRepository interface {
	Create(ctx context.Context, tenantID, buildingID uuid.UUID, label string, floor int) (*models.Unit, error)
	GetByID(ctx context.Context, tenantID, unitID uuid.UUID) (*models.Unit, error)

	// ListByBuilding with uuid.Nil buildingID lists the whole tenant.
	ListByBuilding(ctx context.Context, tenantID, buildingID uuid.UUID) ([]models.Unit, error)
	Update(ctx context.Context, tenantID, unitID uuid.UUID, label string, floor int) (*models.Unit, error)
	Delete(ctx context.Context, tenantID, unitID uuid.UUID) error
}

// ResidentRepository handles resident rows. Residents are read-only input
// to the auto-link resolver and CRUD objects for the management API.
type ResidentRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, unitID *uuid.UUID, name, email, phone string) (*models.Resident, error)
	GetByID(ctx context.Context, tenantID, residentID uuid.UUID) (*models.Resident, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Resident, error)
	Update(ctx context.Context, tenantID, residentID uuid.UUID, unitID *uuid.UUID, name, email, phone string, isActive bool) (*models.Resident, error)

	// ListActiveByEmail returns active residents with exactly this email,
	// within this tenant only, in a deterministic order (created_at, id).
	// Case-sensitive exact match on email.
	ListActiveByEmail(ctx context.Context, tenantID uuid.UUID, email string) ([]models.Resident, error)
}

// PortalUserFields is the snapshot written onto a portal user at link time.
type PortalUserFields struct {
	ResidentID uuid.UUID
	Name       string
	Email      string
	Phone      string
}

// PortalUserRepository maps external identities to residents.
type PortalUserRepository interface {
	// GetByExternalID returns nil, nil when no row exists for the pair.
	GetByExternalID(ctx context.Context, externalUserID string, tenantID uuid.UUID) (*models.PortalUser, error)

	// Upsert creates or updates the (externalUserID, tenantID) row in a
	// single atomic statement. Racing upserts with identical fields are a
	// last-write-wins no-op, never an error.
	Upsert(ctx context.Context, externalUserID string, tenantID uuid.UUID, fields PortalUserFields) (*models.PortalUser, error)
}

// EngagementRepository handles the append-only view and rating event logs.
// Listing is corpus-wide (the help center is shared); a zero since means no
// lower bound.
type EngagementRepository interface {
	InsertView(ctx context.Context, tenantID uuid.UUID, slug, viewerID string, readPercentage float64) (*models.ArticleView, error)
	InsertRating(ctx context.Context, tenantID uuid.UUID, slug, raterID string, value int) (*models.ArticleRating, error)

	ListViews(ctx context.Context, since time.Time) ([]models.ArticleView, error)
	ListViewsBySlug(ctx context.Context, slug string, since time.Time) ([]models.ArticleView, error)
	ListRatings(ctx context.Context, since time.Time) ([]models.ArticleRating, error)
	ListRatingsBySlug(ctx context.Context, slug string, since time.Time) ([]models.ArticleRating, error)
}

// CommentRepository handles article comments.
type CommentRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, slug, authorID, authorName, body string) (*models.ArticleComment, error)
	ListBySlug(ctx context.Context, slug string, limit int) ([]models.ArticleComment, error)
}

// FinanceRepository handles income/expense entries.
type FinanceRepository interface {
	Create(ctx context.Context, tenantID uuid.UUID, buildingID *uuid.UUID, kind, category string, amountCents int64, note string, occurredOn time.Time) (*models.FinanceEntry, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]models.FinanceEntry, error)
	Delete(ctx context.Context, tenantID, entryID uuid.UUID) error
	Summarize(ctx context.Context, tenantID uuid.UUID, from, to time.Time) (*models.FinanceSummary, error)
}
