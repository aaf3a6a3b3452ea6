package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is the top-level isolation boundary: one syndicate/property-management
// organization. Every building, resident and finance entry belongs to exactly
// one tenant, and every query is scoped by it.
type Tenant struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// StaffUser is a manager account on the management side of the API.
// Authenticates with email+password; the JWT it receives carries the tenant.
type StaffUser struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenant_id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Building is a managed property within a tenant.
type Building struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Unit is a single apartment/lot inside a building.
type Unit struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	BuildingID uuid.UUID `json:"building_id"`
	Label      string    `json:"label"`
	Floor      int       `json:"floor"`
	CreatedAt  time.Time `json:"created_at"`
}

// Resident is a person living in (or owning) a unit. Email is the join key
// for portal auto-linking; only active residents are eligible.
type Resident struct {
	ID        uuid.UUID  `json:"id"`
	TenantID  uuid.UUID  `json:"tenant_id"`
	UnitID    *uuid.UUID `json:"unit_id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

// PortalUser maps an external authenticated identity to a resident within a
// tenant. At most one row per (external_user_id, tenant_id); ResidentID is
// nil until auto-linking succeeds. Name/email/phone are a point-in-time
// snapshot copied from the resident at link time, not a live join.
type PortalUser struct {
	ID             uuid.UUID  `json:"id"`
	ExternalUserID string     `json:"external_user_id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	ResidentID     *uuid.UUID `json:"resident_id,omitempty"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Finance entry kinds.
const (
	FinanceIncome  = "income"
	FinanceExpense = "expense"
)

// FinanceEntry is one income or expense row. Amounts are integer cents to
// avoid float rounding in sums.
type FinanceEntry struct {
	ID          uuid.UUID  `json:"id"`
	TenantID    uuid.UUID  `json:"tenant_id"`
	BuildingID  *uuid.UUID `json:"building_id,omitempty"`
	Kind        string     `json:"kind"`
	Category    string     `json:"category"`
	AmountCents int64      `json:"amount_cents"`
	Note        string     `json:"note"`
	OccurredOn  time.Time  `json:"occurred_on"`
	CreatedAt   time.Time  `json:"created_at"`
}

// FinanceSummary aggregates entries over a window.
type FinanceSummary struct {
	IncomeCents  int64 `json:"income_cents"`
	ExpenseCents int64 `json:"expense_cents"`
	NetCents     int64 `json:"net_cents"`
	EntryCount   int   `json:"entry_count"`
}

// ArticleView is one append-only view event for a help article. Aggregates
// (total views, unique views, read depth) are always recomputed from these
// rows, never stored as mutable counters.
type ArticleView struct {
	ID             int64     `json:"id"`
	TenantID       uuid.UUID `json:"tenant_id"`
	Slug           string    `json:"slug"`
	ViewerID       string    `json:"viewer_id"`
	ReadPercentage float64   `json:"read_percentage"`
	CreatedAt      time.Time `json:"created_at"`
}

// ArticleRating is one append-only rating event, value in 1..5.
type ArticleRating struct {
	ID        int64     `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Slug      string    `json:"slug"`
	RaterID   string    `json:"rater_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleComment is a comment left on a help article.
type ArticleComment struct {
	ID         int64     `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	Slug       string    `json:"slug"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
