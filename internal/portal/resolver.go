package portal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/syndesk/syndesk/internal/identity"
	"github.com/syndesk/syndesk/internal/repository"
)

// Denial is the structured reason an identity was not granted access.
// Denials are ordinary results, not errors: the portal UI renders guidance
// from them. Errors are reserved for collaborator failures.
type Denial string

const (
	// DenialNone: access granted.
	DenialNone Denial = ""

	// DenialNoEmail: the identity provider has no verified email for the
	// caller, so there is nothing to match on.
	DenialNoEmail Denial = "no_email"

	// DenialNoResidentMatch: no active resident in the tenant carries the
	// caller's email.
	DenialNoResidentMatch Denial = "no_resident_match"
)

// AccessResult is the outcome of one access check.
type AccessResult struct {
	HasAccess    bool      `json:"has_access"`
	AutoLinked   bool      `json:"auto_linked"`
	Denial       Denial    `json:"denial,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	ResidentID   uuid.UUID `json:"resident_id,omitempty"`
	ResidentName string    `json:"resident_name,omitempty"`
}

// Resolver decides whether an external identity maps to a resident, and
// establishes the mapping lazily by email match when it does not yet exist.
type Resolver struct {
	portalUsers repository.PortalUserRepository
	residents   repository.ResidentRepository
	provider    identity.Provider
	logger      *zap.Logger
}

func NewResolver(
	portalUsers repository.PortalUserRepository,
	residents repository.ResidentRepository,
	provider identity.Provider,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		portalUsers: portalUsers,
		residents:   residents,
		provider:    provider,
		logger:      logger,
	}
}

// CheckAndResolveAccess runs the access state machine for one
// (externalUserID, tenantID) pair.
//
// Already linked → immediate grant, no writes. Otherwise the resolver
// fetches the caller's verified email, matches it against active residents
// within the tenant only, and on a match upserts the portal-user row in a
// single atomic write, snapshotting the resident's contact fields.
//
// Every failure before the upsert leaves state untouched, so retrying is
// always safe. Two concurrent calls may race past the linked check and both
// upsert; they resolve the same resident from the same email, so the
// duplicate write is a no-op. No lock is taken; do not add one.
func (r *Resolver) CheckAndResolveAccess(ctx context.Context, externalUserID string, tenantID uuid.UUID) (AccessResult, error) {
	user, err := r.portalUsers.GetByExternalID(ctx, externalUserID, tenantID)
	if err != nil {
		return AccessResult{}, fmt.Errorf("load portal user: %w", err)
	}
	if user != nil && user.ResidentID != nil {
		return AccessResult{
			HasAccess:    true,
			AutoLinked:   false,
			ResidentID:   *user.ResidentID,
			ResidentName: user.Name,
		}, nil
	}

	email, err := r.provider.VerifiedEmail(ctx, externalUserID)
	if err != nil {
		return AccessResult{}, fmt.Errorf("fetch verified email: %w", err)
	}
	if email == "" {
		return AccessResult{HasAccess: false, Denial: DenialNoEmail}, nil
	}

	// Tenant scope is mandatory here: the repository method carries the
	// tenant filter, so a matching resident in another tenant can never
	// be returned.
	residents, err := r.residents.ListActiveByEmail(ctx, tenantID, email)
	if err != nil {
		return AccessResult{}, fmt.Errorf("match residents by email: %w", err)
	}
	if len(residents) == 0 {
		return AccessResult{
			HasAccess: false,
			Denial:    DenialNoResidentMatch,
			UserEmail: email,
		}, nil
	}

	// The repository orders deterministically; take the first. Multiple
	// active residents sharing an email is a data-quality condition the
	// resolver does not disambiguate.
	resident := residents[0]
	if len(residents) > 1 {
		r.logger.Warn("multiple active residents share an email",
			zap.String("tenant_id", tenantID.String()),
			zap.Int("count", len(residents)),
		)
	}

	linked, err := r.portalUsers.Upsert(ctx, externalUserID, tenantID, repository.PortalUserFields{
		ResidentID: resident.ID,
		Name:       resident.Name,
		Email:      resident.Email,
		Phone:      resident.Phone,
	})
	if err != nil {
		return AccessResult{}, fmt.Errorf("link portal user: %w", err)
	}

	r.logger.Info("auto-linked portal user to resident",
		zap.String("tenant_id", tenantID.String()),
		zap.String("resident_id", resident.ID.String()),
	)
	return AccessResult{
		HasAccess:    true,
		AutoLinked:   true,
		ResidentID:   resident.ID,
		ResidentName: linked.Name,
	}, nil
}
