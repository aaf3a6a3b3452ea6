package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/syndesk/syndesk/internal/models"
)

// EngagementStore persists the append-only article view and rating logs.
// Rows are only ever inserted; every aggregate is recomputed from a
// time-windowed scan, so there is no mutable counter to go stale.
type EngagementStore struct {
	pool *pgxpool.Pool
}

func NewEngagementStore(pool *pgxpool.Pool) *EngagementStore {
	return &EngagementStore{pool: pool}
}

func (s *EngagementStore) InsertView(ctx context.Context, tenantID uuid.UUID, slug, viewerID string, readPercentage float64) (*models.ArticleView, error) {
	query := `
		INSERT INTO article_views (tenant_id, slug, viewer_id, read_percentage, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, tenant_id, slug, viewer_id, read_percentage, created_at`

	var v models.ArticleView
	err := s.pool.QueryRow(ctx, query, tenantID, slug, viewerID, readPercentage).Scan(
		&v.ID,
		&v.TenantID,
		&v.Slug,
		&v.ViewerID,
		&v.ReadPercentage,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert article view: %w", err)
	}
	return &v, nil
}

func (s *EngagementStore) InsertRating(ctx context.Context, tenantID uuid.UUID, slug, raterID string, value int) (*models.ArticleRating, error) {
	query := `
		INSERT INTO article_ratings (tenant_id, slug, rater_id, value, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, tenant_id, slug, rater_id, value, created_at`

	var r models.ArticleRating
	err := s.pool.QueryRow(ctx, query, tenantID, slug, raterID, value).Scan(
		&r.ID,
		&r.TenantID,
		&r.Slug,
		&r.RaterID,
		&r.Value,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert article rating: %w", err)
	}
	return &r, nil
}

// ListViews returns view rows newer than since, oldest first. A zero since
// means no lower bound. The window filter is built conditionally the same
// way for all four listings.
func (s *EngagementStore) ListViews(ctx context.Context, since time.Time) ([]models.ArticleView, error) {
	return s.listViews(ctx, "", since)
}

func (s *EngagementStore) ListViewsBySlug(ctx context.Context, slug string, since time.Time) ([]models.ArticleView, error) {
	return s.listViews(ctx, slug, since)
}

func (s *EngagementStore) ListRatings(ctx context.Context, since time.Time) ([]models.ArticleRating, error) {
	return s.listRatings(ctx, "", since)
}

func (s *EngagementStore) ListRatingsBySlug(ctx context.Context, slug string, since time.Time) ([]models.ArticleRating, error) {
	return s.listRatings(ctx, slug, since)
}

func (s *EngagementStore) listViews(ctx context.Context, slug string, since time.Time) ([]models.ArticleView, error) {
	query := `
		SELECT id, tenant_id, slug, viewer_id, read_percentage, created_at
		FROM article_views`
	query, args := engagementFilter(query, slug, since)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list article views: %w", err)
	}
	defer rows.Close()

	views := make([]models.ArticleView, 0)
	for rows.Next() {
		var v models.ArticleView
		if err := rows.Scan(
			&v.ID,
			&v.TenantID,
			&v.Slug,
			&v.ViewerID,
			&v.ReadPercentage,
			&v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article view: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate article views: %w", err)
	}
	return views, nil
}

func (s *EngagementStore) listRatings(ctx context.Context, slug string, since time.Time) ([]models.ArticleRating, error) {
	query := `
		SELECT id, tenant_id, slug, rater_id, value, created_at
		FROM article_ratings`
	query, args := engagementFilter(query, slug, since)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list article ratings: %w", err)
	}
	defer rows.Close()

	ratings := make([]models.ArticleRating, 0)
	for rows.Next() {
		var r models.ArticleRating
		if err := rows.Scan(
			&r.ID,
			&r.TenantID,
			&r.Slug,
			&r.RaterID,
			&r.Value,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate article ratings: %w", err)
	}
	return ratings, nil
}

// engagementFilter appends optional slug and window predicates plus a
// deterministic ordering to a base SELECT.
func engagementFilter(query, slug string, since time.Time) (string, []any) {
	args := make([]any, 0, 2)
	clause := ""
	next := func() string {
		return fmt.Sprintf("$%d", len(args))
	}

	if slug != "" {
		args = append(args, slug)
		clause = "\n\t\tWHERE slug = " + next()
	}
	if !since.IsZero() {
		args = append(args, since)
		if clause == "" {
			clause = "\n\t\tWHERE created_at >= " + next()
		} else {
			clause += " AND created_at >= " + next()
		}
	}
	return query + clause + "\n\t\tORDER BY id", args
}
