package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/syndesk/syndesk/internal/models"
)

type CommentStore struct {
	pool *pgxpool.Pool
}

func NewCommentStore(pool *pgxpool.Pool) *CommentStore {
	return &CommentStore{pool: pool}
}

func (s *CommentStore) Create(ctx context.Context, tenantID uuid.UUID, slug, authorID, authorName, body string) (*models.ArticleComment, error) {
	query := `
		INSERT INTO article_comments (tenant_id, slug, author_id, author_name, body, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, tenant_id, slug, author_id, author_name, body, created_at`

	var c models.ArticleComment
	err := s.pool.QueryRow(ctx, query, tenantID, slug, authorID, authorName, body).Scan(
		&c.ID,
		&c.TenantID,
		&c.Slug,
		&c.AuthorID,
		&c.AuthorName,
		&c.Body,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &c, nil
}

func (s *CommentStore) ListBySlug(ctx context.Context, slug string, limit int) ([]models.ArticleComment, error) {
	query := `
		SELECT id, tenant_id, slug, author_id, author_name, body, created_at
		FROM article_comments
		WHERE slug = $1
		ORDER BY id DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, query, slug, limit)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.ArticleComment, 0)
	for rows.Next() {
		var c models.ArticleComment
		if err := rows.Scan(
			&c.ID,
			&c.TenantID,
			&c.Slug,
			&c.AuthorID,
			&c.AuthorName,
			&c.Body,
			&c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}
