package ranking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/syndesk/syndesk/internal/cache"
	"github.com/syndesk/syndesk/internal/content"
	"github.com/syndesk/syndesk/internal/models"
	"github.com/syndesk/syndesk/internal/repository"
)

// ErrUnknownArticle is returned when a slug does not exist in the static
// article registry. The registry is the source of truth: engagement events
// for unknown slugs are rejected at ingest and dropped from rankings.
var ErrUnknownArticle = errors.New("unknown article slug")

// ErrInvalidRating is returned for rating values outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const (
	defaultLimit = 10
	maxLimit     = 50
)

// RankedArticle is one popularity result: static metadata joined with the
// counters and score computed for the requested window.
type RankedArticle struct {
	content.Article
	Counters       Counters `json:"counters"`
	Score          float64  `json:"score"`
	FormattedViews string   `json:"formatted_views"`
}

// ArticleStats is the per-article analytics view.
type ArticleStats struct {
	Article        content.Article `json:"article"`
	Timeframe      Timeframe       `json:"timeframe"`
	Counters       Counters        `json:"counters"`
	Score          float64         `json:"score"`
	FormattedViews string          `json:"formatted_views"`
}

// Engine computes popularity rankings and per-article stats. Aggregates are
// always derived from the raw event rows for the requested window; the only
// stored state is the append-only logs. Rankings may be served from a short-
// TTL redis cache since they tolerate slight staleness.
type Engine struct {
	registry   *content.Registry
	engagement repository.EngagementRepository
	cache      *cache.Cache
	logger     *zap.Logger
	now        func() time.Time
}

func NewEngine(registry *content.Registry, engagement repository.EngagementRepository, c *cache.Cache, logger *zap.Logger) *Engine {
	return &Engine{
		registry:   registry,
		engagement: engagement,
		cache:      c,
		logger:     logger,
		now:        time.Now,
	}
}

// RecordView appends one view event. Unknown slugs are rejected; the read
// percentage is clamped to [0,100].
func (e *Engine) RecordView(ctx context.Context, tenantID uuid.UUID, slug, viewerID string, readPercentage float64) error {
	if e.registry.BySlug(slug) == nil {
		return fmt.Errorf("record view for %q: %w", slug, ErrUnknownArticle)
	}
	if readPercentage < 0 {
		readPercentage = 0
	}
	if readPercentage > 100 {
		readPercentage = 100
	}
	if _, err := e.engagement.InsertView(ctx, tenantID, slug, viewerID, readPercentage); err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// RecordRating appends one rating event, value in 1..5.
func (e *Engine) RecordRating(ctx context.Context, tenantID uuid.UUID, slug, raterID string, value int) error {
	if e.registry.BySlug(slug) == nil {
		return fmt.Errorf("record rating for %q: %w", slug, ErrUnknownArticle)
	}
	if value < 1 || value > 5 {
		return ErrInvalidRating
	}
	if _, err := e.engagement.InsertRating(ctx, tenantID, slug, raterID, value); err != nil {
		return fmt.Errorf("record rating: %w", err)
	}
	return nil
}

// Popular returns the top articles by score for the window, optionally
// filtered by category. Articles with no engagement rows in the window are
// excluded. Ties break on slug ascending so the order is deterministic.
func (e *Engine) Popular(ctx context.Context, limit int, category string, timeframe Timeframe) ([]RankedArticle, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	cacheKey := fmt.Sprintf("popular:%s:%s:%d", timeframe, category, limit)
	var cached []RankedArticle
	if hit, err := e.cache.GetJSON(ctx, cacheKey, &cached); err != nil {
		e.logger.Warn("popularity cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	since := timeframe.Since(e.now())
	views, err := e.engagement.ListViews(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	ratings, err := e.engagement.ListRatings(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	ranked := make([]RankedArticle, 0)
	for slug, c := range aggregate(views, ratings) {
		article := e.registry.BySlug(slug)
		if article == nil {
			// Broken reference: the event log mentions a slug the registry
			// no longer carries. Dropped, not an error.
			e.logger.Debug("dropping engagement rows for unknown slug", zap.String("slug", slug))
			continue
		}
		if category != "" && article.Category != category {
			continue
		}
		ranked = append(ranked, RankedArticle{
			Article:        *article,
			Counters:       c,
			Score:          Score(c),
			FormattedViews: FormatViews(c.TotalViews),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Slug < ranked[j].Slug
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	if err := e.cache.SetJSON(ctx, cacheKey, ranked); err != nil {
		e.logger.Warn("popularity cache write failed", zap.Error(err))
	}
	return ranked, nil
}

// Stats returns counters and score for a single article. Unlike Popular, an
// article with no engagement rows is included here with zero counters.
func (e *Engine) Stats(ctx context.Context, slug string, timeframe Timeframe) (*ArticleStats, error) {
	article := e.registry.BySlug(slug)
	if article == nil {
		return nil, fmt.Errorf("stats for %q: %w", slug, ErrUnknownArticle)
	}

	since := timeframe.Since(e.now())
	views, err := e.engagement.ListViewsBySlug(ctx, slug, since)
	if err != nil {
		return nil, fmt.Errorf("list views: %w", err)
	}
	ratings, err := e.engagement.ListRatingsBySlug(ctx, slug, since)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	c := aggregate(views, ratings)[slug]
	c.Slug = slug
	return &ArticleStats{
		Article:        *article,
		Timeframe:      timeframe,
		Counters:       c,
		Score:          Score(c),
		FormattedViews: FormatViews(c.TotalViews),
	}, nil
}

// aggregate groups raw event rows by slug and computes counters. Unique
// views count distinct viewer ids within the window.
func aggregate(views []models.ArticleView, ratings []models.ArticleRating) map[string]Counters {
	counters := make(map[string]Counters)
	viewers := make(map[string]map[string]struct{})
	readSums := make(map[string]float64)
	ratingSums := make(map[string]int)

	for _, v := range views {
		c := counters[v.Slug]
		c.Slug = v.Slug
		c.TotalViews++
		counters[v.Slug] = c

		if viewers[v.Slug] == nil {
			viewers[v.Slug] = make(map[string]struct{})
		}
		viewers[v.Slug][v.ViewerID] = struct{}{}
		readSums[v.Slug] += v.ReadPercentage
	}
	for _, r := range ratings {
		c := counters[r.Slug]
		c.Slug = r.Slug
		c.RatingCount++
		counters[r.Slug] = c
		ratingSums[r.Slug] += r.Value
	}

	for slug, c := range counters {
		c.UniqueViews = len(viewers[slug])
		if c.TotalViews > 0 {
			c.AverageReadPercentage = readSums[slug] / float64(c.TotalViews)
		}
		if c.RatingCount > 0 {
			c.AverageRating = float64(ratingSums[slug]) / float64(c.RatingCount)
		}
		counters[slug] = c
	}
	return counters
}
