package ranking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syndesk/syndesk/internal/content"
	"github.com/syndesk/syndesk/internal/models"
)

// fakeEngagementStore serves canned rows and records inserts.
type fakeEngagementStore struct {
	views   []models.ArticleView
	ratings []models.ArticleRating

	insertedViews   int
	insertedRatings int
	lastSince       time.Time
}

func (f *fakeEngagementStore) InsertView(_ context.Context, tenantID uuid.UUID, slug, viewerID string, readPercentage float64) (*models.ArticleView, error) {
	f.insertedViews++
	v := models.ArticleView{TenantID: tenantID, Slug: slug, ViewerID: viewerID, ReadPercentage: readPercentage}
	f.views = append(f.views, v)
	return &v, nil
}

func (f *fakeEngagementStore) InsertRating(_ context.Context, tenantID uuid.UUID, slug, raterID string, value int) (*models.ArticleRating, error) {
	f.insertedRatings++
	r := models.ArticleRating{TenantID: tenantID, Slug: slug, RaterID: raterID, Value: value}
	f.ratings = append(f.ratings, r)
	return &r, nil
}

func (f *fakeEngagementStore) ListViews(_ context.Context, since time.Time) ([]models.ArticleView, error) {
	f.lastSince = since
	return filterViews(f.views, since), nil
}

func (f *fakeEngagementStore) ListViewsBySlug(_ context.Context, slug string, since time.Time) ([]models.ArticleView, error) {
	out := make([]models.ArticleView, 0)
	for _, v := range filterViews(f.views, since) {
		if v.Slug == slug {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeEngagementStore) ListRatings(_ context.Context, since time.Time) ([]models.ArticleRating, error) {
	return filterRatings(f.ratings, since), nil
}

func (f *fakeEngagementStore) ListRatingsBySlug(_ context.Context, slug string, since time.Time) ([]models.ArticleRating, error) {
	out := make([]models.ArticleRating, 0)
	for _, r := range filterRatings(f.ratings, since) {
		if r.Slug == slug {
			out = append(out, r)
		}
	}
	return out, nil
}

func filterViews(views []models.ArticleView, since time.Time) []models.ArticleView {
	out := make([]models.ArticleView, 0)
	for _, v := range views {
		if since.IsZero() || !v.CreatedAt.Before(since) {
			out = append(out, v)
		}
	}
	return out
}

func filterRatings(ratings []models.ArticleRating, since time.Time) []models.ArticleRating {
	out := make([]models.ArticleRating, 0)
	for _, r := range ratings {
		if since.IsZero() || !r.CreatedAt.Before(since) {
			out = append(out, r)
		}
	}
	return out
}

func testRegistry() *content.Registry {
	return content.NewRegistry([]content.Article{
		{Slug: "alpha", Title: "Alpha", Category: "account"},
		{Slug: "beta", Title: "Beta", Category: "finance"},
		{Slug: "gamma", Title: "Gamma", Category: "finance"},
	})
}

func view(slug, viewer string, readPct float64, at time.Time) models.ArticleView {
	return models.ArticleView{Slug: slug, ViewerID: viewer, ReadPercentage: readPct, CreatedAt: at}
}

func rating(slug string, value int, at time.Time) models.ArticleRating {
	return models.ArticleRating{Slug: slug, Value: value, CreatedAt: at}
}

func newTestEngine(store *fakeEngagementStore, now time.Time) *Engine {
	e := NewEngine(testRegistry(), store, nil, zap.NewNop())
	e.now = func() time.Time { return now }
	return e
}

func TestPopularOrdersByScore(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := &fakeEngagementStore{
		views: []models.ArticleView{
			view("alpha", "v1", 80, now.Add(-time.Hour)),
			view("alpha", "v2", 60, now.Add(-time.Hour)),
			view("alpha", "v2", 90, now.Add(-time.Hour)),
			view("beta", "v1", 50, now.Add(-time.Hour)),
		},
		ratings: []models.ArticleRating{
			rating("alpha", 5, now.Add(-time.Hour)),
		},
	}
	engine := newTestEngine(store, now)

	ranked, err := engine.Popular(context.Background(), 10, "", TimeframeAll)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "alpha", ranked[0].Slug)
	assert.Equal(t, "beta", ranked[1].Slug)
	assert.Equal(t, 3, ranked[0].Counters.TotalViews)
	assert.Equal(t, 2, ranked[0].Counters.UniqueViews)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, "3", ranked[0].FormattedViews)
}

func TestPopularDropsUnknownSlugs(t *testing.T) {
	now := time.Now()
	store := &fakeEngagementStore{
		views: []models.ArticleView{
			view("alpha", "v1", 10, now),
			view("deleted-article", "v1", 10, now),
		},
	}
	engine := newTestEngine(store, now)

	ranked, err := engine.Popular(context.Background(), 10, "", TimeframeAll)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "alpha", ranked[0].Slug)
}

func TestPopularTieBreaksOnSlug(t *testing.T) {
	now := time.Now()
	// Identical engagement for gamma and beta: same score, slug decides.
	store := &fakeEngagementStore{
		views: []models.ArticleView{
			view("gamma", "v1", 50, now),
			view("beta", "v1", 50, now),
		},
	}
	engine := newTestEngine(store, now)

	ranked, err := engine.Popular(context.Background(), 10, "", TimeframeAll)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "beta", ranked[0].Slug)
	assert.Equal(t, "gamma", ranked[1].Slug)
}

func TestPopularFiltersByCategory(t *testing.T) {
	now := time.Now()
	store := &fakeEngagementStore{
		views: []models.ArticleView{
			view("alpha", "v1", 50, now),
			view("beta", "v1", 50, now),
		},
	}
	engine := newTestEngine(store, now)

	ranked, err := engine.Popular(context.Background(), 10, "finance", TimeframeAll)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "beta", ranked[0].Slug)
}

func TestPopularTimeframeWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := &fakeEngagementStore{
		views: []models.ArticleView{
			view("alpha", "v1", 50, now.Add(-2*time.Hour)),
			view("beta", "v1", 50, now.AddDate(0, 0, -30)),
		},
	}
	engine := newTestEngine(store, now)

	ranked, err := engine.Popular(context.Background(), 10, "", TimeframeWeek)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "alpha", ranked[0].Slug)
	assert.Equal(t, now.AddDate(0, 0, -7), store.lastSince)
}

func TestPopularRespectsLimit(t *testing.T) {
	now := time.Now()
	store := &fakeEngagementStore{
		views: []models.ArticleView{
			view("alpha", "v1", 10, now),
			view("beta", "v1", 10, now),
			view("gamma", "v1", 10, now),
		},
	}
	engine := newTestEngine(store, now)

	ranked, err := engine.Popular(context.Background(), 2, "", TimeframeAll)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
}

func TestStatsIncludesColdArticles(t *testing.T) {
	engine := newTestEngine(&fakeEngagementStore{}, time.Now())

	stats, err := engine.Stats(context.Background(), "alpha", TimeframeAll)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.Score)
	assert.Equal(t, 0, stats.Counters.TotalViews)
	assert.Equal(t, "0", stats.FormattedViews)
}

func TestStatsUnknownSlug(t *testing.T) {
	engine := newTestEngine(&fakeEngagementStore{}, time.Now())

	_, err := engine.Stats(context.Background(), "nope", TimeframeAll)
	assert.ErrorIs(t, err, ErrUnknownArticle)
}

func TestRecordViewRejectsUnknownSlug(t *testing.T) {
	store := &fakeEngagementStore{}
	engine := newTestEngine(store, time.Now())

	err := engine.RecordView(context.Background(), uuid.New(), "nope", "v1", 50)
	assert.ErrorIs(t, err, ErrUnknownArticle)
	assert.Zero(t, store.insertedViews)
}

func TestRecordViewClampsReadPercentage(t *testing.T) {
	store := &fakeEngagementStore{}
	engine := newTestEngine(store, time.Now())

	require.NoError(t, engine.RecordView(context.Background(), uuid.New(), "alpha", "v1", 250))
	require.Len(t, store.views, 1)
	assert.Equal(t, 100.0, store.views[0].ReadPercentage)
}

func TestRecordRatingValidatesValue(t *testing.T) {
	store := &fakeEngagementStore{}
	engine := newTestEngine(store, time.Now())

	assert.ErrorIs(t, engine.RecordRating(context.Background(), uuid.New(), "alpha", "r1", 0), ErrInvalidRating)
	assert.ErrorIs(t, engine.RecordRating(context.Background(), uuid.New(), "alpha", "r1", 6), ErrInvalidRating)
	assert.NoError(t, engine.RecordRating(context.Background(), uuid.New(), "alpha", "r1", 5))
	assert.Equal(t, 1, store.insertedRatings)
}

func TestParseTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("")
	require.NoError(t, err)
	assert.Equal(t, TimeframeAll, tf)

	_, err = ParseTimeframe("fortnight")
	assert.Error(t, err)

	assert.True(t, TimeframeAll.Since(time.Now()).IsZero())
}
