package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/syndesk/syndesk/internal/content"
	"github.com/syndesk/syndesk/internal/middleware"
	"github.com/syndesk/syndesk/internal/models"
	"github.com/syndesk/syndesk/internal/ranking"
	"github.com/syndesk/syndesk/internal/search"
)

type stubEngagementStore struct {
	views   []models.ArticleView
	ratings []models.ArticleRating
}

func (s *stubEngagementStore) InsertView(_ context.Context, tenantID uuid.UUID, slug, viewerID string, readPercentage float64) (*models.ArticleView, error) {
	v := models.ArticleView{TenantID: tenantID, Slug: slug, ViewerID: viewerID, ReadPercentage: readPercentage}
	s.views = append(s.views, v)
	return &v, nil
}

func (s *stubEngagementStore) InsertRating(_ context.Context, tenantID uuid.UUID, slug, raterID string, value int) (*models.ArticleRating, error) {
	r := models.ArticleRating{TenantID: tenantID, Slug: slug, RaterID: raterID, Value: value}
	s.ratings = append(s.ratings, r)
	return &r, nil
}

func (s *stubEngagementStore) ListViews(context.Context, time.Time) ([]models.ArticleView, error) {
	return s.views, nil
}

func (s *stubEngagementStore) ListViewsBySlug(_ context.Context, slug string, _ time.Time) ([]models.ArticleView, error) {
	out := make([]models.ArticleView, 0)
	for _, v := range s.views {
		if v.Slug == slug {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *stubEngagementStore) ListRatings(context.Context, time.Time) ([]models.ArticleRating, error) {
	return s.ratings, nil
}

func (s *stubEngagementStore) ListRatingsBySlug(_ context.Context, slug string, _ time.Time) ([]models.ArticleRating, error) {
	out := make([]models.ArticleRating, 0)
	for _, r := range s.ratings {
		if r.Slug == slug {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubCommentStore struct {
	comments []models.ArticleComment
}

func (s *stubCommentStore) Create(_ context.Context, tenantID uuid.UUID, slug, authorID, authorName, body string) (*models.ArticleComment, error) {
	c := models.ArticleComment{ID: int64(len(s.comments) + 1), TenantID: tenantID, Slug: slug, AuthorID: authorID, AuthorName: authorName, Body: body}
	s.comments = append(s.comments, c)
	return &c, nil
}

func (s *stubCommentStore) ListBySlug(_ context.Context, slug string, limit int) ([]models.ArticleComment, error) {
	out := make([]models.ArticleComment, 0)
	for _, c := range s.comments {
		if c.Slug == slug && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func newArticleRouter(store *stubEngagementStore, comments *stubCommentStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	registry := content.NewRegistry([]content.Article{
		{Slug: "alpha", Title: "Alpha Guide", Description: "about alpha", Category: "account", Tags: []string{"alpha"}},
		{Slug: "beta", Title: "Beta Guide", Description: "about beta", Category: "finance"},
	})
	engine := ranking.NewEngine(registry, store, nil, zap.NewNop())
	handler := NewArticleHandler(registry, engine, search.NewSearcher(registry), comments, zap.NewNop())

	router := gin.New()
	// Stand-in for PortalAuth: inject the identity the middleware would set.
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyTenantID, uuid.New())
		c.Set(middleware.ContextKeyExternalUserID, "auth0|tester")
	})
	router.GET("/articles", handler.List)
	router.GET("/articles/popular", handler.Popular)
	router.GET("/articles/search", handler.Search)
	router.GET("/articles/:slug", handler.GetBySlug)
	router.GET("/articles/:slug/stats", handler.Stats)
	router.POST("/articles/:slug/view", handler.TrackView)
	router.POST("/articles/:slug/rating", handler.Rate)
	router.GET("/articles/:slug/comments", handler.ListComments)
	router.POST("/articles/:slug/comments", handler.CreateComment)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetArticle(t *testing.T) {
	router := newArticleRouter(&stubEngagementStore{}, &stubCommentStore{})

	rec := doRequest(router, http.MethodGet, "/articles/alpha", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/articles/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrackViewThenPopular(t *testing.T) {
	store := &stubEngagementStore{}
	router := newArticleRouter(store, &stubCommentStore{})

	rec := doRequest(router, http.MethodPost, "/articles/alpha/view", `{"read_percentage":75}`)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, store.views, 1)
	assert.Equal(t, "auth0|tester", store.views[0].ViewerID)

	rec = doRequest(router, http.MethodGet, "/articles/popular?timeframe=all", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var ranked []ranking.RankedArticle
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ranked))
	require.Len(t, ranked, 1)
	assert.Equal(t, "alpha", ranked[0].Slug)
}

func TestTrackViewUnknownSlug(t *testing.T) {
	store := &stubEngagementStore{}
	router := newArticleRouter(store, &stubCommentStore{})

	rec := doRequest(router, http.MethodPost, "/articles/missing/view", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, store.views)
}

func TestRateValidation(t *testing.T) {
	store := &stubEngagementStore{}
	router := newArticleRouter(store, &stubCommentStore{})

	rec := doRequest(router, http.MethodPost, "/articles/alpha/rating", `{"value":9}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(router, http.MethodPost, "/articles/alpha/rating", `{"value":4}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.Len(t, store.ratings, 1)
}

func TestSearchEndpoint(t *testing.T) {
	router := newArticleRouter(&stubEngagementStore{}, &stubCommentStore{})

	rec := doRequest(router, http.MethodGet, "/articles/search?q=alpha", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []search.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "alpha", results[0].Article.Slug)

	rec = doRequest(router, http.MethodGet, "/articles/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidTimeframe(t *testing.T) {
	router := newArticleRouter(&stubEngagementStore{}, &stubCommentStore{})

	rec := doRequest(router, http.MethodGet, "/articles/popular?timeframe=century", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComments(t *testing.T) {
	comments := &stubCommentStore{}
	router := newArticleRouter(&stubEngagementStore{}, comments)

	rec := doRequest(router, http.MethodPost, "/articles/alpha/comments", `{"author_name":"Ada","body":"Very helpful."}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(router, http.MethodGet, "/articles/alpha/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []models.ArticleComment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "auth0|tester", listed[0].AuthorID)
}
