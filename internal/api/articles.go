package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/syndesk/syndesk/internal/content"
	"github.com/syndesk/syndesk/internal/middleware"
	"github.com/syndesk/syndesk/internal/ranking"
	"github.com/syndesk/syndesk/internal/repository"
	"github.com/syndesk/syndesk/internal/search"
	"go.uber.org/zap"
)

// ArticleHandler serves the help-article system: static metadata, search,
// popularity rankings, per-article stats and engagement ingest.
type ArticleHandler struct {
	registry *content.Registry
	engine   *ranking.Engine
	searcher *search.Searcher
	comments repository.CommentRepository
	logger   *zap.Logger
}

func NewArticleHandler(
	registry *content.Registry,
	engine *ranking.Engine,
	searcher *search.Searcher,
	comments repository.CommentRepository,
	logger *zap.Logger,
) *ArticleHandler {
	return &ArticleHandler{
		registry: registry,
		engine:   engine,
		searcher: searcher,
		comments: comments,
		logger:   logger,
	}
}

// List handles GET /v1/portal/articles?category=...
func (h *ArticleHandler) List(c *gin.Context) {
	category := c.Query("category")
	if category != "" {
		c.JSON(http.StatusOK, h.registry.ByCategory(category))
		return
	}
	c.JSON(http.StatusOK, h.registry.All())
}

// Categories handles GET /v1/portal/articles/categories
func (h *ArticleHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Categories())
}

// GetBySlug handles GET /v1/portal/articles/:slug
func (h *ArticleHandler) GetBySlug(c *gin.Context) {
	article := h.registry.BySlug(c.Param("slug"))
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}
	c.JSON(http.StatusOK, article)
}

// Popular handles GET /v1/portal/articles/popular?limit=&category=&timeframe=
func (h *ArticleHandler) Popular(c *gin.Context) {
	timeframe, err := ranking.ParseTimeframe(c.Query("timeframe"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	ranked, err := h.engine.Popular(c.Request.Context(), limit, c.Query("category"), timeframe)
	if err != nil {
		h.logger.Error("failed to rank articles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rank articles"})
		return
	}

	c.JSON(http.StatusOK, ranked)
}

// Search handles GET /v1/portal/articles/search?q=&category=&limit=&offset=
func (h *ArticleHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	c.JSON(http.StatusOK, h.searcher.Search(query, c.Query("category"), limit, offset))
}

// Stats handles GET /v1/portal/articles/:slug/stats?timeframe=
func (h *ArticleHandler) Stats(c *gin.Context) {
	timeframe, err := ranking.ParseTimeframe(c.Query("timeframe"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := h.engine.Stats(c.Request.Context(), c.Param("slug"), timeframe)
	if err != nil {
		if errors.Is(err, ranking.ErrUnknownArticle) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		h.logger.Error("failed to compute article stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute article stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

type trackViewRequest struct {
	ReadPercentage float64 `json:"read_percentage"`
}

// TrackView handles POST /v1/portal/articles/:slug/view. One request is one
// append-only event; aggregates are derived at read time.
func (h *ArticleHandler) TrackView(c *gin.Context) {
	var req trackViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// Body is optional; a bare view counts with zero read depth.
		req.ReadPercentage = 0
	}

	tenantID := middleware.GetTenantID(c)
	viewerID := middleware.GetExternalUserID(c)

	err := h.engine.RecordView(c.Request.Context(), tenantID, c.Param("slug"), viewerID, req.ReadPercentage)
	if err != nil {
		if errors.Is(err, ranking.ErrUnknownArticle) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		h.logger.Error("failed to record view", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
		return
	}

	c.Status(http.StatusNoContent)
}

type rateRequest struct {
	Value int `json:"value" binding:"required"`
}

// Rate handles POST /v1/portal/articles/:slug/rating
func (h *ArticleHandler) Rate(c *gin.Context) {
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := middleware.GetTenantID(c)
	raterID := middleware.GetExternalUserID(c)

	err := h.engine.RecordRating(c.Request.Context(), tenantID, c.Param("slug"), raterID, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, ranking.ErrUnknownArticle):
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		case errors.Is(err, ranking.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to record rating", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record rating"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

type commentRequest struct {
	AuthorName string `json:"author_name" binding:"required"`
	Body       string `json:"body" binding:"required"`
}

// CreateComment handles POST /v1/portal/articles/:slug/comments
func (h *ArticleHandler) CreateComment(c *gin.Context) {
	slug := c.Param("slug")
	if h.registry.BySlug(slug) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := middleware.GetTenantID(c)
	authorID := middleware.GetExternalUserID(c)

	comment, err := h.comments.Create(c.Request.Context(), tenantID, slug, authorID, req.AuthorName, req.Body)
	if err != nil {
		h.logger.Error("failed to create comment", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments handles GET /v1/portal/articles/:slug/comments?limit=
func (h *ArticleHandler) ListComments(c *gin.Context) {
	slug := c.Param("slug")
	if h.registry.BySlug(slug) == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	comments, err := h.comments.ListBySlug(c.Request.Context(), slug, limit)
	if err != nil {
		h.logger.Error("failed to list comments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}
