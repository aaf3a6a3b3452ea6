package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/syndesk/syndesk/internal/middleware"
	"github.com/syndesk/syndesk/internal/repository"
	"go.uber.org/zap"
)

type FinanceHandler struct {
	repo   repository.FinanceRepository
	logger *zap.Logger
}

func NewFinanceHandler(repo repository.FinanceRepository, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{repo: repo, logger: logger}
}

type createFinanceEntryRequest struct {
	BuildingID  string `json:"building_id"`
	Kind        string `json:"kind" binding:"required,oneof=income expense"`
	Category    string `json:"category" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
	Note        string `json:"note"`
	OccurredOn  string `json:"occurred_on" binding:"required"`
}

// Create handles POST /v1/finance/entries
func (h *FinanceHandler) Create(c *gin.Context) {
	var req createFinanceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	occurredOn, err := time.Parse("2006-01-02", req.OccurredOn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "occurred_on must be YYYY-MM-DD"})
		return
	}

	var buildingID *uuid.UUID
	if req.BuildingID != "" {
		parsed, err := uuid.Parse(req.BuildingID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
			return
		}
		buildingID = &parsed
	}

	tenantID := middleware.GetTenantID(c)
	entry, err := h.repo.Create(c.Request.Context(), tenantID, buildingID, req.Kind, req.Category, req.AmountCents, req.Note, occurredOn)
	if err != nil {
		h.logger.Error("failed to create finance entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create finance entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List handles GET /v1/finance/entries?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *FinanceHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	entries, err := h.repo.ListByTenant(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.logger.Error("failed to list finance entries", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list finance entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// Delete handles DELETE /v1/finance/entries/:id
func (h *FinanceHandler) Delete(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), tenantID, entryID); err != nil {
		h.logger.Error("failed to delete finance entry", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete finance entry"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Summary handles GET /v1/finance/summary?from=...&to=...
// Income, expense and net over the window, for the dashboard widget.
func (h *FinanceHandler) Summary(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	from, to, ok := parseWindow(c)
	if !ok {
		return
	}

	summary, err := h.repo.Summarize(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.logger.Error("failed to summarize finances", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to summarize finances"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// parseWindow reads optional from/to date query params. On a bad value it
// writes the 400 itself and reports false.
func parseWindow(c *gin.Context) (from, to time.Time, ok bool) {
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	return from, to, true
}
