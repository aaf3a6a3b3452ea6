package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/syndesk/syndesk/internal/middleware"
	"github.com/syndesk/syndesk/internal/repository"
	"go.uber.org/zap"
)

type ResidentHandler struct {
	repo   repository.ResidentRepository
	logger *zap.Logger
}

func NewResidentHandler(repo repository.ResidentRepository, logger *zap.Logger) *ResidentHandler {
	return &ResidentHandler{repo: repo, logger: logger}
}

type createResidentRequest struct {
	UnitID string `json:"unit_id"`
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Phone  string `json:"phone"`
}

type updateResidentRequest struct {
	UnitID   string `json:"unit_id"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

func parseOptionalUnitID(raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// Create handles POST /v1/residents
func (h *ResidentHandler) Create(c *gin.Context) {
	var req createResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unitID, ok := parseOptionalUnitID(req.UnitID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	tenantID := middleware.GetTenantID(c)
	r, err := h.repo.Create(c.Request.Context(), tenantID, unitID, req.Name, req.Email, req.Phone)
	if err != nil {
		h.logger.Error("failed to create resident", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create resident"})
		return
	}

	c.JSON(http.StatusCreated, r)
}

// List handles GET /v1/residents
func (h *ResidentHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	residents, err := h.repo.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.Error("failed to list residents", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list residents"})
		return
	}

	c.JSON(http.StatusOK, residents)
}

// GetByID handles GET /v1/residents/:id
func (h *ResidentHandler) GetByID(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resident id"})
		return
	}

	r, err := h.repo.GetByID(c.Request.Context(), tenantID, residentID)
	if err != nil {
		h.logger.Error("failed to get resident", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get resident"})
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resident not found"})
		return
	}

	c.JSON(http.StatusOK, r)
}

// Update handles PUT /v1/residents/:id. Deactivation (is_active=false)
// goes through here too; deactivated residents stop matching in portal
// auto-linking but existing links are left alone.
func (h *ResidentHandler) Update(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	residentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid resident id"})
		return
	}

	var req updateResidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	unitID, ok := parseOptionalUnitID(req.UnitID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	r, err := h.repo.Update(c.Request.Context(), tenantID, residentID, unitID, req.Name, req.Email, req.Phone, *req.IsActive)
	if err != nil {
		h.logger.Error("failed to update resident", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update resident"})
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resident not found"})
		return
	}

	c.JSON(http.StatusOK, r)
}
