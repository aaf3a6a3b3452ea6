package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/syndesk/syndesk/internal/middleware"
	"github.com/syndesk/syndesk/internal/repository"
	"go.uber.org/zap"
)

// BuildingHandler holds the dependencies for building CRUD. Handlers take
// the repository interface, not the postgres type, so tests can substitute
// a fake.
type BuildingHandler struct {
	repo   repository.BuildingRepository
	logger *zap.Logger
}

func NewBuildingHandler(repo repository.BuildingRepository, logger *zap.Logger) *BuildingHandler {
	return &BuildingHandler{repo: repo, logger: logger}
}

type buildingRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// Create handles POST /v1/buildings
func (h *BuildingHandler) Create(c *gin.Context) {
	var req buildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tenantID := middleware.GetTenantID(c)
	b, err := h.repo.Create(c.Request.Context(), tenantID, req.Name, req.Address)
	if err != nil {
		h.logger.Error("failed to create building", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create building"})
		return
	}

	c.JSON(http.StatusCreated, b)
}

// List handles GET /v1/buildings
func (h *BuildingHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	buildings, err := h.repo.ListByTenant(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.Error("failed to list buildings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list buildings"})
		return
	}

	c.JSON(http.StatusOK, buildings)
}

// GetByID handles GET /v1/buildings/:id
func (h *BuildingHandler) GetByID(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	buildingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), tenantID, buildingID)
	if err != nil {
		h.logger.Error("failed to get building", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get building"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "building not found"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// Update handles PUT /v1/buildings/:id
func (h *BuildingHandler) Update(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	buildingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	var req buildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.repo.Update(c.Request.Context(), tenantID, buildingID, req.Name, req.Address)
	if err != nil {
		h.logger.Error("failed to update building", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update building"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "building not found"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// Delete handles DELETE /v1/buildings/:id
func (h *BuildingHandler) Delete(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	buildingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), tenantID, buildingID); err != nil {
		h.logger.Error("failed to delete building", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete building"})
		return
	}

	c.Status(http.StatusNoContent)
}
