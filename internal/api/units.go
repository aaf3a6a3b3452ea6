package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/syndesk/syndesk/internal/middleware"
	"github.com/syndesk/syndesk/internal/repository"
	"go.uber.org/zap"
)

type UnitHandler struct {
	units     repository.UnitRepository
	buildings repository.BuildingRepository
	logger    *zap.Logger
}

func NewUnitHandler(units repository.UnitRepository, buildings repository.BuildingRepository, logger *zap.Logger) *UnitHandler {
	return &UnitHandler{units: units, buildings: buildings, logger: logger}
}

type createUnitRequest struct {
	BuildingID string `json:"building_id" binding:"required"`
	Label      string `json:"label" binding:"required"`
	Floor      int    `json:"floor"`
}

type updateUnitRequest struct {
	Label string `json:"label" binding:"required"`
	Floor int    `json:"floor"`
}

// Create handles POST /v1/units
func (h *UnitHandler) Create(c *gin.Context) {
	var req createUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	buildingID, err := uuid.Parse(req.BuildingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
		return
	}

	tenantID := middleware.GetTenantID(c)

	// The building must exist in the caller's tenant; this also blocks
	// attaching units to another tenant's building.
	b, err := h.buildings.GetByID(c.Request.Context(), tenantID, buildingID)
	if err != nil {
		h.logger.Error("failed to check building", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create unit"})
		return
	}
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "building not found"})
		return
	}

	u, err := h.units.Create(c.Request.Context(), tenantID, buildingID, req.Label, req.Floor)
	if err != nil {
		h.logger.Error("failed to create unit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create unit"})
		return
	}

	c.JSON(http.StatusCreated, u)
}

// List handles GET /v1/units?building_id=...
func (h *UnitHandler) List(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	buildingID := uuid.Nil
	if raw := c.Query("building_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid building id"})
			return
		}
		buildingID = parsed
	}

	units, err := h.units.ListByBuilding(c.Request.Context(), tenantID, buildingID)
	if err != nil {
		h.logger.Error("failed to list units", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list units"})
		return
	}

	c.JSON(http.StatusOK, units)
}

// GetByID handles GET /v1/units/:id
func (h *UnitHandler) GetByID(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	u, err := h.units.GetByID(c.Request.Context(), tenantID, unitID)
	if err != nil {
		h.logger.Error("failed to get unit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get unit"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// Update handles PUT /v1/units/:id
func (h *UnitHandler) Update(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	var req updateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.units.Update(c.Request.Context(), tenantID, unitID, req.Label, req.Floor)
	if err != nil {
		h.logger.Error("failed to update unit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update unit"})
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unit not found"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /v1/units/:id
func (h *UnitHandler) Delete(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)

	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid unit id"})
		return
	}

	if err := h.units.Delete(c.Request.Context(), tenantID, unitID); err != nil {
		h.logger.Error("failed to delete unit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete unit"})
		return
	}

	c.Status(http.StatusNoContent)
}
