package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/syndesk/syndesk/internal/middleware"
	"github.com/syndesk/syndesk/internal/portal"
	"go.uber.org/zap"
)

// PortalHandler exposes the resident portal's access check.
type PortalHandler struct {
	resolver *portal.Resolver
	logger   *zap.Logger
}

func NewPortalHandler(resolver *portal.Resolver, logger *zap.Logger) *PortalHandler {
	return &PortalHandler{resolver: resolver, logger: logger}
}

// Access handles GET /v1/portal/access. It answers "does this identity map
// to a resident here?", auto-linking by verified email on first contact.
// Denials come back as 200 with a structured body; the portal UI turns
// them into guidance, they are not transport errors.
func (h *PortalHandler) Access(c *gin.Context) {
	externalUserID := middleware.GetExternalUserID(c)
	tenantID := middleware.GetTenantID(c)

	result, err := h.resolver.CheckAndResolveAccess(c.Request.Context(), externalUserID, tenantID)
	if err != nil {
		h.logger.Error("access resolution failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "access check failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}
