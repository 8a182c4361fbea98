package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/audit/repository"
	"salesops_backend/internal/audit/service"
	"salesops_backend/platform/httpkit"
)

const msgInvalidFilter = "invalid filter"

// Handler handles HTTP requests for the audit trail.
type Handler struct {
	svc *service.Service
}

// New creates a new audit handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

// List handles GET /api/v1/admin/audit
func (h *Handler) List(c *gin.Context) {
	filter := repository.ListFilter{
		EntityType: c.Query("entityType"),
		Action:     c.Query("action"),
	}
	if raw := c.Query("entityId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, "entityId must be a UUID")
			return
		}
		filter.EntityID = &id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	entries, err := h.svc.List(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, entries)
}
