package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/notification/service"
	"salesops_backend/platform/httpkit"
)

const (
	msgInvalidID      = "invalid id"
	msgVendorRequired = "a vendor binding is required"
)

// Handler handles HTTP requests for in-app notifications.
type Handler struct {
	svc *service.Service
}

// New creates a new notification handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the notification routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/unread-count", h.UnreadCount)
	rg.POST("/:id/read", h.MarkRead)
	rg.POST("/read-all", h.MarkAllRead)
}

func vendorOf(c *gin.Context) (uuid.UUID, bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, false
	}
	vendorID := identity.VendorID()
	if vendorID == nil {
		httpkit.Error(c, http.StatusBadRequest, msgVendorRequired, "")
		return uuid.Nil, false
	}
	return *vendorID, true
}

// List handles GET /api/v1/notifications
func (h *Handler) List(c *gin.Context) {
	vendorID, ok := vendorOf(c)
	if !ok {
		return
	}

	notifications, err := h.svc.ListForVendor(c.Request.Context(), vendorID, c.Query("unread") == "true")
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, notifications)
}

// UnreadCount handles GET /api/v1/notifications/unread-count
func (h *Handler) UnreadCount(c *gin.Context) {
	vendorID, ok := vendorOf(c)
	if !ok {
		return
	}

	count, err := h.svc.UnreadCount(c.Request.Context(), vendorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"count": count})
}

// MarkRead handles POST /api/v1/notifications/:id/read
func (h *Handler) MarkRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, "id must be a UUID")
		return
	}

	if httpkit.HandleError(c, h.svc.MarkRead(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// MarkAllRead handles POST /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(c *gin.Context) {
	vendorID, ok := vendorOf(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.MarkAllRead(c.Request.Context(), vendorID)) {
		return
	}
	httpkit.NoContent(c)
}
