package handler

import (
	"net/http"

	"salesops_backend/internal/clients/domain"
	"salesops_backend/internal/clients/service"
	"salesops_backend/internal/clients/transport"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// Handler handles HTTP requests for clients, BANs, and subscribers.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new clients handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the client routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/expirations", h.ListExpirations)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.GET("/:id/gate", h.EvaluateGate)
	rg.POST("/:id/close-session", h.CloseSession)

	rg.GET("/:id/bans", h.ListBans)
	rg.POST("/:id/bans", h.CreateBan)
	rg.DELETE("/:id/bans/:banId", h.DeleteBan)

	rg.GET("/:id/bans/:banId/subscribers", h.ListSubscribers)
	rg.POST("/:id/bans/:banId/subscribers", h.CreateSubscriber)
	rg.DELETE("/:id/bans/:banId/subscribers/:subscriberId", h.DeleteSubscriber)
}

// List handles GET /api/v1/clients
func (h *Handler) List(c *gin.Context) {
	clients, err := h.svc.ListClients(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, clients)
}

// ListExpirations handles GET /api/v1/clients/expirations
func (h *Handler) ListExpirations(c *gin.Context) {
	status := domain.ContractStatus(c.Query("status"))
	clients, err := h.svc.ListExpirations(c.Request.Context(), status)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, clients)
}

// Create handles POST /api/v1/clients
func (h *Handler) Create(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	client, err := h.svc.CreateClient(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, client)
}

// GetByID handles GET /api/v1/clients/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	client, err := h.svc.GetClient(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, client)
}

// Update handles PUT /api/v1/clients/:id
func (h *Handler) Update(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req transport.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	client, err := h.svc.UpdateClient(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, client)
}

// Delete handles DELETE /api/v1/clients/:id
func (h *Handler) Delete(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteClient(c.Request.Context(), identity.UserID(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// EvaluateGate handles GET /api/v1/clients/:id/gate
func (h *Handler) EvaluateGate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	gate, err := h.svc.EvaluateGate(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.GateResponse{Satisfied: gate.Satisfied})
}

// CloseSession handles POST /api/v1/clients/:id/close-session
func (h *Handler) CloseSession(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.CloseEditSession(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ListBans handles GET /api/v1/clients/:id/bans
func (h *Handler) ListBans(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	bans, err := h.svc.ListBans(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, bans)
}

// CreateBan handles POST /api/v1/clients/:id/bans
func (h *Handler) CreateBan(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req transport.CreateBanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	ban, err := h.svc.CreateBan(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, ban)
}

// DeleteBan handles DELETE /api/v1/clients/:id/bans/:banId
func (h *Handler) DeleteBan(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	banID, ok := parseID(c, "banId")
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteBan(c.Request.Context(), identity.UserID(), banID)) {
		return
	}
	httpkit.NoContent(c)
}

// ListSubscribers handles GET /api/v1/clients/:id/bans/:banId/subscribers
func (h *Handler) ListSubscribers(c *gin.Context) {
	banID, ok := parseID(c, "banId")
	if !ok {
		return
	}

	subscribers, err := h.svc.ListSubscribers(c.Request.Context(), banID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, subscribers)
}

// CreateSubscriber handles POST /api/v1/clients/:id/bans/:banId/subscribers
func (h *Handler) CreateSubscriber(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	banID, ok := parseID(c, "banId")
	if !ok {
		return
	}

	var req transport.CreateSubscriberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	subscriber, err := h.svc.CreateSubscriber(c.Request.Context(), identity.UserID(), banID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, subscriber)
}

// DeleteSubscriber handles DELETE /api/v1/clients/:id/bans/:banId/subscribers/:subscriberId
func (h *Handler) DeleteSubscriber(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	banID, ok := parseID(c, "banId")
	if !ok {
		return
	}
	subscriberID, ok := parseID(c, "subscriberId")
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteSubscriber(c.Request.Context(), identity.UserID(), banID, subscriberID)) {
		return
	}
	httpkit.NoContent(c)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}
