package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/pipeline/service"
	"salesops_backend/internal/pipeline/transport"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// Handler handles HTTP requests for the follow-up pipeline.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new pipeline handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the prospect, task, and catalog routes.
func (h *Handler) RegisterRoutes(rg, admin *gin.RouterGroup) {
	rg.GET("/prospects", h.ListProspects)
	rg.POST("/prospects", h.SendToFollowUp)
	rg.GET("/prospects/:id", h.GetProspect)
	rg.POST("/prospects/:id/complete", h.CompleteSale)
	rg.POST("/prospects/:id/return", h.ReturnToPool)
	rg.GET("/prospects/:id/calls", h.ListCallLogs)
	rg.POST("/prospects/:id/calls", h.LogCall)
	rg.GET("/prospects/:id/progress", h.StepProgress)
	rg.GET("/tasks", h.Tasks)

	rg.GET("/steps", h.ListSteps)
	rg.GET("/priorities", h.ListPriorities)

	admin.POST("/steps", h.CreateStep)
	admin.DELETE("/steps/:id", h.DeleteStep)
	admin.POST("/priorities", h.CreatePriority)
	admin.DELETE("/priorities/:id", h.DeletePriority)
}

// vendorScope resolves the vendor filter for list endpoints. Vendor users
// are pinned to their own vendor; admins may filter via query parameter.
func (h *Handler) vendorScope(c *gin.Context, identity httpkit.Identity) (*uuid.UUID, bool) {
	if !identity.HasRole("admin") {
		return identity.VendorID(), true
	}
	raw := c.Query("vendorId")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, "vendorId must be a UUID")
		return nil, false
	}
	return &id, true
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, param+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// ListProspects handles GET /api/v1/pipeline/prospects
func (h *Handler) ListProspects(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	vendorID, ok := h.vendorScope(c, identity)
	if !ok {
		return
	}
	activeOnly := c.Query("active") == "true"

	prospects, err := h.svc.ListProspects(c.Request.Context(), vendorID, activeOnly)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, prospects)
}

// SendToFollowUp handles POST /api/v1/pipeline/prospects
func (h *Handler) SendToFollowUp(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.SendToFollowUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prospect, err := h.svc.SendToFollowUp(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, prospect)
}

// GetProspect handles GET /api/v1/pipeline/prospects/:id
func (h *Handler) GetProspect(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	prospect, err := h.svc.GetProspect(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, prospect)
}

// CompleteSale handles POST /api/v1/pipeline/prospects/:id/complete
func (h *Handler) CompleteSale(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req transport.CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prospect, err := h.svc.CompleteSale(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, prospect)
}

// ReturnToPool handles POST /api/v1/pipeline/prospects/:id/return
func (h *Handler) ReturnToPool(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req transport.ReturnToPoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	prospect, err := h.svc.ReturnToPool(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, prospect)
}

// ListCallLogs handles GET /api/v1/pipeline/prospects/:id/calls
func (h *Handler) ListCallLogs(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	logs, err := h.svc.ListCallLogs(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, logs)
}

// LogCall handles POST /api/v1/pipeline/prospects/:id/calls
func (h *Handler) LogCall(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req transport.LogCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	entry, err := h.svc.LogCall(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, entry)
}

// StepProgress handles GET /api/v1/pipeline/prospects/:id/progress
func (h *Handler) StepProgress(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	progress, err := h.svc.StepProgress(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, progress)
}

// Tasks handles GET /api/v1/pipeline/tasks
func (h *Handler) Tasks(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	vendorID, ok := h.vendorScope(c, identity)
	if !ok {
		return
	}

	tasks, err := h.svc.Tasks(c.Request.Context(), vendorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, tasks)
}

// ListSteps handles GET /api/v1/pipeline/steps
func (h *Handler) ListSteps(c *gin.Context) {
	steps, err := h.svc.ListSteps(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, steps)
}

// CreateStep handles POST /api/v1/admin/pipeline/steps
func (h *Handler) CreateStep(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	step, err := h.svc.CreateStep(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, step)
}

// DeleteStep handles DELETE /api/v1/admin/pipeline/steps/:id
func (h *Handler) DeleteStep(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteStep(c.Request.Context(), identity.UserID(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ListPriorities handles GET /api/v1/pipeline/priorities
func (h *Handler) ListPriorities(c *gin.Context) {
	priorities, err := h.svc.ListPriorities(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, priorities)
}

// CreatePriority handles POST /api/v1/admin/pipeline/priorities
func (h *Handler) CreatePriority(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreatePriorityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	priority, err := h.svc.CreatePriority(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, priority)
}

// DeletePriority handles DELETE /api/v1/admin/pipeline/priorities/:id
func (h *Handler) DeletePriority(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeletePriority(c.Request.Context(), identity.UserID(), id)) {
		return
	}
	httpkit.NoContent(c)
}
