package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/goals/repository"
	"salesops_backend/internal/goals/service"
	"salesops_backend/internal/goals/transport"
	"salesops_backend/platform/httpkit"
	"salesops_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
	msgInvalidPeriod    = "invalid period filter"
)

// Handler handles HTTP requests for goals and the aggregation view.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new goals handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers goal routes. Admins manage the catalog and
// business goals; vendor goals and the aggregate view are open to any
// authenticated user, scoped by role.
func (h *Handler) RegisterRoutes(rg, admin *gin.RouterGroup) {
	rg.GET("/aggregate", h.Aggregate)
	rg.GET("/products", h.ListProducts)
	rg.GET("/product-goals", h.ListProductGoals)
	rg.GET("/vendor-goals", h.ListVendorGoals)

	admin.POST("/products", h.CreateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.PUT("/product-goals", h.UpsertProductGoal)
	admin.DELETE("/product-goals/:id", h.DeleteProductGoal)
	admin.POST("/vendor-goals", h.CreateVendorGoal)
	admin.PUT("/vendor-goals/:id", h.UpdateVendorGoal)
	admin.DELETE("/vendor-goals/:id", h.DeleteVendorGoal)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePeriod(c *gin.Context) (repository.PeriodFilter, bool) {
	var filter repository.PeriodFilter
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidPeriod, "year must be an integer")
			return filter, false
		}
		filter.Year = &year
	}
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidPeriod, "month must be 1..12")
			return filter, false
		}
		filter.Month = &month
	}
	return filter, true
}

// Aggregate handles GET /api/v1/goals/aggregate
func (h *Handler) Aggregate(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	filter, ok := parsePeriod(c)
	if !ok {
		return
	}

	var vendorID *uuid.UUID
	if !identity.HasRole("admin") {
		vendorID = identity.VendorID()
	}

	rows, err := h.svc.Aggregate(c.Request.Context(), filter, vendorID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, rows)
}

// ListProducts handles GET /api/v1/goals/products
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, products)
}

// CreateProduct handles POST /api/v1/admin/goals/products
func (h *Handler) CreateProduct(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, product)
}

// DeleteProduct handles DELETE /api/v1/admin/goals/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteProduct(c.Request.Context(), identity.UserID(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ListProductGoals handles GET /api/v1/goals/product-goals
func (h *Handler) ListProductGoals(c *gin.Context) {
	filter, ok := parsePeriod(c)
	if !ok {
		return
	}

	goals, err := h.svc.ListProductGoals(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, goals)
}

// UpsertProductGoal handles PUT /api/v1/admin/goals/product-goals
func (h *Handler) UpsertProductGoal(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.UpsertProductGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	goal, err := h.svc.UpsertProductGoal(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, goal)
}

// DeleteProductGoal handles DELETE /api/v1/admin/goals/product-goals/:id
func (h *Handler) DeleteProductGoal(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteProductGoal(c.Request.Context(), identity.UserID(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ListVendorGoals handles GET /api/v1/goals/vendor-goals
func (h *Handler) ListVendorGoals(c *gin.Context) {
	filter, ok := parsePeriod(c)
	if !ok {
		return
	}

	goals, err := h.svc.ListVendorGoals(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, goals)
}

// CreateVendorGoal handles POST /api/v1/admin/goals/vendor-goals
func (h *Handler) CreateVendorGoal(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var req transport.CreateVendorGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	goal, err := h.svc.CreateVendorGoal(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, goal)
}

// UpdateVendorGoal handles PUT /api/v1/admin/goals/vendor-goals/:id
func (h *Handler) UpdateVendorGoal(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateVendorGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	goal, err := h.svc.UpdateVendorGoal(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, goal)
}

// DeleteVendorGoal handles DELETE /api/v1/admin/goals/vendor-goals/:id
func (h *Handler) DeleteVendorGoal(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteVendorGoal(c.Request.Context(), identity.UserID(), id)) {
		return
	}
	httpkit.NoContent(c)
}
