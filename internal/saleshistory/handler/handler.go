package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"salesops_backend/internal/saleshistory/repository"
	"salesops_backend/internal/saleshistory/service"
	"salesops_backend/platform/httpkit"
)

const msgInvalidFilter = "invalid filter"

// Handler handles HTTP requests for sales history.
type Handler struct {
	svc *service.Service
}

// New creates a new sales history handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the sales history routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

// List handles GET /api/v1/sales. Vendor users see their own sales only.
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	var filter repository.ListFilter
	if !identity.HasRole("admin") {
		filter.VendorID = identity.VendorID()
	} else if raw := c.Query("vendorId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, "vendorId must be a UUID")
			return
		}
		filter.VendorID = &id
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, "year must be an integer")
			return
		}
		filter.Year = &year
	}
	if raw := c.Query("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidFilter, "month must be 1..12")
			return
		}
		filter.Month = &month
	}

	sales, err := h.svc.ListSales(c.Request.Context(), filter)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, sales)
}
