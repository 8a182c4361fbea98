// Package goals provides the goals bounded context module: the product
// catalog, business and vendor sales targets, and the aggregation engine.
package goals

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/events"
	"salesops_backend/internal/goals/handler"
	"salesops_backend/internal/goals/repository"
	"salesops_backend/internal/goals/service"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"
)

// Module is the goals bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the goals module.
func NewModule(pool *pgxpool.Pool, vendors service.VendorDirectory, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, vendors, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "goals"
}

// Service returns the service layer for cross-module use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts goal routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/goals"), ctx.Admin.Group("/goals"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
