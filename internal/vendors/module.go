// Package vendors provides the vendor catalog module.
package vendors

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/vendors/handler"
	"salesops_backend/internal/vendors/repository"
	"salesops_backend/internal/vendors/service"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"
)

// Module is the vendors module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the vendors module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "vendors"
}

// Service returns the service layer for cross-module use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts vendor routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/vendors"), ctx.Admin.Group("/vendors"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
