// Package payments provides the payment ledger module.
package payments

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/payments/handler"
	"salesops_backend/internal/payments/repository"
	"salesops_backend/internal/payments/service"
	"salesops_backend/platform/logger"
	"salesops_backend/platform/validator"
)

// Module is the payments module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the payments module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log, time.Now)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "payments"
}

// RegisterRoutes mounts payment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/payments"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
