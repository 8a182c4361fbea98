// Package saleshistory provides the sales recording module. It subscribes to
// prospect completions and keeps the permanent ledger of closed sales.
package saleshistory

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/saleshistory/handler"
	"salesops_backend/internal/saleshistory/repository"
	"salesops_backend/internal/saleshistory/service"
	"salesops_backend/platform/logger"
)

// Module is the sales history module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the sales history module and attaches its event
// subscriptions.
func NewModule(pool *pgxpool.Pool, goals service.GoalRecorder, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, goals, log)
	svc.Subscribe(bus)
	h := handler.New(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "saleshistory"
}

// RegisterRoutes mounts sales history routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/sales"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
