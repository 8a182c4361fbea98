// Package audit provides the audit trail module. It subscribes to pipeline
// transitions, entity mutations, and payments, persisting an append-only log.
package audit

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/audit/handler"
	"salesops_backend/internal/audit/repository"
	"salesops_backend/internal/audit/service"
	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/platform/logger"
)

// Module is the audit module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the audit module and attaches its event subscriptions.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	svc.Subscribe(bus)
	h := handler.New(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "audit"
}

// RegisterRoutes mounts the audit routes on the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Admin.Group("/audit"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
