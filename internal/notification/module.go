// Package notification provides the in-app notification module. It
// subscribes to pipeline events that should surface to vendors.
package notification

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"salesops_backend/internal/events"
	apphttp "salesops_backend/internal/http"
	"salesops_backend/internal/notification/handler"
	"salesops_backend/internal/notification/repository"
	"salesops_backend/internal/notification/service"
	"salesops_backend/platform/logger"
)

// Module is the notification module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the notification module and attaches its event
// subscriptions.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	svc.Subscribe(bus)
	h := handler.New(svc)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes mounts notification routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/notifications"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
