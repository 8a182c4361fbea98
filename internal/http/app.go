package http

import (
	"context"

	"salesops_backend/internal/events"
	"salesops_backend/platform/config"
	"salesops_backend/platform/logger"
)

// RouterConfig is the slice of configuration the router actually needs.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker answers the readiness probe. A pgx pool satisfies it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App collects the initialized dependencies the composition root hands to
// the router.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health backs the readiness endpoint, typically a DB ping.
	Health HealthChecker
	// EventBus carries domain events between modules.
	EventBus events.Bus
	// Modules are the HTTP-facing bounded contexts to mount.
	Modules []Module
}
