// Package http wires the Gin server and the Module interface that each
// bounded context implements to mount its routes.
package http

import (
	"salesops_backend/platform/config"
	"salesops_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Module is a bounded context that owns a slice of the HTTP surface. The
// router stays ignorant of individual endpoints; each module mounts its own.
type Module interface {
	// Name identifies the module in startup logs.
	Name() string
	// RegisterRoutes mounts the module's routes using the shared context.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext bundles the route groups and shared middleware handed to
// every module at registration time.
type RouterContext struct {
	// Engine is the root Gin engine, for modules needing engine-level hooks.
	Engine *gin.Engine
	// V1 is the /api/v1 group.
	V1 *gin.RouterGroup
	// Protected is the authenticated group under /api/v1.
	Protected *gin.RouterGroup
	// Admin is the admin-only group under /api/v1/admin.
	Admin *gin.RouterGroup
	// Config carries the JWT settings needed by auth middleware.
	Config config.JWTConfig
	// AuthMiddleware enforces authentication on protected groups.
	AuthMiddleware gin.HandlerFunc
	// AuthRateLimiter throttles the public auth endpoints.
	AuthRateLimiter *httpkit.AuthRateLimiter
}
