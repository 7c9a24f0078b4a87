// Package router wires handlers and middleware onto echo routes.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/theater-seating/internal/handler"
	"github.com/iliyamo/theater-seating/internal/middleware"
	"github.com/iliyamo/theater-seating/internal/utils"
)

// RegisterRoutes registers the unauthenticated health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers operator login. Logins go through the limiter to
// slow down password guessing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	e.POST("/v1/auth/login", a.Login, limiter)
}

// RegisterSeating registers the seat layout and the two reservation
// operations. Reading the layout is public and cached; reserving needs an
// OPERATOR token and is rate limited per operator and route.
func RegisterSeating(e *echo.Echo, h *handler.SeatingHandler, jwtSecret string, limiter, cache echo.MiddlewareFunc) {
	e.GET("/v1/seats", h.Layout, cache)

	g := e.Group("/v1/seats",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(utils.RoleOperator),
		limiter,
	)
	g.POST("/reserve", h.Reserve)
	g.POST("/best", h.ReserveBest)
}
