// Package router wires HTTP routes to handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware"
)

// RegisterRoutes registers the routes that need no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the /v1/auth endpoints plus the protected
// /v1/auth/me profile route.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout works with a refresh token in the body, no JWT required;
	// with a bearer token it revokes every session instead.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1/auth", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterBooking registers the availability search and reservation
// endpoints under /v1. All routes require a valid JWT with the EATER
// role. The rate limiter covers the whole group; the response cache
// applies only to the availability search, since reservation reads
// must always reflect the latest delete.
func RegisterBooking(e *echo.Echo, av *handler.AvailabilityHandler, rs *handler.ReservationHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("EATER"),
		middleware.RateLimit(rdb, config.LoadRateLimitConfig()),
	)

	g.GET("/restaurants/available", av.Search,
		middleware.CacheResponse(rdb, config.LoadCacheConfig()))

	g.POST("/reserve", rs.Reserve)
	g.GET("/reservations/:id", rs.Get)
	g.DELETE("/reservations/:id", rs.Delete)
}
