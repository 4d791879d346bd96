// Package router wires HTTP routes to handlers and applies per-group
// middleware. Auth rules: catalog browsing and booking creation accept
// guests, booking listing needs a login, catalog writes and payments need
// staff or admin.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/soundhaus/booking-api/internal/handler"
	"github.com/soundhaus/booking-api/internal/middleware"
	"github.com/soundhaus/booking-api/internal/model"
)

// RegisterRoutes registers routes that need no authentication at all.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Register, login and refresh are
// open; /v1/me requires a valid access token. Logout accepts either a
// refresh token in the body or a Bearer token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, middleware.OptionalAuth(jwtSecret))

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the public event catalog. OptionalAuth lets the
// seat map include user_booked_seats for logged-in callers while keeping the
// routes open to guests. These responses embed the derived seat map, so they
// are deliberately left out of the response cache.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string) {
	g := e.Group("/v1/events")
	g.Use(middleware.OptionalAuth(jwtSecret))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// RegisterBookings registers the booking ledger routes. Creation is open to
// guests; listing and status edits require a login.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	e.POST("/v1/event-bookings", h.Create, middleware.OptionalAuth(jwtSecret))

	auth := e.Group("/v1/event-bookings")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("", h.ListMine)
	auth.PATCH("/:id/status", h.UpdateStatus)
}

// RegisterAdmin registers staff-only routes: catalog writes, the payment
// book and the dashboard summary. The cache middleware is applied only to
// the payment reads; catalog responses embed the live seat map and must
// never be cached.
func RegisterAdmin(e *echo.Echo, ev *handler.AdminEventHandler, pay *handler.PaymentHandler, dash *handler.DashboardHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	admin := e.Group("/v1/admin")
	admin.Use(middleware.JWTAuth(jwtSecret))
	admin.Use(middleware.RequireRole(model.RoleStaff, model.RoleAdmin))

	admin.POST("/events", ev.Create)
	admin.PUT("/events/:id", ev.Update)
	admin.PATCH("/events/:id", ev.Update)
	admin.DELETE("/events/:id", ev.Delete)

	admin.GET("/payments", pay.List, cache)
	admin.GET("/payments/total", pay.Total, cache)
	admin.POST("/payments", pay.Create)
	admin.GET("/payments/:id", pay.Get)
	admin.PUT("/payments/:id", pay.Update)
	admin.DELETE("/payments/:id", pay.Delete)

	dashGroup := e.Group("/v1/dashboard")
	dashGroup.Use(middleware.JWTAuth(jwtSecret))
	dashGroup.Use(middleware.RequireRole(model.RoleStaff, model.RoleAdmin))
	dashGroup.GET("/summary", dash.Summary)
}
