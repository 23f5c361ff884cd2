package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/handler"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/middleware"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// Deps carries the handlers and shared middleware the routes need.
// RateLimit and Cache may be nil.
type Deps struct {
	JWTSecret     string
	Auth          *handler.AuthHandler
	Reservations  *handler.ReservationHandler
	Admin         *handler.AdminHandler
	Announcements *handler.AnnouncementHandler
	Ready         echo.HandlerFunc
	RateLimit     echo.MiddlewareFunc
	Cache         echo.MiddlewareFunc
}

// Register mounts every route on e.
func Register(e *echo.Echo, d Deps) {
	if d.RateLimit != nil {
		e.Use(d.RateLimit)
	}
	RegisterRoutes(e, d.Ready)
	RegisterAuth(e, d.Auth, d.JWTSecret)
	RegisterUser(e, d)
	RegisterAdmin(e, d.Admin, d.JWTSecret)
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo, ready echo.HandlerFunc) {
	e.GET("/healthz", handler.Health)
	if ready != nil {
		e.GET("/readyz", ready)
	}
}

// RegisterAuth registers the session endpoints.  Login, refresh and logout
// live under /v1/auth and need no access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterUser registers the booking endpoints available to every role.
func RegisterUser(e *echo.Echo, d Deps) {
	auth := middleware.JWTAuth(d.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleLecturer, model.RoleUser)
	h := d.Reservations

	rooms := []echo.MiddlewareFunc{auth, anyRole}
	if d.Cache != nil {
		rooms = append(rooms, d.Cache)
	}
	e.GET("/v1/rooms", h.Rooms, rooms...)
	e.GET("/v1/rooms/:room/timeline", h.Timeline, auth, anyRole)
	e.GET("/v1/slots", h.Slots, auth, anyRole)
	e.POST("/v1/reservations", h.Create, auth, anyRole)
	e.DELETE("/v1/reservations/:id", h.Cancel, auth, anyRole)
	e.GET("/v1/my-reservations", h.Mine, auth, anyRole)

	e.GET("/v1/announcement", d.Announcements.Get, auth, anyRole)
	e.PUT("/v1/announcement", d.Announcements.Put, auth,
		middleware.RequireRole(model.RoleAdmin, model.RoleLecturer))
}
