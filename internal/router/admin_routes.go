package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/handler"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/middleware"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.POST("/equipment/toggle", a.ToggleEquipment)
	g.GET("/reservations", a.List)
	g.POST("/reservations", a.CreateOnBehalf)
	g.DELETE("/reservations", a.Clear)
	g.GET("/reservations/export", a.Export)
}
