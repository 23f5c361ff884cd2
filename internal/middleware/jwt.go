package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/utils"
)

// Context keys set by JWTAuth.
const (
    ctxUserID   = "user_id"
    ctxUserName = "user_name"
    ctxRole     = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// injects the token's subject, name and role claims into the request
// context.  Handlers read them back with PrincipalFrom.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(ctxUserID, claims.Subject)
            c.Set(ctxUserName, claims.Name)
            c.Set(ctxRole, claims.Role)
            return next(c)
        }
    }
}
