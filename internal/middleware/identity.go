package middleware

import (
    "github.com/labstack/echo/v4"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// PrincipalFrom returns the authenticated caller stored by JWTAuth.  The
// second result is false for unauthenticated requests.
func PrincipalFrom(c echo.Context) (booking.Principal, bool) {
    id, _ := c.Get(ctxUserID).(string)
    if id == "" {
        return booking.Principal{}, false
    }
    name, _ := c.Get(ctxUserName).(string)
    role, _ := c.Get(ctxRole).(string)
    return booking.Principal{ID: id, Name: name, Role: model.ParseRole(role)}, true
}

// WithPrincipal stores p the way JWTAuth would.  Tests and internal
// callers use it to act on behalf of a known user.
func WithPrincipal(c echo.Context, p booking.Principal) {
    c.Set(ctxUserID, p.ID)
    c.Set(ctxUserName, p.Name)
    c.Set(ctxRole, string(p.Role))
}

// currentUserID identifies the caller for rate limiting.
func currentUserID(c echo.Context) string {
    if p, ok := PrincipalFrom(c); ok {
        return p.ID
    }
    return "anon"
}
