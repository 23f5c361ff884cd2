package handler

import (
    "bytes"
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/export"
    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// AdminHandler serves the /v1/admin endpoints.  Role enforcement happens
// in the router; the engine checks again.
type AdminHandler struct {
    Reservations *ReservationHandler
    // Users resolves the owner of bookings made on someone's behalf.
    Users UserStore
    // OnCatalogChange runs after a successful toggle, e.g. to drop cached
    // catalog responses.  May be nil.
    OnCatalogChange func(ctx context.Context) error
}

func NewAdminHandler(r *ReservationHandler, users UserStore, onCatalogChange func(ctx context.Context) error) *AdminHandler {
    return &AdminHandler{Reservations: r, Users: users, OnCatalogChange: onCatalogChange}
}

type toggleReq struct {
    Room      string `json:"room"`
    Equipment string `json:"equipment"`
}

// ToggleEquipment enables or disables one equipment item.
func (h *AdminHandler) ToggleEquipment(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    var req toggleReq
    if err := c.Bind(&req); err != nil || req.Room == "" || req.Equipment == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "room and equipment are required"})
    }
    ctx := c.Request().Context()
    enabled, err := h.Reservations.Engine.ToggleEquipment(ctx, p, req.Room, req.Equipment)
    if err != nil {
        return bookingError(c, err)
    }
    if h.OnCatalogChange != nil {
        if err := h.OnCatalogChange(ctx); err != nil {
            c.Logger().Warnf("catalog change hook failed: %v", err)
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"room": req.Room, "equipment": req.Equipment, "enabled": enabled})
}

// List returns every reservation grouped by collection.
func (h *AdminHandler) List(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    all, err := h.Reservations.Engine.AllReservations(c.Request().Context(), p)
    if err != nil {
        return bookingError(c, err)
    }
    out := echo.Map{}
    for _, coll := range model.Collections() {
        rs := all[coll]
        if rs == nil {
            rs = []model.Reservation{}
        }
        out[string(coll)] = rs
    }
    return c.JSON(http.StatusOK, out)
}

// Clear deletes every reservation.  The caller must confirm with
// ?confirm=yes.
func (h *AdminHandler) Clear(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    if !strings.EqualFold(c.QueryParam("confirm"), "yes") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "add ?confirm=yes to clear all reservations"})
    }
    if err := h.Reservations.Engine.ClearReservations(c.Request().Context(), p); err != nil {
        return bookingError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// CreateOnBehalf books equipment for the active account named by the
// user_id query parameter.  The body is the regular reservation body and
// the same rules apply.
func (h *AdminHandler) CreateOnBehalf(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    uid, err := strconv.ParseUint(strings.TrimSpace(c.QueryParam("user_id")), 10, 64)
    if err != nil || uid == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id query parameter is required"})
    }
    u, err := h.Users.GetByID(c.Request().Context(), uid)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    if !u.IsActive {
        return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
    }
    owner := booking.Principal{ID: strconv.FormatUint(u.ID, 10), Name: u.Name, Role: u.Role}
    return h.Reservations.create(c, p, owner)
}

// Export downloads every reservation as CSV (default) or XLSX.
func (h *AdminHandler) Export(c echo.Context) error {
    p, ok := principal(c)
    if !ok {
        return nil
    }
    format, err := export.ParseFormat(c.QueryParam("format"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    all, err := h.Reservations.Engine.AllReservations(c.Request().Context(), p)
    if err != nil {
        return bookingError(c, err)
    }
    var buf bytes.Buffer
    if err := export.Write(&buf, format, all); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
    }
    name := "reservations_" + h.Reservations.Engine.Now().Format("20060102") + "." + string(format)
    c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
    return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
