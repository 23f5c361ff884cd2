package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/middleware"
)

// statusFor maps booking rejections to HTTP status codes.
func statusFor(err error) int {
    switch {
    case errors.Is(err, booking.ErrOverlapConflict),
        errors.Is(err, booking.ErrContinuousSlotViolation):
        return http.StatusConflict
    case errors.Is(err, booking.ErrEquipmentDisabled),
        errors.Is(err, booking.ErrPastStartTime),
        errors.Is(err, booking.ErrInvalidInterval),
        errors.Is(err, booking.ErrBookingHorizonExceeded):
        return http.StatusUnprocessableEntity
    case errors.Is(err, booking.ErrNotAuthorized):
        return http.StatusForbidden
    case errors.Is(err, booking.ErrEquipmentNotFound),
        errors.Is(err, booking.ErrRoomNotFound),
        errors.Is(err, booking.ErrReservationNotFound):
        return http.StatusNotFound
    case errors.Is(err, booking.ErrStoreUnavailable):
        return http.StatusServiceUnavailable
    }
    return http.StatusInternalServerError
}

// messages are the user-facing texts for each rejection.
var messages = map[string]string{
    "overlap_conflict":          "This time slot is already reserved. Please choose another time.",
    "continuous_slot_violation": "Cannot book continuous slots. Please select a non-continuous slot.",
    "equipment_disabled":        "This equipment is currently not available for reservation.",
    "past_start_time":           "Cannot book a reservation in the past. Please select a future time.",
    "invalid_interval":          "The start time must be before the end time and match an available slot.",
    "booking_horizon_exceeded":  "The selected date is too far in advance for this equipment.",
    "not_authorized":            "You are not allowed to perform this action.",
    "store_unavailable":         "Reservations are temporarily unavailable. Please try again.",
    "equipment_not_found":       "Unknown equipment.",
    "room_not_found":            "Unknown room.",
    "reservation_not_found":     "Reservation not found.",
}

// bookingError writes err as {"error": kind, "message": text}.
func bookingError(c echo.Context, err error) error {
    kind := booking.ErrorKind(err)
    msg, ok := messages[kind]
    if !ok {
        c.Logger().Errorf("unexpected booking error: %v", err)
        msg = "internal error"
    }
    return c.JSON(statusFor(err), echo.Map{"error": kind, "message": msg})
}

// principal returns the caller or writes a 401.
func principal(c echo.Context) (booking.Principal, bool) {
    p, ok := middleware.PrincipalFrom(c)
    if !ok {
        _ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    return p, ok
}

// parseDate reads a YYYY-MM-DD query value, defaulting to today.
func parseDate(s string, now time.Time) (time.Time, error) {
    s = strings.TrimSpace(s)
    if s == "" {
        return now, nil
    }
    return time.ParseInLocation(time.DateOnly, s, now.Location())
}

// parseTime accepts RFC 3339 or the booking timestamp layouts.
func parseTime(s string, loc *time.Location) (time.Time, error) {
    s = strings.TrimSpace(s)
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t.In(loc), nil
    }
    return booking.ParseTimestamp(s, loc)
}
