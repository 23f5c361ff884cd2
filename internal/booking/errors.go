package booking

import "errors"

// Rejection reasons surfaced to callers.  All of them are recoverable;
// none should terminate the process.
var (
	ErrOverlapConflict         = errors.New("booking: slot already reserved")
	ErrContinuousSlotViolation = errors.New("booking: continuous slots cannot be booked")
	ErrEquipmentDisabled       = errors.New("booking: equipment not available for reservation")
	ErrPastStartTime           = errors.New("booking: start time is in the past")
	ErrInvalidInterval         = errors.New("booking: start must be before end")
	ErrBookingHorizonExceeded  = errors.New("booking: date is beyond the booking horizon")
	ErrNotAuthorized           = errors.New("booking: not authorized")
	ErrStoreUnavailable        = errors.New("booking: reservation store unavailable")
	ErrEquipmentNotFound       = errors.New("booking: equipment not found")
	ErrRoomNotFound            = errors.New("booking: room not found")
	ErrReservationNotFound     = errors.New("booking: reservation not found")
)

// ErrorKind maps rejection errors to a stable label for logs and API
// responses.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOverlapConflict):
		return "overlap_conflict"
	case errors.Is(err, ErrContinuousSlotViolation):
		return "continuous_slot_violation"
	case errors.Is(err, ErrEquipmentDisabled):
		return "equipment_disabled"
	case errors.Is(err, ErrPastStartTime):
		return "past_start_time"
	case errors.Is(err, ErrInvalidInterval):
		return "invalid_interval"
	case errors.Is(err, ErrBookingHorizonExceeded):
		return "booking_horizon_exceeded"
	case errors.Is(err, ErrNotAuthorized):
		return "not_authorized"
	case errors.Is(err, ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, ErrEquipmentNotFound):
		return "equipment_not_found"
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrReservationNotFound):
		return "reservation_not_found"
	}
	return "unexpected"
}
