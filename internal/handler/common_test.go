package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{booking.ErrOverlapConflict, http.StatusConflict},
		{booking.ErrContinuousSlotViolation, http.StatusConflict},
		{booking.ErrBookingHorizonExceeded, http.StatusUnprocessableEntity},
		{booking.ErrNotAuthorized, http.StatusForbidden},
		{booking.ErrRoomNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: timeout", booking.ErrStoreUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Errorf("statusFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestEveryKindHasMessage(t *testing.T) {
	for _, err := range []error{
		booking.ErrOverlapConflict, booking.ErrContinuousSlotViolation, booking.ErrEquipmentDisabled,
		booking.ErrPastStartTime, booking.ErrInvalidInterval, booking.ErrBookingHorizonExceeded,
		booking.ErrNotAuthorized, booking.ErrStoreUnavailable, booking.ErrEquipmentNotFound,
		booking.ErrRoomNotFound, booking.ErrReservationNotFound,
	} {
		if _, ok := messages[booking.ErrorKind(err)]; !ok {
			t.Errorf("no message for %q", booking.ErrorKind(err))
		}
	}
}

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	want := time.Date(2026, time.October, 16, 11, 0, 0, 0, loc)
	for _, in := range []string{"2026-10-16 11:00:00", "2026/10/16 11:00:00", "2026-10-16T04:00:00Z"} {
		got, err := parseTime(in, loc)
		if err != nil || !got.Equal(want) {
			t.Errorf("parseTime(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseTime("tomorrow", loc); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseDateDefaultsToToday(t *testing.T) {
	now := time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)
	got, err := parseDate("", now)
	if err != nil || !got.Equal(now) {
		t.Fatalf("parseDate empty = %v, %v", got, err)
	}
	got, err = parseDate("2026-10-20", now)
	if err != nil || got.Day() != 20 {
		t.Fatalf("parseDate = %v, %v", got, err)
	}
}
