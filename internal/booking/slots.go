package booking

import (
	"fmt"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// Operating window and slot length for slot-based equipment.
const (
	SlotDayStart = 8 * time.Hour
	SlotDayEnd   = 20 * time.Hour
	SlotLength   = 3 * time.Hour
)

// GenerateSlots returns the daily slot catalog: the operating window
// [08:00, 20:00) cut into consecutive 3-hour slots.  The result is the
// same on every call.
func GenerateSlots() []model.TimeSlot {
	slots := make([]model.TimeSlot, 0, int((SlotDayEnd-SlotDayStart)/SlotLength))
	for i, start := 0, SlotDayStart; start+SlotLength <= SlotDayEnd; i, start = i+1, start+SlotLength {
		end := start + SlotLength
		slots = append(slots, model.TimeSlot{
			Label: fmt.Sprintf("Slot %d: %s-%s", i+1, clock(start), clock(end)),
			Start: start,
			End:   end,
		})
	}
	return slots
}

// UsableSlots filters the catalog for date.  On the current day only slots
// ending strictly after now remain; any other day keeps every slot.
func UsableSlots(date, now time.Time) []model.TimeSlot {
	all := GenerateSlots()
	if !sameDate(date, now) {
		return all
	}
	out := all[:0]
	for _, s := range all {
		if _, end := s.On(now); end.After(now) {
			out = append(out, s)
		}
	}
	return out
}

// SlotFor resolves an absolute interval to the catalog slot it matches
// exactly.
func SlotFor(start, end time.Time) (model.TimeSlot, bool) {
	if !sameDate(start, end) {
		return model.TimeSlot{}, false
	}
	for _, s := range GenerateSlots() {
		st, en := s.On(start)
		if st.Equal(start) && en.Equal(end) {
			return s, true
		}
	}
	return model.TimeSlot{}, false
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func sameDate(a, b time.Time) bool {
	b = b.In(a.Location())
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
