package booking

import "github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"

// Overlaps reports whether two half-open intervals intersect.  Touching
// endpoints do not overlap.
func Overlaps(a, b model.Reservation) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

// HasOverlap reports whether candidate overlaps any reservation for the
// same room and equipment, whoever owns it.
func HasOverlap(candidate model.Reservation, existing []model.Reservation) bool {
	for _, r := range existing {
		if r.SameResource(candidate) && Overlaps(candidate, r) {
			return true
		}
	}
	return false
}

// ViolatesContinuousSlot reports whether candidate would chain directly
// onto one of the same user's bookings of the same equipment on the same
// day.  Only slot-based equipment is subject to this rule.
func ViolatesContinuousSlot(candidate model.Reservation, existing []model.Reservation) bool {
	for _, r := range existing {
		if r.UserID != candidate.UserID || !r.SameResource(candidate) || !candidate.SameDay(r) {
			continue
		}
		if r.End.Equal(candidate.Start) || r.Start.Equal(candidate.End) {
			return true
		}
	}
	return false
}

// Check applies the conflict rules for equipment to candidate and returns
// the first rejection, or nil.
func Check(equipment model.Equipment, candidate model.Reservation, existing []model.Reservation) error {
	if HasOverlap(candidate, existing) {
		return ErrOverlapConflict
	}
	if equipment.SlotBased && ViolatesContinuousSlot(candidate, existing) {
		return ErrContinuousSlotViolation
	}
	return nil
}
