package booking

import (
	"math"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// Policy holds the booking horizons, counted in calendar days from today.
type Policy struct {
	SlotHorizonDays       int // slot-based equipment: today or tomorrow
	GeneralHorizonDays    int // free-form equipment without an override
	PrivilegedHorizonDays int // free-form equipment booked by admins and lecturers
}

// DefaultPolicy mirrors the lab's published booking rules.
func DefaultPolicy() Policy {
	return Policy{SlotHorizonDays: 1, GeneralHorizonDays: 7, PrivilegedHorizonDays: 14}
}

// HorizonDays returns how many days ahead role may book e.  An equipment
// override (autoclaves use 1) is never extended.
func (p Policy) HorizonDays(e model.Equipment, role model.Role) int {
	if e.SlotBased {
		return p.SlotHorizonDays
	}
	if e.HorizonDays > 0 {
		return e.HorizonDays
	}
	if role.Privileged() && p.PrivilegedHorizonDays > p.GeneralHorizonDays {
		return p.PrivilegedHorizonDays
	}
	return p.GeneralHorizonDays
}

// daysBetween counts calendar days from the day of from to the day of to.
func daysBetween(from, to time.Time) int {
	d := startOfDay(to.In(from.Location())).Sub(startOfDay(from))
	return int(math.Round(d.Hours() / 24))
}
