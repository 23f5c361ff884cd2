package model

import "time"

// Collection names one of the two reservation tables kept by the store.
// Slot-based equipment (PCR machines) and free-form equipment are stored
// apart because they follow different booking rules.
type Collection string

const (
    CollectionSlot     Collection = "slot"      // fixed 3-hour slot bookings
    CollectionFreeForm Collection = "free_form" // arbitrary start/end bookings
)

// Collections lists every collection in a stable order.
func Collections() []Collection {
    return []Collection{CollectionSlot, CollectionFreeForm}
}

// Reservation records a user's booking of one piece of equipment in one
// room.  Start is always strictly before End.  Two reservations are never
// allowed to overlap within the same (Room, Equipment) pair.
//
// Fields:
//  ID        – opaque identifier assigned on confirmation.
//  UserID    – identifier of the user who owns the booking.
//  UserName  – display name shown on the timeline.
//  Room      – room the equipment lives in.
//  Equipment – equipment name within the room.
//  Start     – booking start (inclusive).
//  End       – booking end (exclusive).
type Reservation struct {
    ID        string    `json:"id" db:"id"`
    UserID    string    `json:"user_id" db:"user_id"`
    UserName  string    `json:"user_name" db:"user_name"`
    Room      string    `json:"room" db:"room"`
    Equipment string    `json:"equipment" db:"equipment"`
    Start     time.Time `json:"start" db:"start_time"`
    End       time.Time `json:"end" db:"end_time"`
}

// SameResource reports whether both reservations target the same room and
// equipment pair.
func (r Reservation) SameResource(other Reservation) bool {
    return r.Room == other.Room && r.Equipment == other.Equipment
}

// SameDay reports whether both reservations start on the same calendar day
// in the location of r.Start.
func (r Reservation) SameDay(other Reservation) bool {
    y1, m1, d1 := r.Start.Date()
    y2, m2, d2 := other.Start.In(r.Start.Location()).Date()
    return y1 == y2 && m1 == m2 && d1 == d2
}
