// Package queue defines the reservation event payload exchanged over
// RabbitMQ and the consumer that turns those events into an audit log.
package queue

import (
    "time"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
)

// QueueName is the durable queue carrying every reservation event.
const QueueName = "lab.reservation.events"

// ReservationEvent is the JSON message published after a reservation is
// confirmed or cancelled, or when counted equipment needs maintenance.
// Timestamps use the canonical booking layout in the lab time zone.
type ReservationEvent struct {
    Type          string `json:"type"`
    ReservationID string `json:"reservation_id"`
    UserID        string `json:"user_id"`
    UserName      string `json:"user_name"`
    Room          string `json:"room"`
    Equipment     string `json:"equipment"`
    StartsAt      string `json:"starts_at"`
    EndsAt        string `json:"ends_at"`
    ActorID       string `json:"actor_id"`
    ActorName     string `json:"actor_name"`
    UseCount      int    `json:"use_count,omitempty"`
    OccurredAt    string `json:"occurred_at"`
}

// FromEvent converts an engine event into its wire form.
func FromEvent(ev booking.Event) ReservationEvent {
    r := ev.Reservation
    return ReservationEvent{
        Type:          string(ev.Type),
        ReservationID: r.ID,
        UserID:        r.UserID,
        UserName:      r.UserName,
        Room:          r.Room,
        Equipment:     r.Equipment,
        StartsAt:      booking.FormatTimestamp(r.Start),
        EndsAt:        booking.FormatTimestamp(r.End),
        ActorID:       ev.ActorID,
        ActorName:     ev.ActorName,
        UseCount:      ev.UseCount,
        OccurredAt:    ev.OccurredAt.Format(time.RFC3339),
    }
}
