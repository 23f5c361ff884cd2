package booking

import (
	"context"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// EventType names a domain event emitted by the Engine.
type EventType string

const (
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventMaintenanceDue       EventType = "equipment.maintenance_due"
)

// Event is handed to the Publisher after a state change has been stored.
type Event struct {
	Type        EventType
	Reservation model.Reservation
	ActorID     string
	ActorName   string
	UseCount    int
	OccurredAt  time.Time
}

// Publisher delivers events to downstream consumers.  Failures are logged
// by the Engine and never undo the stored change.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
