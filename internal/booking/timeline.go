package booking

import (
	"context"
	"sort"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// AvailableLabel is shown in place of a user name for free equipment.
const AvailableLabel = "Available"

// TimelineEntry is one bar of the room timeline.
type TimelineEntry struct {
	ReservationID string    `json:"reservation_id,omitempty"`
	Equipment     string    `json:"equipment"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	User          string    `json:"user"`
	Available     bool      `json:"available"`
}

// Timeline is the availability view of one room on one day.
type Timeline struct {
	Room      string          `json:"room"`
	Date      string          `json:"date"`
	SlotBased []TimelineEntry `json:"slot_based"`
	FreeForm  []TimelineEntry `json:"free_form"`
}

// OperationalWindow returns the part of date during which e can be in use:
// the slot window for slot-based equipment, the whole day otherwise.
func OperationalWindow(e model.Equipment, date time.Time) (time.Time, time.Time) {
	day := startOfDay(date)
	if e.SlotBased {
		return day.Add(SlotDayStart), day.Add(SlotDayEnd)
	}
	return day, day.Add(23*time.Hour + 59*time.Minute)
}

// ListReservations builds the timeline for room on date.  Every enabled
// equipment item appears: either with the reservations overlapping its
// operational window, clipped to it, or with a single Available
// placeholder.  Store read
// failures degrade to an empty timeline.
func (e *Engine) ListReservations(ctx context.Context, room string, date time.Time) (Timeline, error) {
	equipment, ok := e.catalog.Room(room)
	if !ok {
		return Timeline{}, ErrRoomNotFound
	}
	date = date.In(e.loc)
	logger := e.log(ctx, "list_reservations", "room", room, "date", date.Format(time.DateOnly))

	byCollection := make(map[model.Collection][]model.Reservation, 2)
	for _, c := range model.Collections() {
		byCollection[c] = e.readDegraded(ctx, logger, c)
	}

	tl := Timeline{Room: room, Date: date.Format(time.DateOnly), SlotBased: []TimelineEntry{}, FreeForm: []TimelineEntry{}}
	for _, eq := range equipment {
		if !eq.Enabled {
			continue
		}
		winStart, winEnd := OperationalWindow(eq, date)
		var entries []TimelineEntry
		for _, r := range byCollection[eq.Collection()] {
			if r.Room != room || r.Equipment != eq.Name {
				continue
			}
			start, end := latest(r.Start, winStart), earliest(r.End, winEnd)
			if !start.Before(end) {
				continue
			}
			entries = append(entries, TimelineEntry{
				ReservationID: r.ID,
				Equipment:     eq.Name,
				Start:         start,
				End:           end,
				User:          r.UserName,
			})
		}
		if len(entries) == 0 {
			entries = append(entries, TimelineEntry{
				Equipment: eq.Name,
				Start:     winStart,
				End:       winEnd,
				User:      AvailableLabel,
				Available: true,
			})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Start.Before(entries[j].Start) })
		if eq.SlotBased {
			tl.SlotBased = append(tl.SlotBased, entries...)
		} else {
			tl.FreeForm = append(tl.FreeForm, entries...)
		}
	}
	return tl, nil
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earliest(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
