package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

func TestListReservations_Placeholders(t *testing.T) {
	f := newFixture(at(0, 7, 0))

	tl, err := f.engine.ListReservations(context.Background(), "Lab A", at(0, 0, 0))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tl.Date != "2026-10-15" {
		t.Fatalf("date = %q", tl.Date)
	}
	if len(tl.SlotBased) != 1 || len(tl.FreeForm) != 2 {
		t.Fatalf("expected one entry per enabled equipment, got %+v", tl)
	}
	pcr := tl.SlotBased[0]
	if !pcr.Available || pcr.User != AvailableLabel || !pcr.Start.Equal(at(0, 8, 0)) || !pcr.End.Equal(at(0, 20, 0)) {
		t.Fatalf("unexpected slot placeholder %+v", pcr)
	}
	for _, e := range tl.FreeForm {
		if e.Equipment == "Shaker" {
			t.Fatalf("disabled equipment listed")
		}
		if !e.Start.Equal(at(0, 0, 0)) || !e.End.Equal(at(0, 23, 59)) {
			t.Fatalf("unexpected free-form placeholder %+v", e)
		}
	}
}

func TestListReservations_EntriesForDay(t *testing.T) {
	f := newFixture(at(0, 7, 0))
	if _, err := f.book(bob, "Centrifuge", at(0, 15, 0), at(0, 16, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.book(alice, "Centrifuge", at(0, 9, 0), at(0, 10, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.book(alice, "Centrifuge", at(1, 9, 0), at(1, 10, 0)); err != nil {
		t.Fatal(err)
	}
	if _, err := f.book(alice, "PCR-1", at(0, 14, 0), at(0, 17, 0)); err != nil {
		t.Fatal(err)
	}

	tl, err := f.engine.ListReservations(context.Background(), "Lab A", at(0, 12, 0))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var centrifuge []TimelineEntry
	for _, e := range tl.FreeForm {
		if e.Equipment == "Centrifuge" {
			centrifuge = append(centrifuge, e)
		}
	}
	if len(centrifuge) != 2 {
		t.Fatalf("expected today's two centrifuge bookings, got %+v", centrifuge)
	}
	if centrifuge[0].User != "Alice" || centrifuge[1].User != "Bob" {
		t.Fatalf("entries not sorted by start: %+v", centrifuge)
	}
	if len(tl.SlotBased) != 1 || tl.SlotBased[0].Available || tl.SlotBased[0].User != "Alice" {
		t.Fatalf("unexpected slot entries %+v", tl.SlotBased)
	}
}

func TestListReservations_UnknownRoom(t *testing.T) {
	f := newFixture(at(0, 7, 0))
	if _, err := f.engine.ListReservations(context.Background(), "Lab Z", at(0, 0, 0)); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestListReservations_DegradesOnReadFailure(t *testing.T) {
	f := newFixture(at(0, 7, 0))
	if _, err := f.book(alice, "Centrifuge", at(0, 9, 0), at(0, 10, 0)); err != nil {
		t.Fatal(err)
	}
	f.store.readErr = errors.New("timeout")

	tl, err := f.engine.ListReservations(context.Background(), "Lab A", at(0, 0, 0))
	if err != nil {
		t.Fatalf("listing should degrade, got %v", err)
	}
	for _, e := range append(tl.SlotBased, tl.FreeForm...) {
		if !e.Available {
			t.Fatalf("expected placeholders only, got %+v", e)
		}
	}
	if got := f.engine.UserReservations(context.Background(), alice); len(got) != 0 {
		t.Fatalf("expected empty listing, got %+v", got)
	}
}

func TestListReservations_SpanningMidnight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at(0, 7, 0))
	// stored before free-form bookings were held to one day
	seed := []model.Reservation{{
		ID: "legacy", UserID: "2", UserName: "Bob", Room: "Lab A", Equipment: "Centrifuge",
		Start: at(0, 20, 0), End: at(1, 10, 0),
	}}
	if err := f.store.MemoryStore.Write(ctx, model.CollectionFreeForm, seed); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		day        int
		start, end time.Time
	}{
		{0, at(0, 20, 0), at(0, 23, 59)},
		{1, at(1, 0, 0), at(1, 10, 0)},
	} {
		tl, err := f.engine.ListReservations(ctx, "Lab A", at(tc.day, 0, 0))
		if err != nil {
			t.Fatalf("list day %d: %v", tc.day, err)
		}
		var found bool
		for _, e := range tl.FreeForm {
			if e.Equipment != "Centrifuge" {
				continue
			}
			if e.Available || !e.Start.Equal(tc.start) || !e.End.Equal(tc.end) {
				t.Fatalf("day %d: unexpected entry %+v", tc.day, e)
			}
			found = true
		}
		if !found {
			t.Fatalf("day %d: centrifuge missing from timeline", tc.day)
		}
	}
}

func TestListReservations_SkipsEntriesOutsideWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(at(0, 7, 0))
	seed := []model.Reservation{{
		ID: "late", UserID: "1", UserName: "Alice", Room: "Lab A", Equipment: "Centrifuge",
		Start: at(0, 23, 59).Add(30 * time.Second), End: at(1, 0, 0),
	}}
	if err := f.store.MemoryStore.Write(ctx, model.CollectionFreeForm, seed); err != nil {
		t.Fatal(err)
	}

	tl, err := f.engine.ListReservations(ctx, "Lab A", at(0, 0, 0))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, e := range tl.FreeForm {
		if !e.End.After(e.Start) {
			t.Fatalf("entry ends before it starts: %+v", e)
		}
		if e.Equipment == "Centrifuge" && !e.Available {
			t.Fatalf("expected placeholder for centrifuge, got %+v", e)
		}
	}
}

func TestCreateReservation_LastMinuteOfDay(t *testing.T) {
	f := newFixture(at(0, 7, 0))
	if _, err := f.book(alice, "Centrifuge", at(0, 23, 0), at(0, 23, 59)); err != nil {
		t.Fatalf("booking up to the end of the day should be accepted: %v", err)
	}
}
