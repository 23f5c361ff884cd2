package booking

import (
	"context"
	"testing"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, time.October, 15, 8, 0, 0, 0, labZone)
	for _, s := range []string{"2026-10-15 08:00:00", "2026/10/15 08:00:00"} {
		got, err := ParseTimestamp(s, labZone)
		if err != nil {
			t.Fatalf("ParseTimestamp(%q): %v", s, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseTimestamp("15.10.2026 08:00", labZone); err == nil {
		t.Fatalf("expected error for unknown layout")
	}
	if got := FormatTimestamp(want); got != "2026-10-15 08:00:00" {
		t.Fatalf("FormatTimestamp = %q", got)
	}
}

func TestMemoryStore_CopySemantics(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	rs := []model.Reservation{res("1", "Centrifuge", 9, 10)}
	if err := s.Write(ctx, model.CollectionFreeForm, rs); err != nil {
		t.Fatalf("write: %v", err)
	}
	rs[0].UserID = "mutated"

	got, _ := s.Read(ctx, model.CollectionFreeForm)
	if got[0].UserID != "1" {
		t.Fatalf("store aliases caller slice")
	}
	got[0].UserID = "mutated"
	again, _ := s.Read(ctx, model.CollectionFreeForm)
	if again[0].UserID != "1" {
		t.Fatalf("read returns shared slice")
	}
	if slot, _ := s.Read(ctx, model.CollectionSlot); len(slot) != 0 {
		t.Fatalf("collections are not separate")
	}
}

// Two writers that both read before either writes: without a lock the
// second Write replaces the first.
func TestMemoryStore_UnlockedReadModifyWriteLosesUpdate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, _ := s.Read(ctx, model.CollectionFreeForm)
	second, _ := s.Read(ctx, model.CollectionFreeForm)

	_ = s.Write(ctx, model.CollectionFreeForm, append(first, res("1", "Centrifuge", 9, 10)))
	_ = s.Write(ctx, model.CollectionFreeForm, append(second, res("2", "Centrifuge", 9, 10)))

	got, _ := s.Read(ctx, model.CollectionFreeForm)
	if len(got) != 1 || got[0].UserID != "2" {
		t.Fatalf("expected last write to win, got %+v", got)
	}
}
