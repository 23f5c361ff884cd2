package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/database"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

var bangkok = time.FixedZone("ICT", 7*60*60)

func TestReservationRow_Conversion(t *testing.T) {
	r := model.Reservation{
		ID: "r1", UserID: "7", UserName: "Alice", Room: "Lab A", Equipment: "PCR-1",
		Start: time.Date(2026, 10, 15, 1, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 10, 15, 4, 0, 0, 0, time.UTC),
	}
	row := toRow(model.CollectionSlot, r, bangkok)
	if row.StartTime != "2026-10-15 08:00:00" || row.EndTime != "2026-10-15 11:00:00" {
		t.Fatalf("timestamps not rendered in service location: %+v", row)
	}
	if row.Collection != "slot" {
		t.Fatalf("collection = %q", row.Collection)
	}
	back, err := row.reservation(bangkok)
	if err != nil {
		t.Fatalf("convert back: %v", err)
	}
	if !back.Start.Equal(r.Start) || !back.End.Equal(r.End) || back.UserName != "Alice" {
		t.Fatalf("unexpected reservation %+v", back)
	}
}

func TestReservationRow_LegacyLayout(t *testing.T) {
	row := reservationRow{ID: "old", StartTime: "2024/03/01 09:00:00", EndTime: "2024/03/01 10:30:00"}
	r, err := row.reservation(bangkok)
	if err != nil {
		t.Fatalf("legacy row: %v", err)
	}
	if r.Start.Hour() != 9 || r.End.Minute() != 30 {
		t.Fatalf("unexpected times %v %v", r.Start, r.End)
	}
	row.EndTime = "yesterday"
	if _, err := row.reservation(bangkok); err == nil {
		t.Fatalf("expected error for malformed timestamp")
	}
}

// TestReservationStore_MySQL runs against a real server when
// TEST_MYSQL_HOST is set.
func TestReservationStore_MySQL(t *testing.T) {
	host := os.Getenv("TEST_MYSQL_HOST")
	if host == "" {
		t.Skip("TEST_MYSQL_HOST not set")
	}
	db, err := database.Open(os.Getenv("TEST_MYSQL_USER"), os.Getenv("TEST_MYSQL_PASS"), host,
		envOr("TEST_MYSQL_PORT", "3306"), envOr("TEST_MYSQL_DB", "lab_reservation_test"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s := NewReservationStore(db, bangkok)
	rs := []model.Reservation{{
		ID: "00000000-0000-0000-0000-000000000001", UserID: "1", UserName: "Alice",
		Room: "Lab A", Equipment: "Centrifuge",
		Start: time.Date(2026, 10, 15, 9, 0, 0, 0, bangkok),
		End:   time.Date(2026, 10, 15, 10, 0, 0, 0, bangkok),
	}}
	if err := s.Write(ctx, model.CollectionFreeForm, rs); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := s.Read(ctx, model.CollectionFreeForm)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].ID != rs[0].ID || !got[0].Start.Equal(rs[0].Start) {
		t.Fatalf("unexpected rows %+v", got)
	}
	if err := s.Write(ctx, model.CollectionFreeForm, nil); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got, _ := s.Read(ctx, model.CollectionFreeForm); len(got) != 0 {
		t.Fatalf("expected empty collection, got %d", len(got))
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
