package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

var ict = time.FixedZone("ICT", 7*60*60)

func sample() map[model.Collection][]model.Reservation {
	day := func(h int) time.Time { return time.Date(2026, 10, 15, h, 0, 0, 0, ict) }
	return map[model.Collection][]model.Reservation{
		model.CollectionSlot: {
			{ID: "s2", UserID: "2", UserName: "Bob", Room: "Lab A", Equipment: "PCR-1", Start: day(14), End: day(17)},
			{ID: "s1", UserID: "1", UserName: "Alice", Room: "Lab A", Equipment: "PCR-1", Start: day(8), End: day(11)},
		},
		model.CollectionFreeForm: {
			{ID: "f1", UserID: "1", UserName: "Alice", Room: "Lab A", Equipment: "Centrifuge", Start: day(9), End: day(10)},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "Collection" || rows[1][1] != "s1" || rows[2][1] != "s2" || rows[3][0] != "free_form" {
		t.Fatalf("unexpected rows %v", rows)
	}
	if rows[1][6] != "2026-10-15 08:00:00" {
		t.Fatalf("start = %q", rows[1][6])
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "Collection,ID,User ID,User,Room,Equipment,Start,End\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	slot, err := f.GetRows("Slot bookings")
	if err != nil {
		t.Fatal(err)
	}
	if len(slot) != 3 || slot[1][3] != "Alice" || slot[2][3] != "Bob" {
		t.Fatalf("unexpected slot sheet %v", slot)
	}
	general, err := f.GetRows("General bookings")
	if err != nil {
		t.Fatal(err)
	}
	if len(general) != 2 || general[1][5] != "Centrifuge" {
		t.Fatalf("unexpected general sheet %v", general)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatCSV, "csv": FormatCSV, "xlsx": FormatXLSX} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Fatalf("expected error")
	}
	if FormatXLSX.ContentType() == FormatCSV.ContentType() {
		t.Fatalf("content types must differ")
	}
}
