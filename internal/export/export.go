// Package export renders reservation collections as downloadable CSV or
// XLSX files for administrators.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// Header is the first row of every export.
var Header = []string{"Collection", "ID", "User ID", "User", "Room", "Equipment", "Start", "End"}

// sheetNames maps collections to XLSX sheet titles.
var sheetNames = map[model.Collection]string{
	model.CollectionSlot:     "Slot bookings",
	model.CollectionFreeForm: "General bookings",
}

// Format is a supported export format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" (the default for an empty string) or "xlsx".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write renders all in format f.
func Write(w io.Writer, f Format, all map[model.Collection][]model.Reservation) error {
	if f == FormatXLSX {
		return WriteXLSX(w, all)
	}
	return WriteCSV(w, all)
}

func record(c model.Collection, r model.Reservation) []string {
	return []string{
		string(c), r.ID, r.UserID, r.UserName, r.Room, r.Equipment,
		booking.FormatTimestamp(r.Start), booking.FormatTimestamp(r.End),
	}
}

func sorted(rs []model.Reservation) []model.Reservation {
	out := append([]model.Reservation(nil), rs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// WriteCSV writes a single CSV table with slot bookings first.
func WriteCSV(w io.Writer, all map[model.Collection][]model.Reservation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, c := range model.Collections() {
		for _, r := range sorted(all[c]) {
			if err := cw.Write(record(c, r)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes one worksheet per collection.
func WriteXLSX(w io.Writer, all map[model.Collection][]model.Reservation) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, c := range model.Collections() {
		sheet := sheetNames[c]
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := setRow(f, sheet, 1, Header); err != nil {
			return err
		}
		for n, r := range sorted(all[c]) {
			if err := setRow(f, sheet, n+2, record(c, r)); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(sheet, "A", "H", 20); err != nil {
			return err
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]interface{}, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return f.SetSheetRow(sheet, cell, &vals)
}
