package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/config"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/export"
)

// newSlotsCmd prints the slot catalog usable on a date.  It needs no
// database.
func newSlotsCmd(load func() config.BookingConfig) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Print the PCR slots still bookable on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := load().Location
			now := time.Now().In(loc)
			day := now
			if date != "" {
				d, err := time.ParseInLocation(time.DateOnly, date, loc)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				day = d
			}
			for _, s := range booking.UsableSlots(day, now) {
				start, end := s.On(day)
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", s.Label,
					booking.FormatTimestamp(start), booking.FormatTimestamp(end))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to list (YYYY-MM-DD, default today)")
	return cmd
}

func newExportCmd(e *env) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every reservation as CSV or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			engine, err := e.engine()
			if err != nil {
				return err
			}
			all, err := engine.AllReservations(cmd.Context(), operator)
			if err != nil {
				return err
			}
			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			return export.Write(w, f, all)
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "Output file, - for stdout")
	return cmd
}

func newClearCmd(e *env) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every reservation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear reservations without --yes")
			}
			engine, err := e.engine()
			if err != nil {
				return err
			}
			if err := engine.ClearReservations(cmd.Context(), operator); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all reservations cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
