// Command labctl administers the lab reservation service: database
// migrations, user accounts, exports and housekeeping.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/catalog"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/config"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/database"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/repository"
)

// operator is the principal labctl acts as.
var operator = booking.Principal{ID: "labctl", Name: "labctl", Role: model.RoleAdmin}

// env opens the resources commands need on first use.
type env struct {
	cfg *config.Config
	db  *sql.DB
}

func (e *env) config() config.Config {
	if e.cfg == nil {
		c := config.Load()
		e.cfg = &c
	}
	return *e.cfg
}

func (e *env) database() (*sql.DB, error) {
	if e.db != nil {
		return e.db, nil
	}
	c := e.config()
	db, err := database.Open(c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	e.db = db
	return db, nil
}

// engine builds a reservation engine over the MySQL store.
func (e *env) engine() (*booking.Engine, error) {
	db, err := e.database()
	if err != nil {
		return nil, err
	}
	b := e.config().Booking
	cat, err := catalog.Load(b.EquipmentFile)
	if err != nil {
		return nil, err
	}
	return booking.NewEngine(booking.Options{
		Store:    repository.NewReservationStore(db, b.Location),
		Catalog:  cat,
		Policy:   b.Policy,
		Location: b.Location,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}), nil
}

func (e *env) close() {
	if e.db != nil {
		_ = e.db.Close()
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "labctl",
		Short:         "Administer the lab equipment reservation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(e),
		newUserCmd(e),
		newSlotsCmd(func() config.BookingConfig { return config.LoadBookingConfig() }),
		newExportCmd(e),
		newClearCmd(e),
		newTokensCmd(e),
	)
	return root
}

func newMigrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := e.database()
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func main() {
	config.LoadDotEnv()
	e := &env{}
	defer e.close()
	if err := newRootCmd(e).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		e.close()
		os.Exit(1)
	}
}
