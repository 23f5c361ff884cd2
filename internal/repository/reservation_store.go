package repository

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "github.com/jmoiron/sqlx"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// ReservationStore keeps both reservation collections in the MySQL
// `reservations` table, discriminated by the `collection` column.
// Timestamps are stored as text in the canonical booking layout, in the
// service location, so rows imported from older sheets in the slash
// layout remain readable.
type ReservationStore struct {
    db  *sqlx.DB
    loc *time.Location
}

// NewReservationStore wraps an open MySQL handle.
func NewReservationStore(db *sql.DB, loc *time.Location) *ReservationStore {
    if loc == nil {
        loc = time.UTC
    }
    return &ReservationStore{db: sqlx.NewDb(db, "mysql"), loc: loc}
}

// reservationRow mirrors one row of the reservations table.
type reservationRow struct {
    ID         string `db:"id"`
    Collection string `db:"collection"`
    UserID     string `db:"user_id"`
    UserName   string `db:"user_name"`
    Room       string `db:"room"`
    Equipment  string `db:"equipment"`
    StartTime  string `db:"start_time"`
    EndTime    string `db:"end_time"`
}

func toRow(c model.Collection, r model.Reservation, loc *time.Location) reservationRow {
    return reservationRow{
        ID:         r.ID,
        Collection: string(c),
        UserID:     r.UserID,
        UserName:   r.UserName,
        Room:       r.Room,
        Equipment:  r.Equipment,
        StartTime:  booking.FormatTimestamp(r.Start.In(loc)),
        EndTime:    booking.FormatTimestamp(r.End.In(loc)),
    }
}

func (row reservationRow) reservation(loc *time.Location) (model.Reservation, error) {
    start, err := booking.ParseTimestamp(row.StartTime, loc)
    if err != nil {
        return model.Reservation{}, fmt.Errorf("reservation %s: %w", row.ID, err)
    }
    end, err := booking.ParseTimestamp(row.EndTime, loc)
    if err != nil {
        return model.Reservation{}, fmt.Errorf("reservation %s: %w", row.ID, err)
    }
    return model.Reservation{
        ID:        row.ID,
        UserID:    row.UserID,
        UserName:  row.UserName,
        Room:      row.Room,
        Equipment: row.Equipment,
        Start:     start,
        End:       end,
    }, nil
}

// Read returns every reservation of collection c ordered by start time.
func (s *ReservationStore) Read(ctx context.Context, c model.Collection) ([]model.Reservation, error) {
    const q = `SELECT id, collection, user_id, user_name, room, equipment, start_time, end_time
               FROM reservations WHERE collection = ? ORDER BY start_time, id`
    var rows []reservationRow
    if err := s.db.SelectContext(ctx, &rows, q, string(c)); err != nil {
        return nil, err
    }
    out := make([]model.Reservation, 0, len(rows))
    for _, row := range rows {
        r, err := row.reservation(s.loc)
        if err != nil {
            return nil, err
        }
        out = append(out, r)
    }
    return out, nil
}

// Write replaces collection c with rs inside one transaction.
func (s *ReservationStore) Write(ctx context.Context, c model.Collection, rs []model.Reservation) error {
    tx, err := s.db.BeginTxx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if _, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE collection = ?`, string(c)); err != nil {
        return err
    }
    if len(rs) > 0 {
        rows := make([]reservationRow, 0, len(rs))
        for _, r := range rs {
            rows = append(rows, toRow(c, r, s.loc))
        }
        const ins = `INSERT INTO reservations (id, collection, user_id, user_name, room, equipment, start_time, end_time)
                     VALUES (:id, :collection, :user_id, :user_name, :room, :equipment, :start_time, :end_time)`
        if _, err := tx.NamedExecContext(ctx, ins, rows); err != nil {
            return err
        }
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}
