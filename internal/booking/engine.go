// Package booking implements the reservation rules for shared lab
// equipment: slot catalog generation, conflict detection, booking horizons,
// cancellation windows and maintenance usage counting.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/logging"
	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// Principal is the authenticated caller as supplied by the identity
// provider.
type Principal struct {
	ID   string
	Name string
	Role model.Role
}

// IsAdmin reports whether the principal may manage equipment and other
// users' reservations.
func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

// Catalog is the equipment configuration the Engine consults.
type Catalog interface {
	Lookup(room, name string) (model.Equipment, bool)
	Room(room string) ([]model.Equipment, bool)
	Toggle(room, name string) (bool, error)
}

// Options wires an Engine.  Store and Catalog are required; the remaining
// fields fall back to in-process defaults.
type Options struct {
	Store          Store
	Catalog        Catalog
	Counter        Counter
	Locker         Locker
	Publisher      Publisher
	Policy         Policy
	Location       *time.Location
	Now            func() time.Time
	Logger         *slog.Logger
	ReadAttempts   int
	ReadRetryDelay time.Duration
}

// Engine orchestrates creation, cancellation and listing of reservations.
type Engine struct {
	store      Store
	catalog    Catalog
	counter    Counter
	locker     Locker
	publisher  Publisher
	policy     Policy
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
	attempts   int
	retryDelay time.Duration
}

// NewEngine constructs an Engine and panics if Store or Catalog is nil.
func NewEngine(opts Options) *Engine {
	if opts.Store == nil || opts.Catalog == nil {
		panic("nil store or catalog passed to NewEngine")
	}
	e := &Engine{
		store:      opts.Store,
		catalog:    opts.Catalog,
		counter:    opts.Counter,
		locker:     opts.Locker,
		publisher:  opts.Publisher,
		policy:     opts.Policy,
		loc:        opts.Location,
		now:        opts.Now,
		logger:     opts.Logger,
		attempts:   opts.ReadAttempts,
		retryDelay: opts.ReadRetryDelay,
	}
	if e.counter == nil {
		e.counter = NewMemoryCounter(MaintenanceThreshold)
	}
	if e.locker == nil {
		e.locker = NewMutexLocker()
	}
	if e.publisher == nil {
		e.publisher = noopPublisher{}
	}
	if e.policy == (Policy{}) {
		e.policy = DefaultPolicy()
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.attempts <= 0 {
		e.attempts = 3
	}
	if e.retryDelay <= 0 {
		e.retryDelay = 50 * time.Millisecond
	}
	return e
}

// Now returns the current instant in the engine location.
func (e *Engine) Now() time.Time { return e.now().In(e.loc) }

func (e *Engine) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	pairs := append([]any{"service", "booking", "operation", operation}, attrs...)
	return logging.FromContext(ctx, e.logger).With(pairs...)
}

// Request is a candidate reservation.  Owner defaults to Actor; booking on
// behalf of someone else requires an admin actor.
type Request struct {
	Actor     Principal
	Owner     Principal
	Room      string
	Equipment string
	Start     time.Time
	End       time.Time
}

// Confirmation describes a stored reservation.  UseCount and
// MaintenanceDue are only meaningful when UsageCounted is set.
type Confirmation struct {
	Reservation    model.Reservation
	UsageCounted   bool
	UseCount       int
	MaintenanceDue bool
}

// CreateReservation validates req and stores it when no rule rejects it.
func (e *Engine) CreateReservation(ctx context.Context, req Request) (Confirmation, error) {
	owner := req.Owner
	if owner.ID == "" {
		owner = req.Actor
	}
	logger := e.log(ctx, "create_reservation",
		"room", req.Room, "equipment", req.Equipment, "user_id", owner.ID)

	if owner.ID != req.Actor.ID && !req.Actor.IsAdmin() {
		return Confirmation{}, ErrNotAuthorized
	}
	eq, ok := e.catalog.Lookup(req.Room, req.Equipment)
	if !ok {
		return Confirmation{}, ErrEquipmentNotFound
	}
	if !eq.Enabled {
		return Confirmation{}, ErrEquipmentDisabled
	}

	start, end := req.Start.In(e.loc), req.End.In(e.loc)
	if err := e.validateWindow(eq, req.Actor.Role, start, end); err != nil {
		logger.Info("reservation rejected", "reason", ErrorKind(err))
		return Confirmation{}, err
	}

	candidate := model.Reservation{
		ID:        uuid.NewString(),
		UserID:    owner.ID,
		UserName:  owner.Name,
		Room:      eq.Room,
		Equipment: eq.Name,
		Start:     start,
		End:       end,
	}

	if err := e.insert(ctx, eq, candidate); err != nil {
		logger.Info("reservation rejected", "reason", ErrorKind(err), "error", err)
		return Confirmation{}, err
	}
	logger.Info("reservation confirmed", "reservation_id", candidate.ID,
		"start", FormatTimestamp(start), "end", FormatTimestamp(end))

	conf := Confirmation{Reservation: candidate, UsageCounted: eq.UsageCounted}
	if eq.UsageCounted {
		count, due, err := e.counter.RecordUse(ctx, eq.Name)
		if err != nil {
			logger.Warn("usage counter failed", "error", err)
		} else {
			conf.UseCount, conf.MaintenanceDue = count, due
		}
	}

	e.publish(ctx, logger, Event{Type: EventReservationConfirmed, Reservation: candidate,
		ActorID: req.Actor.ID, ActorName: req.Actor.Name, UseCount: conf.UseCount})
	if conf.MaintenanceDue {
		logger.Warn("maintenance due", "threshold", MaintenanceThreshold)
		e.publish(ctx, logger, Event{Type: EventMaintenanceDue, Reservation: candidate,
			ActorID: req.Actor.ID, ActorName: req.Actor.Name})
	}
	return conf, nil
}

// validateWindow applies the interval, past-time and horizon rules.
func (e *Engine) validateWindow(eq model.Equipment, role model.Role, start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidInterval
	}
	now := e.Now()
	if eq.SlotBased {
		if _, ok := SlotFor(start, end); !ok {
			return fmt.Errorf("%w: interval is not a catalog slot", ErrInvalidInterval)
		}
		if !end.After(now) {
			return ErrPastStartTime
		}
	} else {
		if start.Before(now.Truncate(time.Minute)) {
			return ErrPastStartTime
		}
		// free-form bookings live within the day they start on
		if _, dayEnd := OperationalWindow(eq, start.In(e.loc)); end.After(dayEnd) {
			return fmt.Errorf("%w: reservation must end by %s on its start day", ErrInvalidInterval, dayEnd.Format("15:04"))
		}
	}
	if daysBetween(now, start) > e.policy.HorizonDays(eq, role) {
		return ErrBookingHorizonExceeded
	}
	return nil
}

// insert performs the locked check-and-append for candidate.
func (e *Engine) insert(ctx context.Context, eq model.Equipment, candidate model.Reservation) error {
	coll := eq.Collection()
	release, err := e.locker.Lock(ctx, CollectionKey(coll))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer release()

	existing, err := e.read(ctx, coll)
	if err != nil {
		return err
	}
	if err := Check(eq, candidate, existing); err != nil {
		return err
	}
	if err := e.store.Write(ctx, coll, append(existing, candidate)); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// read loads a collection, retrying a bounded number of times.
func (e *Engine) read(ctx context.Context, c model.Collection) ([]model.Reservation, error) {
	var lastErr error
	for attempt := 1; attempt <= e.attempts; attempt++ {
		rs, err := e.store.Read(ctx, c)
		if err == nil {
			return rs, nil
		}
		lastErr = err
		if attempt == e.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, ctx.Err())
		case <-time.After(time.Duration(attempt) * e.retryDelay):
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, lastErr)
}

// readDegraded is read for listings: failures are logged and an empty
// collection is returned.
func (e *Engine) readDegraded(ctx context.Context, logger *slog.Logger, c model.Collection) []model.Reservation {
	rs, err := e.read(ctx, c)
	if err != nil {
		logger.Warn("store read failed, serving empty collection", "collection", c, "error", err)
		return nil
	}
	return rs
}

func (e *Engine) publish(ctx context.Context, logger *slog.Logger, ev Event) {
	ev.OccurredAt = e.Now()
	if err := e.publisher.Publish(ctx, ev); err != nil {
		logger.Warn("publish event failed", "event", ev.Type, "error", err)
	}
}

// CancelReservation removes reservation id.  Only its owner or an admin
// may cancel, and only before it starts.
func (e *Engine) CancelReservation(ctx context.Context, actor Principal, id string) (model.Reservation, error) {
	logger := e.log(ctx, "cancel_reservation", "reservation_id", id, "user_id", actor.ID)

	res, coll, err := e.find(ctx, id)
	if err != nil {
		return model.Reservation{}, err
	}
	if res.UserID != actor.ID && !actor.IsAdmin() {
		logger.Info("cancellation rejected", "reason", "not_authorized")
		return model.Reservation{}, ErrNotAuthorized
	}
	if !res.Start.After(e.Now()) {
		return model.Reservation{}, ErrPastStartTime
	}

	release, err := e.locker.Lock(ctx, CollectionKey(coll))
	if err != nil {
		return model.Reservation{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer release()

	current, err := e.read(ctx, coll)
	if err != nil {
		return model.Reservation{}, err
	}
	kept := current[:0:0]
	removed := false
	for _, r := range current {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return model.Reservation{}, ErrReservationNotFound
	}
	if err := e.store.Write(ctx, coll, kept); err != nil {
		return model.Reservation{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	logger.Info("reservation cancelled", "room", res.Room, "equipment", res.Equipment)
	e.publish(ctx, logger, Event{Type: EventReservationCancelled, Reservation: res,
		ActorID: actor.ID, ActorName: actor.Name})
	return res, nil
}

func (e *Engine) find(ctx context.Context, id string) (model.Reservation, model.Collection, error) {
	for _, c := range model.Collections() {
		rs, err := e.read(ctx, c)
		if err != nil {
			return model.Reservation{}, "", err
		}
		for _, r := range rs {
			if r.ID == id {
				return r, c, nil
			}
		}
	}
	return model.Reservation{}, "", ErrReservationNotFound
}

// UserReservations lists the caller's reservations that can still be
// cancelled: those starting today or tomorrow and not yet started.
func (e *Engine) UserReservations(ctx context.Context, actor Principal) []model.Reservation {
	logger := e.log(ctx, "user_reservations", "user_id", actor.ID)
	now := e.Now()
	var out []model.Reservation
	for _, c := range model.Collections() {
		for _, r := range e.readDegraded(ctx, logger, c) {
			if r.UserID != actor.ID || !r.Start.After(now) {
				continue
			}
			if d := daysBetween(now, r.Start); d == 0 || d == 1 {
				out = append(out, r)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// AllReservations returns both collections for administrators.
func (e *Engine) AllReservations(ctx context.Context, actor Principal) (map[model.Collection][]model.Reservation, error) {
	if !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}
	out := make(map[model.Collection][]model.Reservation, 2)
	for _, c := range model.Collections() {
		rs, err := e.read(ctx, c)
		if err != nil {
			return nil, err
		}
		out[c] = rs
	}
	return out, nil
}

// ClearReservations empties both collections.
func (e *Engine) ClearReservations(ctx context.Context, actor Principal) error {
	if !actor.IsAdmin() {
		return ErrNotAuthorized
	}
	for _, c := range model.Collections() {
		release, err := e.locker.Lock(ctx, CollectionKey(c))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
		err = e.store.Write(ctx, c, nil)
		release()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}
	e.log(ctx, "clear_reservations", "user_id", actor.ID).Warn("all reservations cleared")
	return nil
}

// ToggleEquipment flips the enabled flag of one equipment item and returns
// the new state.
func (e *Engine) ToggleEquipment(ctx context.Context, actor Principal, room, name string) (bool, error) {
	if !actor.IsAdmin() {
		return false, ErrNotAuthorized
	}
	if _, ok := e.catalog.Lookup(room, name); !ok {
		return false, ErrEquipmentNotFound
	}
	enabled, err := e.catalog.Toggle(room, name)
	if err != nil {
		return false, err
	}
	e.log(ctx, "toggle_equipment", "room", room, "equipment", name, "user_id", actor.ID).
		Info("equipment toggled", "enabled", enabled)
	return enabled, nil
}

// UsableSlots returns the slot catalog usable on date.
func (e *Engine) UsableSlots(date time.Time) []model.TimeSlot {
	return UsableSlots(date.In(e.loc), e.Now())
}
