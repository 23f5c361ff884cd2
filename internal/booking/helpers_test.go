package booking

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

var labZone = time.FixedZone("ICT", 7*60*60)

// at returns day D+day at hh:mm in the lab time zone.  D is 2026-10-15.
func at(day, hh, mm int) time.Time {
	return time.Date(2026, time.October, 15+day, hh, mm, 0, 0, labZone)
}

type stubCatalog struct {
	mu        sync.Mutex
	rooms     map[string][]model.Equipment
	toggleErr error
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{rooms: map[string][]model.Equipment{
		"Lab A": {
			{Name: "PCR-1", Room: "Lab A", SlotBased: true, Enabled: true},
			{Name: "Centrifuge", Room: "Lab A", Enabled: true},
			{Name: "Autoclave", Room: "Lab A", UsageCounted: true, HorizonDays: 1, Enabled: true},
			{Name: "Shaker", Room: "Lab A", Enabled: false},
		},
	}}
}

func (c *stubCatalog) Lookup(room, name string) (model.Equipment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.rooms[room] {
		if e.Name == name {
			return e, true
		}
	}
	return model.Equipment{}, false
}

func (c *stubCatalog) Room(room string) ([]model.Equipment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	eq, ok := c.rooms[room]
	return append([]model.Equipment(nil), eq...), ok
}

func (c *stubCatalog) Toggle(room, name string) (bool, error) {
	if c.toggleErr != nil {
		return false, c.toggleErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.rooms[room] {
		if e.Name == name {
			c.rooms[room][i].Enabled = !e.Enabled
			return !e.Enabled, nil
		}
	}
	return false, errors.New("missing")
}

type flakyStore struct {
	*MemoryStore
	mu       sync.Mutex
	readErr  error
	writeErr error
	reads    int
	// readDelay is slept after the snapshot is taken, like a slow
	// database round trip.
	readDelay time.Duration
}

func (s *flakyStore) Read(ctx context.Context, c model.Collection) ([]model.Reservation, error) {
	s.mu.Lock()
	s.reads++
	err, delay := s.readErr, s.readDelay
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	rs, err := s.MemoryStore.Read(ctx, c)
	time.Sleep(delay)
	return rs, err
}

func (s *flakyStore) Write(ctx context.Context, c model.Collection, rs []model.Reservation) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	return s.MemoryStore.Write(ctx, c, rs)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) types() []EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]EventType, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	engine    *Engine
	store     *flakyStore
	catalog   *stubCatalog
	publisher *recordingPublisher
	now       time.Time
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		store:     &flakyStore{MemoryStore: NewMemoryStore()},
		catalog:   newStubCatalog(),
		publisher: &recordingPublisher{},
		now:       now,
	}
	f.engine = NewEngine(Options{
		Store:          f.store,
		Catalog:        f.catalog,
		Publisher:      f.publisher,
		Location:       labZone,
		Now:            func() time.Time { return f.now },
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		ReadRetryDelay: time.Millisecond,
	})
	return f
}

var (
	alice = Principal{ID: "1", Name: "Alice", Role: model.RoleUser}
	bob   = Principal{ID: "2", Name: "Bob", Role: model.RoleUser}
	lect  = Principal{ID: "3", Name: "Dr. Lee", Role: model.RoleLecturer}
	admin = Principal{ID: "9", Name: "Admin", Role: model.RoleAdmin}
)

func (f *fixture) book(who Principal, equipment string, start, end time.Time) (Confirmation, error) {
	return f.engine.CreateReservation(context.Background(), Request{
		Actor: who, Room: "Lab A", Equipment: equipment, Start: start, End: end,
	})
}
