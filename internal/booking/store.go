package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// TimestampLayout is the canonical serialised form of reservation
// timestamps.  LegacyTimestampLayout is accepted on input only.
const (
	TimestampLayout       = "2006-01-02 15:04:05"
	LegacyTimestampLayout = "2006/01/02 15:04:05"
)

// FormatTimestamp renders t in the canonical layout.
func FormatTimestamp(t time.Time) string { return t.Format(TimestampLayout) }

// ParseTimestamp reads a timestamp in either the canonical or the legacy
// slash-separated layout, interpreting it in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range []string{TimestampLayout, LegacyTimestampLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// Store is the persistence collaborator.  Write replaces the whole
// collection; callers needing atomic check-and-insert must hold the
// resource lock across Read and Write.
type Store interface {
	Read(ctx context.Context, c model.Collection) ([]model.Reservation, error)
	Write(ctx context.Context, c model.Collection, rs []model.Reservation) error
}

// MemoryStore keeps both collections in process memory.  It is owned by
// the hosting application and passed into the Engine explicitly.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[model.Collection][]model.Reservation
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[model.Collection][]model.Reservation)}
}

// Read returns a copy of collection c.
func (s *MemoryStore) Read(_ context.Context, c model.Collection) ([]model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Reservation(nil), s.data[c]...), nil
}

// Write replaces collection c with a copy of rs.
func (s *MemoryStore) Write(_ context.Context, c model.Collection, rs []model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[c] = append([]model.Reservation(nil), rs...)
	return nil
}
