package booking

import (
	"context"
	"sync"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// Locker serialises the read-check-write sequence for one key.  The
// returned release function must be called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

// CollectionKey builds the lock key for a store collection.  Store.Write
// replaces a whole collection, so every read-modify-write of that
// collection must hold this key, whichever equipment it concerns.
func CollectionKey(c model.Collection) string {
	return "booking:" + string(c)
}

// MutexLocker is an in-process keyed mutex.  Entries are reference
// counted and dropped once no caller holds or waits on them.
type MutexLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewMutexLocker returns an empty keyed mutex.
func NewMutexLocker() *MutexLocker {
	return &MutexLocker{locks: make(map[string]*keyLock)}
}

// Lock blocks until key is free.  The context is only checked before
// waiting.
func (l *MutexLocker) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	kl.mu.Lock()
	var once sync.Once
	return func() {
		once.Do(func() {
			kl.mu.Unlock()
			l.mu.Lock()
			kl.refs--
			if kl.refs == 0 {
				delete(l.locks, key)
			}
			l.mu.Unlock()
		})
	}, nil
}

// NoLocker performs no locking.  Concurrent writers race and the last
// Write wins.
type NoLocker struct{}

// Lock implements Locker.
func (NoLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }
