package booking

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

func TestMutexLocker_SerialisesSameKey(t *testing.T) {
	l := NewMutexLocker()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Lock(ctx, CollectionKey(model.CollectionSlot))
			if err != nil {
				t.Error(err)
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			release()
		}()
	}
	wg.Wait()
	if maxInside != 1 {
		t.Fatalf("critical section entered by %d goroutines at once", maxInside)
	}
	if len(l.locks) != 0 {
		t.Fatalf("lock entries leaked: %d", len(l.locks))
	}
}

func TestMutexLocker_IndependentKeys(t *testing.T) {
	l := NewMutexLocker()
	ctx := context.Background()

	releaseA, _ := l.Lock(ctx, CollectionKey(model.CollectionSlot))
	defer releaseA()

	done := make(chan struct{})
	go func() {
		release, _ := l.Lock(ctx, CollectionKey(model.CollectionFreeForm))
		release()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("lock on another key blocked")
	}
}

func TestMutexLocker_ReleaseIsIdempotent(t *testing.T) {
	l := NewMutexLocker()
	release, _ := l.Lock(context.Background(), "k")
	release()
	release()
	again, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatalf("relock: %v", err)
	}
	again()
}

func TestMutexLocker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMutexLocker().Lock(ctx, "k"); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestNoLocker_DoesNotBlock(t *testing.T) {
	var l Locker = NoLocker{}
	r1, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}
	r2, err := l.Lock(context.Background(), "k")
	if err != nil {
		t.Fatal(err)
	}
	r2()
	r1()
}
