package booking

import (
	"context"
	"sync"
)

// MaintenanceThreshold is the number of uses after which counted equipment
// needs maintenance (draining an autoclave, for instance).
const MaintenanceThreshold = 5

// Counter records uses of maintenance-cycle equipment.  RecordUse returns
// the count after this use; when the threshold is reached it resets to
// zero and reports maintenanceDue.
type Counter interface {
	RecordUse(ctx context.Context, equipment string) (count int, maintenanceDue bool, err error)
}

// MemoryCounter is a process-local Counter.
type MemoryCounter struct {
	mu        sync.Mutex
	threshold int
	counts    map[string]int
}

// NewMemoryCounter returns a counter that resets every threshold uses.  A
// non-positive threshold selects MaintenanceThreshold.
func NewMemoryCounter(threshold int) *MemoryCounter {
	if threshold <= 0 {
		threshold = MaintenanceThreshold
	}
	return &MemoryCounter{threshold: threshold, counts: make(map[string]int)}
}

// RecordUse implements Counter.
func (c *MemoryCounter) RecordUse(_ context.Context, equipment string) (int, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.counts[equipment] + 1
	if n >= c.threshold {
		c.counts[equipment] = 0
		return 0, true, nil
	}
	c.counts[equipment] = n
	return n, false, nil
}

// Count returns the current count for equipment.
func (c *MemoryCounter) Count(equipment string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[equipment]
}
