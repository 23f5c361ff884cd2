package repository

import (
    "context"
    "fmt"
    "strconv"

    "github.com/redis/go-redis/v9"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
)

// usageScript increments the counter and resets it once the threshold is
// reached, atomically on the Redis side.
var usageScript = redis.NewScript(`
    local n = redis.call('INCR', KEYS[1])
    local threshold = tonumber(ARGV[1])
    if n >= threshold then
        redis.call('SET', KEYS[1], 0)
        return {0, 1}
    end
    return {n, 0}
`)

// UsageCounter is a booking.Counter shared by every server instance.
type UsageCounter struct {
    rdb       *redis.Client
    prefix    string
    threshold int
}

// NewUsageCounter returns a Redis backed counter.  A non-positive
// threshold selects booking.MaintenanceThreshold.
func NewUsageCounter(rdb *redis.Client, prefix string, threshold int) *UsageCounter {
    if threshold <= 0 {
        threshold = booking.MaintenanceThreshold
    }
    if prefix == "" {
        prefix = "usage"
    }
    return &UsageCounter{rdb: rdb, prefix: prefix, threshold: threshold}
}

func (u *UsageCounter) key(equipment string) string { return u.prefix + ":" + equipment }

// RecordUse implements booking.Counter.
func (u *UsageCounter) RecordUse(ctx context.Context, equipment string) (int, bool, error) {
    vals, err := usageScript.Run(ctx, u.rdb, []string{u.key(equipment)}, u.threshold).Slice()
    if err != nil {
        return 0, false, err
    }
    if len(vals) != 2 {
        return 0, false, fmt.Errorf("usage counter: unexpected script result %#v", vals)
    }
    return int(asInt64(vals[0])), asInt64(vals[1]) == 1, nil
}

// Count returns the stored count for equipment.
func (u *UsageCounter) Count(ctx context.Context, equipment string) (int, error) {
    n, err := u.rdb.Get(ctx, u.key(equipment)).Int()
    if err == redis.Nil {
        return 0, nil
    }
    return n, err
}

func asInt64(v interface{}) int64 {
    switch t := v.(type) {
    case int64:
        return t
    case int:
        return int64(t)
    case string:
        if n, err := strconv.ParseInt(t, 10, 64); err == nil {
            return n
        }
    }
    return 0
}
