package repository

import (
    "context"
    "errors"
    "log/slog"
    "sync"
    "time"

    "github.com/google/uuid"
    "github.com/redis/go-redis/v9"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/logging"
)

// ErrLockTimeout is returned when a resource lock could not be taken
// within the configured wait.
var ErrLockTimeout = errors.New("lock wait timed out")

// releaseScript deletes the key only if it still carries our token.
var releaseScript = redis.NewScript(`
    if redis.call('GET', KEYS[1]) == ARGV[1] then
        return redis.call('DEL', KEYS[1])
    end
    return 0
`)

// extendScript resets the expiry only if the key still carries our token.
var extendScript = redis.NewScript(`
    if redis.call('GET', KEYS[1]) == ARGV[1] then
        return redis.call('PEXPIRE', KEYS[1], ARGV[2])
    end
    return 0
`)

// RedisLocker is a booking.Locker for deployments where several server
// instances share one reservation store.  Each lock is a key holding a
// random token with an expiry, so a crashed holder cannot block a
// resource for longer than TTL.
//
// A live holder renews its lock every TTL/3 until release.  Store writes
// carry no fencing token, so the lock is only exclusive while the holder
// can reach Redis at least once per TTL.  If renewal fails for a whole
// TTL a second holder may enter; the lost lock is logged.
type RedisLocker struct {
    rdb  *redis.Client
    ttl  time.Duration
    wait time.Duration
    poll time.Duration
}

// NewRedisLocker returns a locker whose locks expire after ttl and whose
// callers give up after wait.
func NewRedisLocker(rdb *redis.Client, ttl, wait time.Duration) *RedisLocker {
    if ttl <= 0 {
        ttl = 10 * time.Second
    }
    if wait <= 0 {
        wait = 5 * time.Second
    }
    return &RedisLocker{rdb: rdb, ttl: ttl, wait: wait, poll: 25 * time.Millisecond}
}

// Lock implements booking.Locker.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
    token := uuid.NewString()
    deadline := time.Now().Add(l.wait)
    backoff := l.poll
    for {
        ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
        if err != nil {
            return nil, err
        }
        if ok {
            break
        }
        if time.Now().After(deadline) {
            return nil, ErrLockTimeout
        }
        select {
        case <-ctx.Done():
            return nil, ctx.Err()
        case <-time.After(backoff):
        }
        if backoff < 200*time.Millisecond {
            backoff *= 2
        }
    }

    logger := logging.FromContext(ctx, slog.Default()).With("key", key)
    stop, stopped := make(chan struct{}), make(chan struct{})
    go l.renew(key, token, logger, stop, stopped)

    var once sync.Once
    return func() {
        once.Do(func() {
            close(stop)
            <-stopped
            // the request context may already be cancelled
            rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
            defer cancel()
            if err := releaseScript.Run(rctx, l.rdb, []string{key}, token).Err(); err != nil {
                logger.Warn("release lock failed", "error", err)
            }
        })
    }, nil
}

// renew extends the lock until stop is closed or the token is gone.
func (l *RedisLocker) renew(key, token string, logger *slog.Logger, stop <-chan struct{}, stopped chan<- struct{}) {
    defer close(stopped)
    ticker := time.NewTicker(l.ttl / 3)
    defer ticker.Stop()
    for {
        select {
        case <-stop:
            return
        case <-ticker.C:
        }
        ctx, cancel := context.WithTimeout(context.Background(), l.ttl/3)
        n, err := extendScript.Run(ctx, l.rdb, []string{key}, token, l.ttl.Milliseconds()).Int()
        cancel()
        switch {
        case err != nil:
            logger.Warn("renew lock failed", "error", err)
        case n == 0:
            logger.Error("lock lost before release", "ttl", l.ttl)
            return
        }
    }
}
