package repository

import (
    "context"
    "encoding/json"
    "sync"

    "github.com/redis/go-redis/v9"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/model"
)

// AnnouncementBoard stores the current announcement in Redis so that every
// server instance shows the same banner.  Without a Redis client it keeps
// the announcement in process memory.
type AnnouncementBoard struct {
    rdb *redis.Client
    key string

    mu  sync.RWMutex
    mem model.Announcement
}

// NewAnnouncementBoard returns a board backed by rdb, which may be nil.
func NewAnnouncementBoard(rdb *redis.Client, key string) *AnnouncementBoard {
    if key == "" {
        key = "announcement"
    }
    return &AnnouncementBoard{rdb: rdb, key: key}
}

// Get returns the current announcement, or the zero value when none is set.
func (b *AnnouncementBoard) Get(ctx context.Context) (model.Announcement, error) {
    if b.rdb == nil {
        b.mu.RLock()
        defer b.mu.RUnlock()
        return b.mem, nil
    }
    raw, err := b.rdb.Get(ctx, b.key).Bytes()
    if err == redis.Nil {
        return model.Announcement{}, nil
    }
    if err != nil {
        return model.Announcement{}, err
    }
    var a model.Announcement
    if err := json.Unmarshal(raw, &a); err != nil {
        return model.Announcement{}, err
    }
    return a, nil
}

// Set replaces the announcement.  An empty text clears it.
func (b *AnnouncementBoard) Set(ctx context.Context, a model.Announcement) error {
    if b.rdb == nil {
        b.mu.Lock()
        b.mem = a
        b.mu.Unlock()
        return nil
    }
    if a.Text == "" {
        return b.rdb.Del(ctx, b.key).Err()
    }
    raw, err := json.Marshal(a)
    if err != nil {
        return err
    }
    return b.rdb.Set(ctx, b.key, raw, 0).Err()
}
