package config

import (
    "time"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
)

// BookingConfig controls the reservation engine.
type BookingConfig struct {
    Location        *time.Location
    EquipmentFile   string
    Policy          booking.Policy
    UsageThreshold  int
    UsagePrefix     string
    DistributedLock bool
    LockTTL         time.Duration
    LockWait        time.Duration
    ReadAttempts    int
    ReadRetryDelay  time.Duration
    AnnouncementKey string
}

// LoadBookingConfig reads BOOKING_* variables.  The lab runs on Bangkok
// time unless LAB_TIMEZONE says otherwise.
func LoadBookingConfig() BookingConfig {
    def := booking.DefaultPolicy()
    cfg := BookingConfig{
        Location:      mustLocation("LAB_TIMEZONE", "Asia/Bangkok"),
        EquipmentFile: envStr("EQUIPMENT_FILE", "configs/equipment.json"),
        Policy: booking.Policy{
            SlotHorizonDays:       envInt("BOOKING_SLOT_HORIZON_DAYS", def.SlotHorizonDays),
            GeneralHorizonDays:    envInt("BOOKING_HORIZON_DAYS", def.GeneralHorizonDays),
            PrivilegedHorizonDays: envInt("BOOKING_PRIVILEGED_HORIZON_DAYS", def.PrivilegedHorizonDays),
        },
        UsageThreshold:  envInt("USAGE_THRESHOLD", booking.MaintenanceThreshold),
        UsagePrefix:     envStr("USAGE_PREFIX", "usage"),
        DistributedLock: envBool("BOOKING_DISTRIBUTED_LOCK", true),
        LockTTL:         envDur("BOOKING_LOCK_TTL", 10*time.Second),
        LockWait:        envDur("BOOKING_LOCK_WAIT", 5*time.Second),
        ReadAttempts:    envInt("STORE_READ_ATTEMPTS", 3),
        ReadRetryDelay:  envDur("STORE_READ_RETRY_DELAY", 50*time.Millisecond),
        AnnouncementKey: envStr("ANNOUNCEMENT_KEY", "announcement"),
    }
    if cfg.Policy.SlotHorizonDays < 0 { cfg.Policy.SlotHorizonDays = def.SlotHorizonDays }
    if cfg.Policy.GeneralHorizonDays < 0 { cfg.Policy.GeneralHorizonDays = def.GeneralHorizonDays }
    if cfg.Policy.PrivilegedHorizonDays < cfg.Policy.GeneralHorizonDays {
        cfg.Policy.PrivilegedHorizonDays = cfg.Policy.GeneralHorizonDays
    }
    if cfg.UsageThreshold < 1 { cfg.UsageThreshold = booking.MaintenanceThreshold }
    if cfg.ReadAttempts < 1 { cfg.ReadAttempts = 1 }
    return cfg
}
