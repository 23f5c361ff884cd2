package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log/slog"
    "os"
    "path/filepath"
    "sync"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
)

// Consumer appends every reservation event to an audit log file, one line
// per event.  Run keeps reconnecting to the broker until ctx is done.
type Consumer struct {
    URL     string
    LogPath string
    Logger  *slog.Logger

    mu sync.Mutex
}

// NewConsumer returns a consumer writing to logPath.
func NewConsumer(url, logPath string, logger *slog.Logger) *Consumer {
    if logger == nil {
        logger = slog.Default()
    }
    if logPath == "" {
        logPath = filepath.Join("logs", "reservations.log")
    }
    return &Consumer{URL: url, LogPath: logPath, Logger: logger.With("service", "audit-consumer")}
}

// Run connects to the broker and consumes QueueName until ctx is
// cancelled.  Connection failures are retried with exponential backoff.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            c.Logger.Warn("failed to dial broker", "error", err, "retry_in", backoff)
            if !sleepCtx(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.Logger.Warn("consume loop ended, reconnecting", "error", err)
        if !sleepCtx(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.Logger.Warn("set QoS failed", "error", err)
    }
    if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }
    msgs, err := ch.Consume(QueueName, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.Handle(d.Body); err != nil {
                c.Logger.Error("handle message failed", "error", err)
                _ = d.Nack(false, false) // do not requeue poison messages
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// Handle decodes one message and appends it to the audit log.
func (c *Consumer) Handle(body []byte) error {
    var ev ReservationEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if ev.Type == "" || ev.ReservationID == "" {
        return errors.New("event without type or reservation id")
    }

    c.mu.Lock()
    defer c.mu.Unlock()
    if err := os.MkdirAll(filepath.Dir(c.LogPath), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(c.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()
    if _, err := f.WriteString(FormatLine(ev)); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

// FormatLine renders ev as a single audit log line.
func FormatLine(ev ReservationEvent) string {
    var what string
    switch booking.EventType(ev.Type) {
    case booking.EventReservationConfirmed:
        what = "Reservation confirmed"
    case booking.EventReservationCancelled:
        what = "Reservation cancelled"
    case booking.EventMaintenanceDue:
        what = "Maintenance due"
    default:
        what = "Event " + ev.Type
    }
    line := fmt.Sprintf("[%s] %s | reservation_id=%s | user=%q (%s) | room=%q | equipment=%q | from=%s | to=%s | by=%q",
        ev.OccurredAt, what, ev.ReservationID, ev.UserName, ev.UserID, ev.Room, ev.Equipment,
        ev.StartsAt, ev.EndsAt, ev.ActorName)
    if ev.UseCount > 0 {
        line += fmt.Sprintf(" | use_count=%d", ev.UseCount)
    }
    return line + "\n"
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
    select {
    case <-ctx.Done():
        return false
    case <-time.After(d):
        return true
    }
}
