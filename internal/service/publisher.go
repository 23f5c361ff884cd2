// Package service holds outbound integrations used by the booking engine.
package service

import (
    "context"
    "encoding/json"
    "log/slog"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/booking"
    "github.com/dhruv0767/Lab-Equipments-Reservation/internal/queue"
)

// EventPublisher delivers booking events to RabbitMQ.  A connection is
// opened per event; reservation traffic is low enough that pooling is not
// worth its failure modes.  Errors are logged and returned so the engine
// can carry on.
type EventPublisher struct {
    url     string
    timeout time.Duration
    logger  *slog.Logger
}

// NewEventPublisher returns a publisher for the broker at url.
func NewEventPublisher(url string, logger *slog.Logger) *EventPublisher {
    if logger == nil {
        logger = slog.Default()
    }
    return &EventPublisher{url: url, timeout: 3 * time.Second, logger: logger.With("service", "event-publisher")}
}

// Publish implements booking.Publisher.
func (p *EventPublisher) Publish(ctx context.Context, ev booking.Event) error {
    body, err := json.Marshal(queue.FromEvent(ev))
    if err != nil {
        return err
    }

    // the request may finish before the broker answers
    ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
    defer cancel()

    conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.timeout)})
    if err != nil {
        p.logger.Warn("dial failed", "error", err)
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        p.logger.Warn("channel open failed", "error", err)
        return err
    }
    defer func() { _ = ch.Close() }()

    if _, err := ch.QueueDeclare(queue.QueueName, true, false, false, false, nil); err != nil {
        p.logger.Warn("queue declare failed", "error", err)
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Type:         string(ev.Type),
        MessageId:    ev.Reservation.ID,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", queue.QueueName, false, false, pub); err != nil {
        p.logger.Warn("publish failed", "event", ev.Type, "error", err)
        return err
    }
    return nil
}
