// Package queue_publisher publishes order events to RabbitMQ.
// Errors are logged and returned so callers can ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "go.uber.org/zap"

    q "github.com/iliyamo/restaurant-booking/internal/queue"
)

// dialTimeout bounds how long a request waits on an unreachable broker.
const dialTimeout = 2 * time.Second

// Publisher sends events to the default exchange, one durable queue per
// event type.  A Publisher with an empty URL drops every event, which keeps
// the service usable without a broker.
type Publisher struct {
    url string
    log *zap.Logger
}

// New returns a Publisher for url.
func New(url string, log *zap.Logger) *Publisher {
    if log == nil {
        log = zap.NewNop()
    }
    return &Publisher{url: url, log: log}
}

// Enabled reports whether events are actually sent.
func (p *Publisher) Enabled() bool { return p != nil && p.url != "" }

// PublishOrderPlaced publishes ev to the "order.placed" queue.
func (p *Publisher) PublishOrderPlaced(ctx context.Context, ev q.OrderPlacedEvent) error {
    return p.publish(ctx, q.OrderPlacedQueue, ev)
}

// PublishOrderStatusChanged publishes ev to the "order.status_changed" queue.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, ev q.OrderStatusChangedEvent) error {
    return p.publish(ctx, q.OrderStatusQueue, ev)
}

// publish dials a fresh connection per message.  Checkout and kitchen
// updates are low volume, so a pooled channel is not worth the reconnect
// bookkeeping.
func (p *Publisher) publish(ctx context.Context, queue string, event any) error {
    if !p.Enabled() {
        return nil
    }
    log := p.log.With(zap.String("queue", queue))

    conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
    if err != nil {
        log.Warn("rabbitmq: dial failed", zap.Error(err))
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Warn("rabbitmq: channel open failed", zap.Error(err))
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
        log.Warn("rabbitmq: queue declare failed", zap.Error(err))
        return err
    }

    body, err := json.Marshal(event)
    if err != nil {
        log.Error("rabbitmq: marshal event failed", zap.Error(err))
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
        log.Warn("rabbitmq: publish failed", zap.Error(err))
        return err
    }
    log.Debug("rabbitmq: event published")
    return nil
}
