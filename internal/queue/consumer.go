// Package queue also contains the background consumer that listens to the
// order queues and appends one human-friendly line per event to
// <dir>/orders.log.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer drains the order queues into a log file.
type Consumer struct {
	URL    string
	LogDir string
	Log    *zap.Logger
}

// Run connects to RabbitMQ, declares both order queues (durable) and
// consumes until ctx is cancelled, reconnecting with exponential backoff
// when the broker goes away.  Messages that cannot be handled are
// rejected without requeue so a bad payload cannot loop forever.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn("order-consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
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
		c.Log.Warn("order-consumer: consume loop ended, reconnecting", zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
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
		c.Log.Warn("order-consumer: set QoS failed", zap.Error(err))
	}

	placed, err := c.consume(ch, OrderPlacedQueue)
	if err != nil {
		return err
	}
	status, err := c.consume(ch, OrderStatusQueue)
	if err != nil {
		return err
	}

	for {
		var d amqp.Delivery
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok = <-placed:
		case d, ok = <-status:
		}
		if !ok {
			return errors.New("deliveries channel closed")
		}
		if err := c.handle(d.RoutingKey, d.Body); err != nil {
			c.Log.Error("order-consumer: handle message failed", zap.String("queue", d.RoutingKey), zap.Error(err))
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func (c *Consumer) consume(ch *amqp.Channel, queue string) (<-chan amqp.Delivery, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("queue declare %s: %w", queue, err)
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("queue consume %s: %w", queue, err)
	}
	return msgs, nil
}

func (c *Consumer) handle(queue string, body []byte) error {
	line, err := FormatLine(queue, body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.LogDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", c.LogDir, err)
	}
	f, err := os.OpenFile(filepath.Join(c.LogDir, "orders.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders a message from queue as a single log line ending in
// a newline.
func FormatLine(queue string, body []byte) (string, error) {
	switch queue {
	case OrderPlacedQueue:
		var ev OrderPlacedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		items := make([]string, 0, len(ev.Lines))
		for _, l := range ev.Lines {
			items = append(items, fmt.Sprintf("%s x%d", l.Name, l.Quantity))
		}
		seat := ev.SeatID
		if seat == "" {
			seat = "-"
		}
		return fmt.Sprintf("[%s] Order placed | receipt=%s | session=%s | customer=%q | seat=%s | subtotal=%d | tax=%d | total=%d | items=[%s]\n",
			ev.PlacedAt, ev.ReceiptID, ev.SessionID, ev.CustomerName, seat, ev.Subtotal, ev.Tax, ev.Total, strings.Join(items, ", ")), nil
	case OrderStatusQueue:
		var ev OrderStatusChangedEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return "", fmt.Errorf("unmarshal: %w", err)
		}
		return fmt.Sprintf("[%s] Order status | order=%s | customer=%q | seat=%s | %s -> %s\n",
			ev.ChangedAt, ev.OrderID, ev.CustomerName, ev.SeatID, ev.From, ev.To), nil
	}
	return "", fmt.Errorf("unknown queue %q", queue)
}
