package handler // handler defines http handlers

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-booking/internal/middleware"
	"github.com/iliyamo/restaurant-booking/internal/model"
	"github.com/iliyamo/restaurant-booking/internal/queue"
)

// EventPublisher is the subset of the RabbitMQ publisher the handlers use.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, ev queue.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, ev queue.OrderStatusChangedEvent) error
}

// ReceiptArchive stores checked out carts.  A nil archive means MySQL is
// not configured.
type ReceiptArchive interface {
	Create(ctx context.Context, rc model.Receipt) error
	Get(ctx context.Context, id string) (model.Receipt, error)
	ListRecent(ctx context.Context, limit int) ([]model.Receipt, error)
}

// nopPublisher drops every event.
type nopPublisher struct{}

func (nopPublisher) PublishOrderPlaced(context.Context, queue.OrderPlacedEvent) error { return nil }
func (nopPublisher) PublishOrderStatusChanged(context.Context, queue.OrderStatusChangedEvent) error {
	return nil
}

// getSessionID returns the guest session id carried by the JWT subject.
func getSessionID(c echo.Context) (string, error) {
	sid := middleware.Subject(c)
	if sid == "anon" {
		return "", errors.New("missing session in context")
	}
	return sid, nil
}

// errorJSON writes the {"error": msg} body used by every handler.
func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}
