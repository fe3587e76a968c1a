// Package queue defines message payloads exchanged over the message broker.
package queue

const (
	// OrderPlacedQueue receives one message per checkout.
	OrderPlacedQueue = "order.placed"
	// OrderStatusQueue receives one message per kitchen stage change.
	OrderStatusQueue = "order.status_changed"
)

// EventLine is a cart line as carried in events.
type EventLine struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// OrderPlacedEvent is published when a guest checks out.  It carries a full
// copy of the receipt so consumers never need to call back into the
// service.
type OrderPlacedEvent struct {
	ReceiptID    string      `json:"receipt_id"`
	SessionID    string      `json:"session_id"`
	CustomerName string      `json:"customer_name,omitempty"`
	SeatID       string      `json:"seat_id,omitempty"`
	Lines        []EventLine `json:"lines"`
	Subtotal     int         `json:"subtotal"`
	Tax          int         `json:"tax"`
	Total        int         `json:"total"`
	PlacedAt     string      `json:"placed_at"`
}

// OrderStatusChangedEvent is published when the kitchen moves an order to
// its next stage.
type OrderStatusChangedEvent struct {
	OrderID      string `json:"order_id"`
	CustomerName string `json:"customer_name"`
	SeatID       string `json:"seat_id"`
	From         string `json:"from"`
	To           string `json:"to"`
	ChangedAt    string `json:"changed_at"`
}
