package model

import (
	"fmt"
	"time"
)

// OrderStatus is the kitchen stage of an order.  Stages only move forward,
// one at a time: pending → cook-now → preparing → ready → served.
type OrderStatus int

const (
	OrderPending OrderStatus = iota
	OrderCookNow
	OrderPreparing
	OrderReady
	OrderServed

	orderStatusCount
)

var orderStatusNames = [...]string{
	OrderPending:   "pending",
	OrderCookNow:   "cook-now",
	OrderPreparing: "preparing",
	OrderReady:     "ready",
	OrderServed:    "served",
}

var orderStatusLabels = [...]string{
	OrderPending:   "Pending",
	OrderCookNow:   "Cook Now",
	OrderPreparing: "Preparing",
	OrderReady:     "Ready",
	OrderServed:    "Served",
}

// orderStatusActions is the admin control that moves an order out of the
// stage.  Served is terminal and has no action.
var orderStatusActions = [...]string{
	OrderPending:   "Send to kitchen",
	OrderCookNow:   "Start Cooking",
	OrderPreparing: "Mark Ready",
	OrderReady:     "Mark Served",
	OrderServed:    "",
}

var (
	_ = [1]struct{}{}[len(orderStatusNames)-int(orderStatusCount)]
	_ = [1]struct{}{}[len(orderStatusLabels)-int(orderStatusCount)]
	_ = [1]struct{}{}[len(orderStatusActions)-int(orderStatusCount)]
)

// OrderStatuses lists every stage in progression order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, 0, orderStatusCount)
	for s := OrderStatus(0); s < orderStatusCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s OrderStatus) valid() bool { return s >= 0 && s < orderStatusCount }

func (s OrderStatus) String() string {
	if !s.valid() {
		return fmt.Sprintf("OrderStatus(%d)", int(s))
	}
	return orderStatusNames[s]
}

func (s OrderStatus) Label() string {
	if !s.valid() {
		return ""
	}
	return orderStatusLabels[s]
}

// Action is the label of the control that advances an order out of s.
func (s OrderStatus) Action() string {
	if !s.valid() {
		return ""
	}
	return orderStatusActions[s]
}

// Next returns the stage that follows s.  The second result is false for
// served, which has no successor.
func (s OrderStatus) Next() (OrderStatus, bool) {
	if !s.valid() || s == OrderServed {
		return s, false
	}
	return s + 1, true
}

func (s OrderStatus) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid order status %d", int(s))
	}
	return []byte(orderStatusNames[s]), nil
}

func (s *OrderStatus) UnmarshalText(b []byte) error {
	v, err := ParseOrderStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseOrderStatus maps a wire name ("cook-now") to its OrderStatus.
func ParseOrderStatus(name string) (OrderStatus, error) {
	for i, n := range orderStatusNames {
		if n == name {
			return OrderStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown order status %q", name)
}

// Order is a kitchen ticket shown on the admin dashboard.  Items are a
// snapshot and are never linked back to a live cart.
//
// Fields:
//
//	ID           – ticket identifier (ORD-001).
//	CustomerName – guest name.
//	SeatID       – table the order is for.
//	Items        – ordered lines.
//	Status       – kitchen stage.
//	Total        – amount in currency units.
//	Time         – display time the order was taken.
type Order struct {
	ID           string      `json:"id"`
	CustomerName string      `json:"customer_name"`
	SeatID       string      `json:"seat_id"`
	Items        []CartLine  `json:"items"`
	Status       OrderStatus `json:"status"`
	Total        int         `json:"total"`
	Time         string      `json:"time"`
}

// Receipt records a checked out cart.
//
// Fields:
//
//	ID           – receipt identifier.
//	SessionID    – guest session that checked out.
//	CustomerName – optional guest name.
//	SeatID       – table selected at checkout time (may be empty).
//	Lines        – cart lines at checkout.
//	Subtotal     – sum of price × quantity.
//	Tax          – tax on the subtotal.
//	Total        – Subtotal + Tax.
//	PlacedAt     – checkout time (UTC).
type Receipt struct {
	ID           string     `json:"id"`
	SessionID    string     `json:"session_id"`
	CustomerName string     `json:"customer_name,omitempty"`
	SeatID       string     `json:"seat_id,omitempty"`
	Lines        []CartLine `json:"lines"`
	Subtotal     int        `json:"subtotal"`
	Tax          int        `json:"tax"`
	Total        int        `json:"total"`
	PlacedAt     time.Time  `json:"placed_at"`
}
