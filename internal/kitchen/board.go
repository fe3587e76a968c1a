// Package kitchen simulates the admin order board: a list of tickets that
// the kitchen moves through a fixed sequence of stages.
package kitchen

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/iliyamo/restaurant-booking/internal/model"
)

var (
	// ErrOrderNotFound is returned when no ticket has the given id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidTransition is returned when the requested stage is not the
	// one directly after the current stage.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrFinalStatus is returned when advancing a served order.
	ErrFinalStatus = errors.New("order already served")
)

// Board holds the kitchen tickets.  Tickets are independent records; no
// cart or session is ever reconciled with them.
type Board struct {
	mu     sync.RWMutex
	orders []model.Order
}

func NewBoard(orders []model.Order) *Board {
	b := &Board{orders: make([]model.Order, len(orders))}
	copy(b.orders, orders)
	return b
}

// List returns the tickets in board order.
func (b *Board) List() []model.Order {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Order, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b *Board) indexOf(id string) int {
	for i := range b.orders {
		if b.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) Get(id string) (model.Order, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.indexOf(id)
	if i < 0 {
		return model.Order{}, fmt.Errorf("get %s: %w", id, ErrOrderNotFound)
	}
	return b.orders[i], nil
}

// Advance moves an order to the next stage and returns the updated order
// together with the stage it left.
func (b *Board) Advance(id string) (order model.Order, from model.OrderStatus, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return model.Order{}, 0, fmt.Errorf("advance %s: %w", id, ErrOrderNotFound)
	}
	from = b.orders[i].Status
	next, ok := from.Next()
	if !ok {
		return b.orders[i], from, fmt.Errorf("advance %s: %w", id, ErrFinalStatus)
	}
	b.orders[i].Status = next
	return b.orders[i], from, nil
}

// Transition moves an order to the stage to.  Only the stage directly
// after the current one is accepted; skipping ahead or going back fails
// with ErrInvalidTransition and leaves the order unchanged.
func (b *Board) Transition(id string, to model.OrderStatus) (order model.Order, from model.OrderStatus, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return model.Order{}, 0, fmt.Errorf("transition %s: %w", id, ErrOrderNotFound)
	}
	from = b.orders[i].Status
	next, ok := from.Next()
	if !ok {
		return b.orders[i], from, fmt.Errorf("transition %s: %w", id, ErrFinalStatus)
	}
	if to != next {
		return b.orders[i], from, fmt.Errorf("transition %s from %s to %s: %w", id, from, to, ErrInvalidTransition)
	}
	b.orders[i].Status = next
	return b.orders[i], from, nil
}

// Counts returns the number of orders in each stage, keyed by wire name.
// Every stage is present, with zero when empty.
func (b *Board) Counts() map[string]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return countByStatus(b.orders)
}

func countByStatus(orders []model.Order) map[string]int {
	out := make(map[string]int, len(model.OrderStatuses()))
	for _, s := range model.OrderStatuses() {
		out[s.String()] = 0
	}
	for _, o := range orders {
		out[o.Status.String()]++
	}
	return out
}

// DishStat is one line of the popular dishes table.
type DishStat struct {
	Name     string `json:"name"`
	Quantity int    `json:"orders"`
	Revenue  int    `json:"revenue"`
}

// Analytics summarises the board for the admin dashboard.
type Analytics struct {
	Orders        int            `json:"orders"`
	Revenue       int            `json:"revenue"`
	ServedRevenue int            `json:"served_revenue"`
	ByStatus      map[string]int `json:"by_status"`
	TopDishes     []DishStat     `json:"top_dishes"`
}

// Analytics computes order counts per stage, revenue and the most ordered
// dishes (by quantity, then name), limited to top entries.  All figures
// come from one copy of the board.
func (b *Board) Analytics(top int) Analytics {
	return analyticsOf(b.List(), top)
}

func analyticsOf(orders []model.Order, top int) Analytics {
	a := Analytics{Orders: len(orders), ByStatus: countByStatus(orders)}
	dishes := map[string]*DishStat{}
	for _, o := range orders {
		a.Revenue += o.Total
		if o.Status == model.OrderServed {
			a.ServedRevenue += o.Total
		}
		for _, l := range o.Items {
			d, ok := dishes[l.Name]
			if !ok {
				d = &DishStat{Name: l.Name}
				dishes[l.Name] = d
			}
			d.Quantity += l.Quantity
			d.Revenue += l.LineTotal()
		}
	}
	for _, d := range dishes {
		a.TopDishes = append(a.TopDishes, *d)
	}
	sort.Slice(a.TopDishes, func(i, j int) bool {
		if a.TopDishes[i].Quantity != a.TopDishes[j].Quantity {
			return a.TopDishes[i].Quantity > a.TopDishes[j].Quantity
		}
		return a.TopDishes[i].Name < a.TopDishes[j].Name
	})
	if top > 0 && len(a.TopDishes) > top {
		a.TopDishes = a.TopDishes[:top]
	}
	return a
}
