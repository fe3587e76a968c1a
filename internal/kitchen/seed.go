package kitchen

import (
	"github.com/iliyamo/restaurant-booking/internal/catalog"
	"github.com/iliyamo/restaurant-booking/internal/model"
)

type seedLine struct {
	itemID string
	qty    int
}

type seedOrder struct {
	id, customer, seat string
	lines              []seedLine
	status             model.OrderStatus
	total              int
	time               string
}

var seedOrders = []seedOrder{
	{"ORD-001", "Rahul Sharma", "A1", []seedLine{{"l1", 1}, {"v1", 2}}, model.OrderCookNow, 440, "12:30 PM"},
	{"ORD-002", "Priya Patel", "B3", []seedLine{{"l2", 1}}, model.OrderPreparing, 280, "12:45 PM"},
	{"ORD-003", "Amit Kumar", "C2", []seedLine{{"b1", 2}, {"v3", 1}}, model.OrderPending, 360, "1:00 PM"},
}

// SeedOrders builds the demo tickets from menu items in cat.  Lines whose
// item is missing from cat are skipped.
func SeedOrders(cat *catalog.Catalog) []model.Order {
	out := make([]model.Order, 0, len(seedOrders))
	for _, so := range seedOrders {
		o := model.Order{
			ID:           so.id,
			CustomerName: so.customer,
			SeatID:       so.seat,
			Status:       so.status,
			Total:        so.total,
			Time:         so.time,
		}
		for _, l := range so.lines {
			if it, ok := cat.Find(l.itemID); ok {
				o.Items = append(o.Items, model.CartLine{MenuItem: it, Quantity: l.qty})
			}
		}
		out = append(out, o)
	}
	return out
}
