package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFormatLine_OrderPlaced(t *testing.T) {
	body, err := json.Marshal(OrderPlacedEvent{
		ReceiptID: "RCP-1",
		SessionID: "s1",
		Lines: []EventLine{
			{ItemID: "b1", Name: "Masala Dosa", Price: 120, Quantity: 1},
			{ItemID: "v2", Name: "Filter Coffee", Price: 80, Quantity: 2},
		},
		Subtotal: 280,
		Tax:      14,
		Total:    294,
		PlacedAt: "2026-01-01T12:00:00Z",
	})
	require.NoError(t, err)

	line, err := FormatLine(OrderPlacedQueue, body)
	require.NoError(t, err)
	assert.Equal(t,
		"[2026-01-01T12:00:00Z] Order placed | receipt=RCP-1 | session=s1 | customer=\"\" | seat=- | subtotal=280 | tax=14 | total=294 | items=[Masala Dosa x1, Filter Coffee x2]\n",
		line)
}

func TestFormatLine_StatusChanged(t *testing.T) {
	body, _ := json.Marshal(OrderStatusChangedEvent{
		OrderID: "ORD-002", CustomerName: "Priya Patel", SeatID: "B3",
		From: "preparing", To: "ready", ChangedAt: "2026-01-01T12:50:00Z",
	})
	line, err := FormatLine(OrderStatusQueue, body)
	require.NoError(t, err)
	assert.Equal(t, "[2026-01-01T12:50:00Z] Order status | order=ORD-002 | customer=\"Priya Patel\" | seat=B3 | preparing -> ready\n", line)
}

func TestFormatLine_Errors(t *testing.T) {
	_, err := FormatLine(OrderPlacedQueue, []byte("{"))
	assert.Error(t, err)
	_, err = FormatLine("booking.confirmed", []byte("{}"))
	assert.Error(t, err)
}

func TestConsumerHandle_AppendsToLog(t *testing.T) {
	dir := t.TempDir()
	c := &Consumer{LogDir: filepath.Join(dir, "logs"), Log: zap.NewNop()}

	body, _ := json.Marshal(OrderStatusChangedEvent{OrderID: "ORD-001", From: "cook-now", To: "preparing"})
	require.NoError(t, c.handle(OrderStatusQueue, body))
	require.NoError(t, c.handle(OrderStatusQueue, body))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "orders.log"))
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(string(data)))
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
