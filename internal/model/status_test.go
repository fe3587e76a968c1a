package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_NextIsLinear(t *testing.T) {
	want := []OrderStatus{OrderCookNow, OrderPreparing, OrderReady, OrderServed}
	s := OrderPending
	for _, w := range want {
		next, ok := s.Next()
		require.True(t, ok, "expected a successor for %s", s)
		assert.Equal(t, w, next)
		s = next
	}
	_, ok := OrderServed.Next()
	assert.False(t, ok, "served must be terminal")
}

func TestOrderStatus_JSONUsesWireNames(t *testing.T) {
	b, err := json.Marshal(struct {
		S OrderStatus `json:"s"`
	}{OrderCookNow})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"cook-now"}`, string(b))

	var out struct {
		S OrderStatus `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"preparing"}`), &out))
	assert.Equal(t, OrderPreparing, out.S)

	assert.Error(t, json.Unmarshal([]byte(`{"s":"cooking"}`), &out))
}

func TestSeatStatus_Tables(t *testing.T) {
	for _, s := range SeatStatuses() {
		assert.NotEmpty(t, s.String())
		assert.NotEmpty(t, s.Label())
		parsed, err := ParseSeatStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.True(t, SeatAvailable.Selectable())
	assert.True(t, SeatSelected.Selectable())
	assert.False(t, SeatReserved.Selectable())
	assert.False(t, SeatOccupied.Selectable())
}

func TestTableType_Capacity(t *testing.T) {
	tests := []struct {
		tt   TableType
		name string
		cap  int
	}{
		{TablePair, "table-2", 2},
		{TableQuad, "table-4", 4},
		{TableSix, "table-6", 6},
		{TableBooth, "booth", 6},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.name, tc.tt.String())
		assert.Equal(t, tc.cap, tc.tt.Capacity())
	}
	assert.Equal(t, []TableType{TablePair, TableQuad, TableSix, TableBooth}, TableTypes())
	assert.Equal(t, "Booth", TableBooth.Label())
	assert.Empty(t, TableType(99).Label())
}

func TestCartLine_LineTotal(t *testing.T) {
	l := CartLine{MenuItem: MenuItem{ID: "v1", Price: 60}, Quantity: 3}
	assert.Equal(t, 180, l.LineTotal())
}
