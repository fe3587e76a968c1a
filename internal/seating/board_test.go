package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-booking/internal/model"
)

func countSelected(seats []model.Seat) int {
	return CountStats(seats).Selected
}

func statusOf(t *testing.T, seats []model.Seat, id string) model.SeatStatus {
	t.Helper()
	s, ok := Find(seats, id)
	require.True(t, ok, "seat %s not found", id)
	return s.Status
}

func TestGenerate_Topology(t *testing.T) {
	seats := Generate()
	require.Len(t, seats, 22)

	rows := Rows(seats)
	require.Len(t, rows, 5)
	wantCounts := map[string]int{"A": 5, "B": 5, "C": 5, "D": 4, "E": 3}
	for _, r := range rows {
		assert.Len(t, r.Seats, wantCounts[r.Label], "row %s", r.Label)
	}

	a1, _ := Find(seats, "A1")
	assert.Equal(t, model.TablePair, a1.Type)
	assert.Equal(t, 2, a1.Capacity)
	a3, _ := Find(seats, "A3")
	assert.Equal(t, model.TableQuad, a3.Type)
	assert.Equal(t, 4, a3.Capacity)
	e2, _ := Find(seats, "E2")
	assert.Equal(t, model.TableBooth, e2.Type)
	assert.Equal(t, 6, e2.Capacity)
}

func TestGenerate_Deterministic(t *testing.T) {
	assert.Equal(t, Generate(), Generate())

	st := CountStats(Generate())
	assert.Equal(t, Stats{Total: 22, Available: 10, Reserved: 6, Occupied: 6}, st)

	seats := Generate()
	assert.Equal(t, model.SeatReserved, statusOf(t, seats, "A1"))
	assert.Equal(t, model.SeatOccupied, statusOf(t, seats, "A2"))
	assert.Equal(t, model.SeatAvailable, statusOf(t, seats, "A3"))
	assert.Equal(t, model.SeatAvailable, statusOf(t, seats, "B2"))
	assert.Equal(t, model.SeatAvailable, statusOf(t, seats, "E3"))
}

func TestSelect_ReservedAndOccupiedAreNoOps(t *testing.T) {
	seats := Select(Generate(), "A3")
	before := append([]model.Seat(nil), seats...)

	for _, id := range []string{"A1", "A2", "E1", "E2"} {
		got := Select(seats, id)
		assert.Equal(t, before, got, "selecting %s must not change the board", id)
	}
}

func TestSelect_UnknownIsNoOp(t *testing.T) {
	seats := Generate()
	assert.Equal(t, seats, Select(seats, "Z9"))
}

func TestSelect_Toggle(t *testing.T) {
	seats := Select(Generate(), "A3")
	assert.Equal(t, model.SeatSelected, statusOf(t, seats, "A3"))
	assert.Equal(t, 1, countSelected(seats))

	seats = Select(seats, "A3")
	assert.Equal(t, model.SeatAvailable, statusOf(t, seats, "A3"))
	assert.Equal(t, 0, countSelected(seats))
}

func TestSelect_MovesSelection(t *testing.T) {
	seats := Generate()
	seats = Select(seats, "A1") // reserved, ignored
	seats = Select(seats, "A3")
	seats = Select(seats, "B2")

	sel, ok := Selected(seats)
	require.True(t, ok)
	assert.Equal(t, "B2", sel.ID)
	assert.Equal(t, model.SeatAvailable, statusOf(t, seats, "A3"))
	assert.Equal(t, model.SeatReserved, statusOf(t, seats, "A1"))
	assert.Equal(t, 1, countSelected(seats))
}

func TestSelect_DoesNotMutateInput(t *testing.T) {
	seats := Generate()
	_ = Select(seats, "A3")
	assert.Equal(t, model.SeatAvailable, statusOf(t, seats, "A3"))
}

func TestSelect_AtMostOneSelected(t *testing.T) {
	seats := Generate()
	ids := []string{"A3", "B2", "B2", "C1", "A1", "E3", "D4", "D4", "Z1", "C5", "A4"}
	for _, id := range ids {
		prev := seats
		seats = Select(seats, id)
		n := countSelected(seats)
		assert.LessOrEqual(t, n, 1, "after selecting %s", id)

		// every seat other than the target and the previous selection keeps its status
		prevSel, _ := Selected(prev)
		for i := range seats {
			if seats[i].ID == id || seats[i].ID == prevSel.ID {
				continue
			}
			assert.Equal(t, prev[i].Status, seats[i].Status, "seat %s changed", seats[i].ID)
		}
	}
}

func TestBoard_SelectAndReset(t *testing.T) {
	b := NewBoard()
	seat, ok := b.Select("B2")
	require.True(t, ok)
	assert.Equal(t, model.SeatSelected, seat.Status)

	sel, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, "B2", sel.ID)

	_, ok = b.Select("nope")
	assert.False(t, ok)

	b.Reset()
	_, ok = b.Selection()
	assert.False(t, ok)
	assert.Equal(t, Generate(), b.Seats())
}
