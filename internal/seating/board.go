// Package seating holds the restaurant floor plan and the single-table
// selection rules guests interact with.
package seating

import (
	"strconv"
	"sync"

	"github.com/iliyamo/restaurant-booking/internal/model"
)

var rowLabels = []string{"A", "B", "C", "D", "E"}

// statusCycle seeds the initial status of each table from its position.
var statusCycle = []model.SeatStatus{
	model.SeatAvailable,
	model.SeatReserved,
	model.SeatOccupied,
	model.SeatAvailable,
}

// seatsInRow returns the number of tables in a row: the booth row E has 3,
// row D has 4 and every other row 5.
func seatsInRow(row string) int {
	switch row {
	case "E":
		return 3
	case "D":
		return 4
	}
	return 5
}

func tableTypeFor(row string, number int) model.TableType {
	if row == "E" {
		return model.TableBooth
	}
	if number <= 2 {
		return model.TablePair
	}
	return model.TableQuad
}

// Generate builds the floor plan.  The result is deterministic: every call
// returns the same tables in the same order with the same statuses.
func Generate() []model.Seat {
	seats := make([]model.Seat, 0, 22)
	for ri, row := range rowLabels {
		for i := 1; i <= seatsInRow(row); i++ {
			tt := tableTypeFor(row, i)
			seats = append(seats, model.Seat{
				ID:       row + strconv.Itoa(i),
				Row:      row,
				Number:   i,
				Capacity: tt.Capacity(),
				Type:     tt,
				Status:   statusCycle[(ri+i)%len(statusCycle)],
			})
		}
	}
	return seats
}

// Select toggles the table with the given id and returns the updated
// floor plan.  The input slice is never modified.
//
// Reserved, occupied and unknown tables leave the plan unchanged.  A
// selected table goes back to available.  Otherwise any other selected
// table is released and the target becomes the single selection.
func Select(seats []model.Seat, id string) []model.Seat {
	idx := indexOf(seats, id)
	if idx < 0 || !seats[idx].Status.Selectable() {
		return seats
	}
	out := make([]model.Seat, len(seats))
	copy(out, seats)
	if out[idx].Status == model.SeatSelected {
		out[idx].Status = model.SeatAvailable
		return out
	}
	for i := range out {
		if out[i].Status == model.SeatSelected {
			out[i].Status = model.SeatAvailable
		}
	}
	out[idx].Status = model.SeatSelected
	return out
}

// Find returns the table with the given id.
func Find(seats []model.Seat, id string) (model.Seat, bool) {
	if i := indexOf(seats, id); i >= 0 {
		return seats[i], true
	}
	return model.Seat{}, false
}

// Selected returns the currently selected table, if any.
func Selected(seats []model.Seat) (model.Seat, bool) {
	for _, s := range seats {
		if s.Status == model.SeatSelected {
			return s, true
		}
	}
	return model.Seat{}, false
}

func indexOf(seats []model.Seat, id string) int {
	for i := range seats {
		if seats[i].ID == id {
			return i
		}
	}
	return -1
}

// Row is one row of the floor plan in display order.
type Row struct {
	Label string       `json:"row"`
	Seats []model.Seat `json:"seats"`
}

// Rows groups tables by row, keeping rows in first-seen order.
func Rows(seats []model.Seat) []Row {
	var rows []Row
	pos := map[string]int{}
	for _, s := range seats {
		i, ok := pos[s.Row]
		if !ok {
			i = len(rows)
			pos[s.Row] = i
			rows = append(rows, Row{Label: s.Row})
		}
		rows[i].Seats = append(rows[i].Seats, s)
	}
	return rows
}

// Stats counts tables per status.
type Stats struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Reserved  int `json:"reserved"`
	Occupied  int `json:"occupied"`
	Selected  int `json:"selected"`
}

func CountStats(seats []model.Seat) Stats {
	st := Stats{Total: len(seats)}
	for _, s := range seats {
		switch s.Status {
		case model.SeatAvailable:
			st.Available++
		case model.SeatReserved:
			st.Reserved++
		case model.SeatOccupied:
			st.Occupied++
		case model.SeatSelected:
			st.Selected++
		}
	}
	return st
}

// Board is one guest's floor plan.  It lives as long as the guest session
// and is safe for concurrent use.
type Board struct {
	mu    sync.RWMutex
	seats []model.Seat
}

// NewBoard returns a board holding a freshly generated floor plan.
func NewBoard() *Board {
	return &Board{seats: Generate()}
}

// Seats returns a copy of the current floor plan.
func (b *Board) Seats() []model.Seat {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]model.Seat, len(b.seats))
	copy(out, b.seats)
	return out
}

// Select applies Select to the board and returns the target table after
// the call.  ok is false when the id is unknown.
func (b *Board) Select(id string) (seat model.Seat, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.seats = Select(b.seats, id)
	return Find(b.seats, id)
}

// Selection returns the selected table, if any.
func (b *Board) Selection() (model.Seat, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return Selected(b.seats)
}

// Reset discards the selection by regenerating the floor plan.
func (b *Board) Reset() {
	b.mu.Lock()
	b.seats = Generate()
	b.mu.Unlock()
}
