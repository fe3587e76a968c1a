package model

import "fmt"

// SeatStatus is the state of a table on the floor plan.  Reserved and
// occupied tables are controlled by the restaurant; guests may only move
// a table between available and selected.
type SeatStatus int

const (
	SeatAvailable SeatStatus = iota
	SeatReserved
	SeatOccupied
	SeatSelected

	seatStatusCount // number of statuses; keep last
)

var seatStatusNames = [...]string{
	SeatAvailable: "available",
	SeatReserved:  "reserved",
	SeatOccupied:  "occupied",
	SeatSelected:  "selected",
}

var seatStatusLabels = [...]string{
	SeatAvailable: "Available",
	SeatReserved:  "Reserved",
	SeatOccupied:  "Occupied",
	SeatSelected:  "Selected",
}

// Both tables must have exactly one entry per status.
var (
	_ = [1]struct{}{}[len(seatStatusNames)-int(seatStatusCount)]
	_ = [1]struct{}{}[len(seatStatusLabels)-int(seatStatusCount)]
)

// SeatStatuses lists every status in declaration order.
func SeatStatuses() []SeatStatus {
	out := make([]SeatStatus, 0, seatStatusCount)
	for s := SeatStatus(0); s < seatStatusCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s SeatStatus) valid() bool { return s >= 0 && s < seatStatusCount }

// String returns the wire name (e.g. "available").
func (s SeatStatus) String() string {
	if !s.valid() {
		return fmt.Sprintf("SeatStatus(%d)", int(s))
	}
	return seatStatusNames[s]
}

// Label returns the human readable legend text.
func (s SeatStatus) Label() string {
	if !s.valid() {
		return ""
	}
	return seatStatusLabels[s]
}

// Selectable reports whether a guest may toggle a seat in this status.
func (s SeatStatus) Selectable() bool {
	return s == SeatAvailable || s == SeatSelected
}

func (s SeatStatus) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("invalid seat status %d", int(s))
	}
	return []byte(seatStatusNames[s]), nil
}

func (s *SeatStatus) UnmarshalText(b []byte) error {
	v, err := ParseSeatStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeatStatus maps a wire name back to its SeatStatus.
func ParseSeatStatus(name string) (SeatStatus, error) {
	for i, n := range seatStatusNames {
		if n == name {
			return SeatStatus(i), nil
		}
	}
	return 0, fmt.Errorf("unknown seat status %q", name)
}

// TableType is the kind of table a seat represents.
type TableType int

const (
	TablePair TableType = iota
	TableQuad
	TableSix
	TableBooth

	tableTypeCount
)

var tableTypeNames = [...]string{
	TablePair:  "table-2",
	TableQuad:  "table-4",
	TableSix:   "table-6",
	TableBooth: "booth",
}

var tableTypeLabels = [...]string{
	TablePair:  "Table for 2",
	TableQuad:  "Table for 4",
	TableSix:   "Table for 6",
	TableBooth: "Booth",
}

var tableCapacities = [...]int{
	TablePair:  2,
	TableQuad:  4,
	TableSix:   6,
	TableBooth: 6,
}

var (
	_ = [1]struct{}{}[len(tableTypeNames)-int(tableTypeCount)]
	_ = [1]struct{}{}[len(tableTypeLabels)-int(tableTypeCount)]
	_ = [1]struct{}{}[len(tableCapacities)-int(tableTypeCount)]
)

// TableTypes lists every table type in declaration order.
func TableTypes() []TableType {
	out := make([]TableType, 0, tableTypeCount)
	for t := TableType(0); t < tableTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t TableType) valid() bool { return t >= 0 && t < tableTypeCount }

func (t TableType) String() string {
	if !t.valid() {
		return fmt.Sprintf("TableType(%d)", int(t))
	}
	return tableTypeNames[t]
}

// Label returns the display name, e.g. "Table for 4".
func (t TableType) Label() string {
	if !t.valid() {
		return ""
	}
	return tableTypeLabels[t]
}

// Capacity is the number of guests the table seats.
func (t TableType) Capacity() int {
	if !t.valid() {
		return 0
	}
	return tableCapacities[t]
}

func (t TableType) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid table type %d", int(t))
	}
	return []byte(tableTypeNames[t]), nil
}

func (t *TableType) UnmarshalText(b []byte) error {
	for i, n := range tableTypeNames {
		if n == string(b) {
			*t = TableType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown table type %q", string(b))
}

// Seat describes one bookable table on the floor plan.  Seats are
// identified by their row letter and number within the row ("A1").
//
// Fields:
//
//	ID       – row letter followed by the seat number.
//	Row      – row letter (A..E).
//	Number   – 1-based position in the row.
//	Capacity – guests the table seats (2, 4 or 6).
//	Type     – table kind.
//	Status   – current floor plan status.
type Seat struct {
	ID       string     `json:"id"`
	Row      string     `json:"row"`
	Number   int        `json:"number"`
	Capacity int        `json:"capacity"`
	Type     TableType  `json:"type"`
	Status   SeatStatus `json:"status"`
}
