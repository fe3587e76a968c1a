// Package cart keeps a guest's order lines and the totals derived from them.
package cart

import (
	"sync"

	"github.com/iliyamo/restaurant-booking/internal/model"
)

// ItemCount is the sum of quantities across lines.
func ItemCount(lines []model.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// Total is the sum of price × quantity across lines.
func Total(lines []model.CartLine) int {
	t := 0
	for _, l := range lines {
		t += l.LineTotal()
	}
	return t
}

// Summary is the checkout breakdown of a cart.
type Summary struct {
	Subtotal int `json:"subtotal"`
	Tax      int `json:"tax"`
	Total    int `json:"total"`
}

// Summarize computes subtotal, tax and grand total.  Tax is rounded half
// up to whole currency units.
func Summarize(lines []model.CartLine, taxPercent int) Summary {
	sub := Total(lines)
	tax := 0
	if taxPercent > 0 {
		tax = (sub*taxPercent + 50) / 100
	}
	return Summary{Subtotal: sub, Tax: tax, Total: sub + tax}
}

// Snapshot is a consistent read of the store.
type Snapshot struct {
	Lines     []model.CartLine `json:"lines"`
	ItemCount int              `json:"item_count"`
	Total     int              `json:"total"`
}

func snapshotOf(lines []model.CartLine) Snapshot {
	cp := make([]model.CartLine, len(lines))
	copy(cp, lines)
	return Snapshot{Lines: cp, ItemCount: ItemCount(cp), Total: Total(cp)}
}

// Store owns the lines of one cart.  There is at most one line per menu
// item and every line has a quantity of at least 1.  Counts and totals are
// never stored; they are derived from the lines on every read.
type Store struct {
	mu     sync.RWMutex
	lines  []model.CartLine
	subs   map[int]func(Snapshot)
	nextID int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(Snapshot))}
}

// Subscribe registers fn to receive a snapshot after every change.  The
// returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// commit must be called with s.mu held for writing.  Subscribers are
// notified after the lock is released.
func (s *Store) commit() func() {
	snap := snapshotOf(s.lines)
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(snap)
		}
	}
}

func (s *Store) index(itemID string) int {
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			return i
		}
	}
	return -1
}

// Add puts one more of item in the cart, creating the line if needed.
func (s *Store) Add(item model.MenuItem) {
	s.mu.Lock()
	if i := s.index(item.ID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, model.CartLine{MenuItem: item, Quantity: 1})
	}
	notify := s.commit()
	s.mu.Unlock()
	notify()
}

// UpdateQuantity sets the quantity of an existing line.  A quantity of
// zero or less removes the line.  Unknown ids are ignored.  The result
// reports whether a line was touched.
func (s *Store) UpdateQuantity(itemID string, quantity int) bool {
	s.mu.Lock()
	i := s.index(itemID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	if quantity <= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	} else {
		s.lines[i].Quantity = quantity
	}
	notify := s.commit()
	s.mu.Unlock()
	notify()
	return true
}

// Remove deletes the line for itemID, if present.
func (s *Store) Remove(itemID string) bool {
	s.mu.Lock()
	i := s.index(itemID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	notify := s.commit()
	s.mu.Unlock()
	notify()
	return true
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	notify := s.commit()
	s.mu.Unlock()
	notify()
}

// Drain empties the cart and returns the lines it held, in one step, so
// two concurrent checkouts cannot both bill the same lines.  An empty cart
// is left untouched and nil is returned.
func (s *Store) Drain() []model.CartLine {
	s.mu.Lock()
	if len(s.lines) == 0 {
		s.mu.Unlock()
		return nil
	}
	out := s.lines
	s.lines = nil
	notify := s.commit()
	s.mu.Unlock()
	notify()
	return out
}

// Lines returns a copy of the lines in the order they were first added.
func (s *Store) Lines() []model.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Snapshot returns the lines with their count and total, read under one
// lock.  The HTTP handlers render carts from it.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotOf(s.lines)
}

// ItemCount and Total are shorthands for the matching Snapshot fields.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ItemCount(s.lines)
}

func (s *Store) Total() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Total(s.lines)
}
