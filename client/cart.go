package client

import (
	"encoding/json"
	"os"
	"sync"
)

// maxQtyPerLine caps how many of one item a single order can carry.
const maxQtyPerLine = 20

// CartLine is a selected menu item with a denormalized name/price captured
// at add time. The price here is advisory display state only; the server
// recomputes the real total from the catalog at submission.
type CartLine struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      int64   `json:"price"`
	Qty        int     `json:"qty"`
	ImageURL   *string `json:"image_url,omitempty"`
}

type hydrationState int

const (
	hydrationUninitialized hydrationState = iota
	hydrationRestoring
	hydrationReady
)

// CartStore holds the selected lines, persists them to a local JSON file on
// every mutation, and restores them asynchronously on Open. Until
// HasHydrated reports true the cart reads as empty; consumers should render
// the zero state and re-render once hydration completes, so a non-empty
// persisted cart is never overwritten by a flash of emptiness.
type CartStore struct {
	mu      sync.Mutex
	path    string
	lines   []CartLine
	state   hydrationState
	dirty   bool // mutated before restore finished; keep the live lines
	onReady []func()
}

func NewCartStore(path string) *CartStore {
	return &CartStore{path: path}
}

// Open starts the asynchronous restore. A missing or unreadable file
// hydrates to an empty cart; restore never blocks the caller.
func (s *CartStore) Open() {
	s.mu.Lock()
	if s.state != hydrationUninitialized {
		s.mu.Unlock()
		return
	}
	s.state = hydrationRestoring
	s.mu.Unlock()

	go func() {
		var restored []CartLine
		if data, err := os.ReadFile(s.path); err == nil {
			_ = json.Unmarshal(data, &restored)
		}

		s.mu.Lock()
		if !s.dirty {
			s.lines = restored
		}
		s.state = hydrationReady
		callbacks := s.onReady
		s.onReady = nil
		s.mu.Unlock()

		for _, fn := range callbacks {
			fn()
		}
	}()
}

func (s *CartStore) HasHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == hydrationReady
}

// OnHydrated registers a callback for when the restore completes. If the
// store is already hydrated the callback runs immediately.
func (s *CartStore) OnHydrated(fn func()) {
	s.mu.Lock()
	if s.state == hydrationReady {
		s.mu.Unlock()
		fn()
		return
	}
	s.onReady = append(s.onReady, fn)
	s.mu.Unlock()
}

// AddItem inserts a new line with qty 1, or bumps an existing line by one,
// capped at maxQtyPerLine.
func (s *CartStore) AddItem(menuItemID, name string, price int64, imageURL *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].MenuItemID == menuItemID {
			if s.lines[i].Qty < maxQtyPerLine {
				s.lines[i].Qty++
			}
			s.persistLocked()
			return
		}
	}
	s.lines = append(s.lines, CartLine{
		MenuItemID: menuItemID,
		Name:       name,
		Price:      price,
		Qty:        1,
		ImageURL:   imageURL,
	})
	s.persistLocked()
}

// UpdateQty sets the exact quantity for a line. Zero or below removes the
// line; anything above the cap clamps to it.
func (s *CartStore) UpdateQty(menuItemID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if qty <= 0 {
		s.removeLocked(menuItemID)
		s.persistLocked()
		return
	}
	if qty > maxQtyPerLine {
		qty = maxQtyPerLine
	}
	for i := range s.lines {
		if s.lines[i].MenuItemID == menuItemID {
			s.lines[i].Qty = qty
			break
		}
	}
	s.persistLocked()
}

func (s *CartStore) RemoveItem(menuItemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(menuItemID)
	s.persistLocked()
}

func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persistLocked()
}

// Lines returns a copy of the current cart lines.
func (s *CartStore) Lines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total is the advisory display total; the server holds price authority.
func (s *CartStore) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, l := range s.lines {
		total += l.Price * int64(l.Qty)
	}
	return total
}

// Count is the sum of quantities across all lines.
func (s *CartStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, l := range s.lines {
		count += l.Qty
	}
	return count
}

func (s *CartStore) removeLocked(menuItemID string) {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.MenuItemID != menuItemID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
}

// persistLocked writes the cart file as a side effect of every mutation.
// Best effort: the cart is display state, an unwritable file must not turn
// menu browsing into an error.
func (s *CartStore) persistLocked() {
	s.dirty = true
	data, err := json.Marshal(s.lines)
	if err != nil {
		return
	}
	_ = os.WriteFile(s.path, data, 0o644)
}
