package seating

import (
	"fmt"

	"github.com/prajwalrk/seatmaster/internal/model"
)

// Catalog holds an ordered set of rooms selected for a run.  The order
// is the caller's selection order and is significant: it fixes the
// interleave traversal and therefore the canonical slot sequence.
type Catalog struct {
	rooms []model.Room
}

// NewCatalog validates the room set and returns a Catalog.  Room names
// must be unique within the set and every bench range must satisfy
// end >= start >= 1.
func NewCatalog(rooms []model.Room) (*Catalog, error) {
	seen := make(map[string]bool, len(rooms))
	for _, r := range rooms {
		if r.Name == "" {
			return nil, fmt.Errorf("room with empty name")
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("duplicate room %q", r.Name)
		}
		seen[r.Name] = true
		if r.Start < 1 || r.End < r.Start {
			return nil, fmt.Errorf("room %q: invalid bench range %d-%d", r.Name, r.Start, r.End)
		}
	}
	return &Catalog{rooms: rooms}, nil
}

// Rooms returns the rooms in selection order.
func (c *Catalog) Rooms() []model.Room { return c.rooms }

// Capacity returns the total seat count across all rooms.
func (c *Catalog) Capacity() int {
	total := 0
	for _, r := range c.rooms {
		total += r.Capacity()
	}
	return total
}

// Slots builds the full ordered slot sequence by interleaving: bench
// offset 0 of every room first (in selection order), then bench offset
// 1, and so on until the deepest room is exhausted.  Each bench emits
// its three seats Left, Center, Right.  Consecutive students therefore
// spread across rooms instead of clustering in one.
func (c *Catalog) Slots() []model.SeatSlot {
	maxBenches := 0
	for _, r := range c.rooms {
		if n := r.Benches(); n > maxBenches {
			maxBenches = n
		}
	}
	slots := make([]model.SeatSlot, 0, c.Capacity())
	for b := 0; b < maxBenches; b++ {
		for _, r := range c.rooms {
			if b >= r.Benches() {
				continue
			}
			for _, side := range model.Sides {
				slots = append(slots, model.SeatSlot{Room: r.Name, Bench: r.Start + b, Side: side})
			}
		}
	}
	return slots
}
