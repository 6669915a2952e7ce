package model

// Side identifies one of the three positions on a bench.
type Side string

const (
	SideLeft   Side = "Left"
	SideCenter Side = "Center"
	SideRight  Side = "Right"
)

// Sides lists bench positions in canonical filling order.  Every
// traversal of a bench emits its seats in exactly this order.
var Sides = [3]Side{SideLeft, SideCenter, SideRight}

// Room describes an exam room as a contiguous range of benches.
// Each bench seats three students (Left, Center, Right).
//
// Fields:
//  Name  – unique room label within a selected room set.
//  Start – first bench number, >= 1.
//  End   – last bench number, >= Start.
type Room struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Benches returns how many benches the room holds.
func (r Room) Benches() int { return r.End - r.Start + 1 }

// Capacity returns the number of seats in the room (three per bench).
func (r Room) Capacity() int { return r.Benches() * 3 }

// SeatSlot is one physical seat: a room, a bench number and a side.
type SeatSlot struct {
	Room  string `json:"room"`
	Bench int    `json:"bench"`
	Side  Side   `json:"side"`
}
