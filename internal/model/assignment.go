package model

// Assignment binds one seat slot to at most one student.  A generation
// run produces exactly one Assignment per slot, in canonical slot order
// (bench-major interleave across rooms, sides Left/Center/Right), and
// the sequence is never mutated afterwards; regenerating replaces it
// wholesale.
//
// Fields:
//  Slot     – the physical seat.
//  ClassNo  – class number of the seated student, empty when the seat is free.
//  Name     – student name, empty when the seat is free.
//  Subjects – normalized subjects the student sits this day (one per
//             comma-separated entry in the day cell; may be empty even
//             for an occupied seat when the cell was blank).
type Assignment struct {
	Slot     SeatSlot `json:"slot"`
	ClassNo  string   `json:"class_no,omitempty"`
	Name     string   `json:"name,omitempty"`
	Subjects []string `json:"subjects,omitempty"`
}

// Occupied reports whether a student sits in this slot.
func (a Assignment) Occupied() bool { return a.ClassNo != "" }
