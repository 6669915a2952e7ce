// Package seating implements the deterministic seat assignment at the
// heart of SeatMaster: students are consumed strictly in upload order
// and placed one-to-one into the interleaved slot sequence built by the
// room catalog.
package seating

import (
	"errors"
	"fmt"

	"github.com/prajwalrk/seatmaster/internal/model"
	"github.com/prajwalrk/seatmaster/internal/subject"
)

// ErrMissingDayColumn is returned when the selected exam day is not a
// column of the roster schema.  This is a schema-level failure and is
// independent of any individual student's cell being blank.
var ErrMissingDayColumn = errors.New("selected day column not present in student list")

// CapacityError reports that the students outnumber the seats of the
// selected rooms.  No partial seating is produced.
type CapacityError struct {
	Capacity int
	Students int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: %d students for %d seats (%d short)",
		e.Students, e.Capacity, e.Shortfall())
}

// Shortfall returns how many students could not be seated.
func (e *CapacityError) Shortfall() int { return e.Students - e.Capacity }

// Assign places every roster student into the catalog's slot sequence
// and resolves each student's subjects from the given day column.  The
// returned sequence has exactly one entry per slot, in canonical slot
// order; trailing slots are left empty when seats outnumber students.
//
// Fatal conditions: *CapacityError when students exceed capacity,
// ErrMissingDayColumn when day is absent from the roster schema.  In
// both cases no assignment sequence is returned.
func Assign(cat *Catalog, roster model.Roster, day string) ([]model.Assignment, error) {
	if !roster.HasDay(day) {
		return nil, fmt.Errorf("%w: %q", ErrMissingDayColumn, day)
	}
	slots := cat.Slots()
	if len(roster.Students) > len(slots) {
		return nil, &CapacityError{Capacity: len(slots), Students: len(roster.Students)}
	}
	out := make([]model.Assignment, len(slots))
	for i, slot := range slots {
		out[i] = model.Assignment{Slot: slot}
		if i >= len(roster.Students) {
			continue
		}
		s := roster.Students[i]
		out[i].ClassNo = s.ClassNo
		out[i].Name = s.Name
		out[i].Subjects = subject.SplitNormalize(s.Subjects[day])
	}
	return out, nil
}
