// Package report projects an assignment sequence into the flat tables
// the export layer renders: the room×bench pivot, the detailed seating
// listing, and nothing else — all rows derive directly from the run.
package report

import (
	"strings"

	"github.com/prajwalrk/seatmaster/internal/model"
)

// PivotRow is one bench of the seating plan with the class number in
// each seat position.  Empty seats show "-" like the printed sheets.
type PivotRow struct {
	Room   string `json:"room"`
	Bench  int    `json:"bench"`
	Left   string `json:"left"`
	Center string `json:"center"`
	Right  string `json:"right"`
}

// DetailRow is one seat of the flattened detailed listing.
type DetailRow struct {
	Room     string `json:"room"`
	Bench    int    `json:"bench"`
	Side     string `json:"side"`
	ClassNo  string `json:"class_no"`
	Name     string `json:"name"`
	Subjects string `json:"subjects"`
}

// Pivot folds the slot-ordered assignment sequence into one row per
// (room, bench).  Row order follows first appearance of a bench in
// slot order grouped by room selection order, i.e. rooms in selection
// order, benches ascending.
func Pivot(assignments []model.Assignment, roomOrder []string) []PivotRow {
	type key struct {
		room  string
		bench int
	}
	index := make(map[key]int)
	byRoom := make(map[string][]int, len(roomOrder))
	var rows []PivotRow
	for _, a := range assignments {
		k := key{a.Slot.Room, a.Slot.Bench}
		i, ok := index[k]
		if !ok {
			i = len(rows)
			index[k] = i
			rows = append(rows, PivotRow{Room: k.room, Bench: k.bench, Left: "-", Center: "-", Right: "-"})
			byRoom[k.room] = append(byRoom[k.room], i)
		}
		if !a.Occupied() {
			continue
		}
		switch a.Slot.Side {
		case model.SideLeft:
			rows[i].Left = a.ClassNo
		case model.SideCenter:
			rows[i].Center = a.ClassNo
		case model.SideRight:
			rows[i].Right = a.ClassNo
		}
	}
	// The interleave walks benches across rooms, so regroup per room
	// for display.  Bench order within a room is already ascending.
	out := make([]PivotRow, 0, len(rows))
	for _, room := range roomOrder {
		for _, i := range byRoom[room] {
			out = append(out, rows[i])
		}
	}
	return out
}

// Detail flattens the assignment sequence into one row per seat, in
// canonical slot order.  Empty fields show "-" to match the original
// detailed seating sheet.
func Detail(assignments []model.Assignment) []DetailRow {
	out := make([]DetailRow, len(assignments))
	for i, a := range assignments {
		row := DetailRow{
			Room:     a.Slot.Room,
			Bench:    a.Slot.Bench,
			Side:     string(a.Slot.Side),
			ClassNo:  "-",
			Name:     "-",
			Subjects: "-",
		}
		if a.Occupied() {
			row.ClassNo = a.ClassNo
			row.Name = a.Name
			if len(a.Subjects) > 0 {
				row.Subjects = strings.Join(a.Subjects, ", ")
			}
		}
		out[i] = row
	}
	return out
}
