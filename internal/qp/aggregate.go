// Package qp turns a seating result into per-room question-paper
// requirements: which QP codes a room needs, for which seats, and in
// what quantity.  Subjects with no mapping are reported as warnings and
// excluded from the totals; a bad mapping never aborts the run.
package qp

import (
	"sort"
	"sync"

	"github.com/prajwalrk/seatmaster/internal/model"
)

// Result is the full aggregation output.  Requirements are ordered by
// room (selection order) and, within a room, by first-encountered QP
// code; seat lists keep canonical slot order.  GrandTotals sums each
// code across rooms, sorted by code.
type Result struct {
	Requirements []model.QPRequirement
	GrandTotals  []model.CodeTotal
	Unmapped     []model.UnmappedSubjectWarning
}

// roomResult is one worker's output, merged after join.
type roomResult struct {
	reqs     []model.QPRequirement
	unmapped []model.UnmappedSubjectWarning
}

// Aggregate groups non-empty assignments by (room, qp_code) using the
// given subject→code mapping.  Rooms are independent, so each is
// aggregated by its own goroutine; per-room buffers are merged back in
// room order, keeping the output deterministic.  Mapping keys must be
// normalized; assignment subjects already are.
func Aggregate(assignments []model.Assignment, qpMap map[string]string, roomOrder []string) Result {
	byRoom := make(map[string][]model.Assignment, len(roomOrder))
	for _, a := range assignments {
		byRoom[a.Slot.Room] = append(byRoom[a.Slot.Room], a)
	}

	results := make([]roomResult, len(roomOrder))
	var wg sync.WaitGroup
	for i, room := range roomOrder {
		wg.Add(1)
		go func(i int, room string) {
			defer wg.Done()
			results[i] = aggregateRoom(room, byRoom[room], qpMap)
		}(i, room)
	}
	wg.Wait()

	var out Result
	totals := make(map[string]int)
	for _, rr := range results {
		out.Requirements = append(out.Requirements, rr.reqs...)
		out.Unmapped = append(out.Unmapped, rr.unmapped...)
		for _, req := range rr.reqs {
			totals[req.QPCode] += req.Count
		}
	}
	for code, n := range totals {
		out.GrandTotals = append(out.GrandTotals, model.CodeTotal{QPCode: code, Count: n})
	}
	sort.Slice(out.GrandTotals, func(i, j int) bool {
		return out.GrandTotals[i].QPCode < out.GrandTotals[j].QPCode
	})
	return out
}

// aggregateRoom walks one room's assignments in slot order and buckets
// seats per QP code, codes in first-encountered order (not re-sorted).
func aggregateRoom(room string, assignments []model.Assignment, qpMap map[string]string) roomResult {
	var rr roomResult
	index := make(map[string]int)
	for _, a := range assignments {
		if !a.Occupied() {
			continue
		}
		for _, subj := range a.Subjects {
			code, ok := qpMap[subj]
			if !ok {
				rr.unmapped = append(rr.unmapped, model.UnmappedSubjectWarning{Subject: subj, Room: room})
				continue
			}
			i, ok := index[code]
			if !ok {
				i = len(rr.reqs)
				index[code] = i
				rr.reqs = append(rr.reqs, model.QPRequirement{Room: room, QPCode: code})
			}
			rr.reqs[i].Seats = append(rr.reqs[i].Seats, a.Slot)
			rr.reqs[i].Count++
		}
	}
	return rr
}

// RoomSummaries builds the per-room summary table: seated student count
// plus the sorted distinct subjects appearing in the room.
func RoomSummaries(assignments []model.Assignment, roomOrder []string) []model.RoomSummary {
	type acc struct {
		students int
		subjects map[string]bool
	}
	accs := make(map[string]*acc, len(roomOrder))
	for _, room := range roomOrder {
		accs[room] = &acc{subjects: make(map[string]bool)}
	}
	for _, a := range assignments {
		ac := accs[a.Slot.Room]
		if ac == nil || !a.Occupied() {
			continue
		}
		ac.students++
		for _, s := range a.Subjects {
			ac.subjects[s] = true
		}
	}
	out := make([]model.RoomSummary, 0, len(roomOrder))
	for _, room := range roomOrder {
		ac := accs[room]
		subjects := make([]string, 0, len(ac.subjects))
		for s := range ac.subjects {
			subjects = append(subjects, s)
		}
		sort.Strings(subjects)
		out = append(out, model.RoomSummary{Room: room, Students: ac.students, Subjects: subjects})
	}
	return out
}
