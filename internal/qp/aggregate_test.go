package qp

import (
	"reflect"
	"testing"

	"github.com/prajwalrk/seatmaster/internal/model"
)

func seat(room string, bench int, side model.Side) model.SeatSlot {
	return model.SeatSlot{Room: room, Bench: bench, Side: side}
}

func occupied(slot model.SeatSlot, classNo string, subjects ...string) model.Assignment {
	return model.Assignment{Slot: slot, ClassNo: classNo, Name: "N " + classNo, Subjects: subjects}
}

func TestAggregateGroupsByRoomAndCode(t *testing.T) {
	qpMap := map[string]string{"MATH": "QP01", "PHYSICS": "QP02"}
	assignments := []model.Assignment{
		occupied(seat("A", 1, model.SideLeft), "S1", "MATH"),
		occupied(seat("A", 1, model.SideCenter), "S2", "PHYSICS"),
		occupied(seat("B", 1, model.SideLeft), "S3", "MATH"),
		occupied(seat("A", 2, model.SideLeft), "S4", "MATH"),
		{Slot: seat("A", 2, model.SideCenter)}, // empty seat
	}
	res := Aggregate(assignments, qpMap, []string{"A", "B"})

	want := []model.QPRequirement{
		{Room: "A", QPCode: "QP01", Seats: []model.SeatSlot{seat("A", 1, model.SideLeft), seat("A", 2, model.SideLeft)}, Count: 2},
		{Room: "A", QPCode: "QP02", Seats: []model.SeatSlot{seat("A", 1, model.SideCenter)}, Count: 1},
		{Room: "B", QPCode: "QP01", Seats: []model.SeatSlot{seat("B", 1, model.SideLeft)}, Count: 1},
	}
	if !reflect.DeepEqual(res.Requirements, want) {
		t.Fatalf("requirements mismatch:\n got %+v\nwant %+v", res.Requirements, want)
	}
	wantTotals := []model.CodeTotal{{QPCode: "QP01", Count: 3}, {QPCode: "QP02", Count: 1}}
	if !reflect.DeepEqual(res.GrandTotals, wantTotals) {
		t.Fatalf("grand totals mismatch: %+v", res.GrandTotals)
	}
	if len(res.Unmapped) != 0 {
		t.Fatalf("unexpected warnings: %+v", res.Unmapped)
	}
}

func TestAggregateCaseVariantsLandTogether(t *testing.T) {
	// "Math " and "MATH" normalize at assignment time; both map to QP01.
	qpMap := map[string]string{"MATH": "QP01"}
	assignments := []model.Assignment{
		occupied(seat("A", 1, model.SideLeft), "S1", "MATH"),
		occupied(seat("A", 1, model.SideCenter), "S2", "MATH"),
	}
	res := Aggregate(assignments, qpMap, []string{"A"})
	if len(res.Requirements) != 1 || res.Requirements[0].Count != 2 {
		t.Fatalf("expected one (A, QP01) group with 2 seats, got %+v", res.Requirements)
	}
}

func TestAggregateUnmappedSubject(t *testing.T) {
	qpMap := map[string]string{"MATH": "QP01"}
	assignments := []model.Assignment{
		occupied(seat("A", 1, model.SideLeft), "S1", "MATH"),
		occupied(seat("A", 1, model.SideCenter), "S2", "PHYSICS"),
	}
	res := Aggregate(assignments, qpMap, []string{"A"})
	if len(res.Requirements) != 1 || res.Requirements[0].Count != 1 {
		t.Fatalf("unmapped subject leaked into requirements: %+v", res.Requirements)
	}
	want := []model.UnmappedSubjectWarning{{Subject: "PHYSICS", Room: "A"}}
	if !reflect.DeepEqual(res.Unmapped, want) {
		t.Fatalf("warnings mismatch: %+v", res.Unmapped)
	}
}

// Every seated subject entry either lands in a requirement group or
// yields exactly one warning.
func TestAggregateConservation(t *testing.T) {
	qpMap := map[string]string{"MATH": "QP01", "CHEMISTRY": "QP03"}
	assignments := []model.Assignment{
		occupied(seat("A", 1, model.SideLeft), "S1", "MATH", "CHEMISTRY"),
		occupied(seat("B", 1, model.SideLeft), "S2", "HISTORY"),
		occupied(seat("B", 1, model.SideCenter), "S3", "MATH"),
		{Slot: seat("B", 1, model.SideRight)},
	}
	entries := 0
	for _, a := range assignments {
		entries += len(a.Subjects)
	}
	res := Aggregate(assignments, qpMap, []string{"A", "B"})
	grouped := 0
	for _, r := range res.Requirements {
		if r.Count != len(r.Seats) {
			t.Fatalf("count/seat mismatch in %+v", r)
		}
		grouped += r.Count
	}
	if grouped+len(res.Unmapped) != entries {
		t.Fatalf("conservation broken: %d grouped + %d warnings != %d entries",
			grouped, len(res.Unmapped), entries)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	qpMap := map[string]string{"MATH": "QP01", "PHYSICS": "QP02", "CHEMISTRY": "QP03"}
	var assignments []model.Assignment
	subjects := []string{"MATH", "PHYSICS", "CHEMISTRY"}
	rooms := []string{"A", "B", "C", "D"}
	for i := 0; i < 48; i++ {
		room := rooms[i%len(rooms)]
		assignments = append(assignments,
			occupied(seat(room, i/len(rooms)+1, model.Sides[i%3]), "S"+room, subjects[i%3]))
	}
	first := Aggregate(assignments, qpMap, rooms)
	for i := 0; i < 10; i++ {
		if got := Aggregate(assignments, qpMap, rooms); !reflect.DeepEqual(got, first) {
			t.Fatal("aggregation output varies across runs")
		}
	}
}

func TestRoomSummaries(t *testing.T) {
	assignments := []model.Assignment{
		occupied(seat("A", 1, model.SideLeft), "S1", "MATH"),
		occupied(seat("A", 1, model.SideCenter), "S2", "PHYSICS", "MATH"),
		{Slot: seat("A", 1, model.SideRight)},
		occupied(seat("B", 1, model.SideLeft), "S3"),
	}
	got := RoomSummaries(assignments, []string{"A", "B"})
	want := []model.RoomSummary{
		{Room: "A", Students: 2, Subjects: []string{"MATH", "PHYSICS"}},
		{Room: "B", Students: 1, Subjects: []string{}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("summaries mismatch:\n got %+v\nwant %+v", got, want)
	}
}
