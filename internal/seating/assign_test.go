package seating

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/prajwalrk/seatmaster/internal/model"
)

func mustCatalog(t *testing.T, rooms []model.Room) *Catalog {
	t.Helper()
	cat, err := NewCatalog(rooms)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func roster(n int, day string) model.Roster {
	r := model.Roster{Days: []string{day}}
	for i := 1; i <= n; i++ {
		r.Students = append(r.Students, model.Student{
			ClassNo:  fmt.Sprintf("S%d", i),
			Name:     fmt.Sprintf("Student %d", i),
			Subjects: map[string]string{day: "Math"},
		})
	}
	return r
}

func TestNewCatalogValidation(t *testing.T) {
	cases := []struct {
		name  string
		rooms []model.Room
	}{
		{"duplicate name", []model.Room{{Name: "A", Start: 1, End: 2}, {Name: "A", Start: 1, End: 1}}},
		{"start below one", []model.Room{{Name: "A", Start: 0, End: 2}}},
		{"end before start", []model.Room{{Name: "A", Start: 3, End: 2}}},
		{"empty name", []model.Room{{Name: "", Start: 1, End: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCatalog(tc.rooms); err == nil {
				t.Fatalf("expected error for %v", tc.rooms)
			}
		})
	}
}

func TestSlotsInterleaveAcrossRooms(t *testing.T) {
	cat := mustCatalog(t, []model.Room{
		{Name: "A", Start: 1, End: 2},
		{Name: "B", Start: 1, End: 1},
	})
	got := cat.Slots()
	want := []model.SeatSlot{
		{Room: "A", Bench: 1, Side: model.SideLeft},
		{Room: "A", Bench: 1, Side: model.SideCenter},
		{Room: "A", Bench: 1, Side: model.SideRight},
		{Room: "B", Bench: 1, Side: model.SideLeft},
		{Room: "B", Bench: 1, Side: model.SideCenter},
		{Room: "B", Bench: 1, Side: model.SideRight},
		{Room: "A", Bench: 2, Side: model.SideLeft},
		{Room: "A", Bench: 2, Side: model.SideCenter},
		{Room: "A", Bench: 2, Side: model.SideRight},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slot order mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestSlotsRespectBenchOffsets(t *testing.T) {
	// Room C starts at bench 5; its offset-0 bench is bench 5, so it
	// interleaves with A's bench 1 in the first pass.
	cat := mustCatalog(t, []model.Room{
		{Name: "A", Start: 1, End: 1},
		{Name: "C", Start: 5, End: 6},
	})
	slots := cat.Slots()
	if slots[3].Room != "C" || slots[3].Bench != 5 {
		t.Fatalf("expected C bench 5 after A bench 1, got %+v", slots[3])
	}
	last := slots[len(slots)-1]
	if last.Room != "C" || last.Bench != 6 || last.Side != model.SideRight {
		t.Fatalf("expected C-6-Right last, got %+v", last)
	}
}

func TestAssignPlacesEveryStudentOnce(t *testing.T) {
	cat := mustCatalog(t, []model.Room{
		{Name: "A", Start: 1, End: 2},
		{Name: "B", Start: 1, End: 1},
	})
	got, err := Assign(cat, roster(7, "DAY1"), "DAY1")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if len(got) != cat.Capacity() {
		t.Fatalf("expected %d assignments, got %d", cat.Capacity(), len(got))
	}
	seen := make(map[string]bool)
	occupied := 0
	for _, a := range got {
		if a.Occupied() {
			occupied++
			if seen[a.ClassNo] {
				t.Fatalf("student %s placed twice", a.ClassNo)
			}
			seen[a.ClassNo] = true
		}
	}
	if occupied != 7 {
		t.Fatalf("expected 7 seated students, got %d", occupied)
	}
	// S1..S6 fill bench 1 of A then B; S7 takes A bench 2 Left and the
	// remaining two A-bench-2 slots trail empty.
	if got[6].ClassNo != "S7" || got[6].Slot != (model.SeatSlot{Room: "A", Bench: 2, Side: model.SideLeft}) {
		t.Fatalf("S7 misplaced: %+v", got[6])
	}
	if got[7].Occupied() || got[8].Occupied() {
		t.Fatalf("trailing slots should be empty: %+v %+v", got[7], got[8])
	}
}

func TestAssignDeterministic(t *testing.T) {
	cat := mustCatalog(t, []model.Room{{Name: "A", Start: 1, End: 3}, {Name: "B", Start: 2, End: 4}})
	r := roster(11, "DAY2")
	first, err := Assign(cat, r, "DAY2")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	second, err := Assign(cat, r, "DAY2")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs produced different seatings")
	}
}

func TestAssignCapacityExceeded(t *testing.T) {
	cat := mustCatalog(t, []model.Room{{Name: "A", Start: 1, End: 1}})
	got, err := Assign(cat, roster(5, "DAY1"), "DAY1")
	if got != nil {
		t.Fatalf("expected no partial seating, got %d assignments", len(got))
	}
	var ce *CapacityError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CapacityError, got %v", err)
	}
	if ce.Shortfall() != 2 {
		t.Fatalf("expected shortfall 2, got %d", ce.Shortfall())
	}
}

func TestAssignMissingDayColumn(t *testing.T) {
	cat := mustCatalog(t, []model.Room{{Name: "A", Start: 1, End: 2}})
	_, err := Assign(cat, roster(3, "DAY1"), "DAY9")
	if !errors.Is(err, ErrMissingDayColumn) {
		t.Fatalf("expected ErrMissingDayColumn, got %v", err)
	}
}

func TestAssignNormalizesAndSplitsSubjects(t *testing.T) {
	cat := mustCatalog(t, []model.Room{{Name: "A", Start: 1, End: 1}})
	r := model.Roster{
		Days: []string{"DAY1"},
		Students: []model.Student{
			{ClassNo: "S1", Name: "One", Subjects: map[string]string{"DAY1": " math , Physics"}},
			{ClassNo: "S2", Name: "Two", Subjects: map[string]string{"DAY1": ""}},
		},
	}
	got, err := Assign(cat, r, "DAY1")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if !reflect.DeepEqual(got[0].Subjects, []string{"MATH", "PHYSICS"}) {
		t.Fatalf("subjects not normalized: %v", got[0].Subjects)
	}
	if got[1].Subjects != nil {
		t.Fatalf("blank cell should yield no subjects, got %v", got[1].Subjects)
	}
	if !got[1].Occupied() {
		t.Fatal("student with blank cell is still seated")
	}
}
