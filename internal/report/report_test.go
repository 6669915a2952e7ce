package report

import (
	"reflect"
	"testing"

	"github.com/prajwalrk/seatmaster/internal/model"
	"github.com/prajwalrk/seatmaster/internal/seating"
)

func testAssignments(t *testing.T) []model.Assignment {
	t.Helper()
	cat, err := seating.NewCatalog([]model.Room{
		{Name: "A", Start: 1, End: 2},
		{Name: "B", Start: 1, End: 1},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	r := model.Roster{Days: []string{"DAY1"}}
	for _, s := range []struct{ no, subj string }{
		{"S1", "Math"}, {"S2", "Math"}, {"S3", "Physics"},
		{"S4", "Math"}, {"S5", ""}, {"S6", "Physics"}, {"S7", "Math"},
	} {
		r.Students = append(r.Students, model.Student{
			ClassNo: s.no, Name: "Name " + s.no,
			Subjects: map[string]string{"DAY1": s.subj},
		})
	}
	a, err := seating.Assign(cat, r, "DAY1")
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	return a
}

func TestPivotGroupsBenchesPerRoom(t *testing.T) {
	got := Pivot(testAssignments(t), []string{"A", "B"})
	want := []PivotRow{
		{Room: "A", Bench: 1, Left: "S1", Center: "S2", Right: "S3"},
		{Room: "A", Bench: 2, Left: "S7", Center: "-", Right: "-"},
		{Room: "B", Bench: 1, Left: "S4", Center: "S5", Right: "S6"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pivot mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestDetailKeepsSlotOrder(t *testing.T) {
	rows := Detail(testAssignments(t))
	if len(rows) != 9 {
		t.Fatalf("expected 9 rows, got %d", len(rows))
	}
	// Slot order interleaves: A bench 1, B bench 1, A bench 2.
	if rows[3].Room != "B" || rows[3].ClassNo != "S4" {
		t.Fatalf("row 3 should be B/S4, got %+v", rows[3])
	}
	if rows[4].Subjects != "-" {
		t.Fatalf("blank day cell should render as '-', got %q", rows[4].Subjects)
	}
	last := rows[8]
	if last.ClassNo != "-" || last.Name != "-" || last.Subjects != "-" {
		t.Fatalf("empty seat should render as dashes, got %+v", last)
	}
}
