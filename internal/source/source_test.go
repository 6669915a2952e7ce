package source

import (
	"reflect"
	"strings"
	"testing"

	"github.com/prajwalrk/seatmaster/internal/model"
)

func readCSV(t *testing.T, csv string) Table {
	t.Helper()
	tbl, err := CSVSource{R: strings.NewReader(csv)}.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	return tbl
}

func TestParseRooms(t *testing.T) {
	tbl := readCSV(t, "Room,Start,End\nHall A,1,10\nHall B,5,8\n")
	rooms, err := ParseRooms(tbl)
	if err != nil {
		t.Fatalf("ParseRooms: %v", err)
	}
	want := []model.Room{{Name: "Hall A", Start: 1, End: 10}, {Name: "Hall B", Start: 5, End: 8}}
	if !reflect.DeepEqual(rooms, want) {
		t.Fatalf("rooms mismatch: %+v", rooms)
	}
	if rooms[0].Capacity() != 30 {
		t.Fatalf("capacity: got %d, want 30", rooms[0].Capacity())
	}
}

func TestParseRoomsRejectsBadRows(t *testing.T) {
	cases := []string{
		"Room,Start,End\nA,0,5\n",      // start below 1
		"Room,Start,End\nA,6,5\n",      // end before start
		"Room,Start,End\nA,1,2\nA,1,2\n", // duplicate name
		"Room,Start,End\nA,x,5\n",      // non-numeric
		"Name,From,To\nA,1,5\n",        // wrong columns
	}
	for _, csv := range cases {
		if _, err := ParseRooms(readCSV(t, csv)); err == nil {
			t.Errorf("expected error for %q", csv)
		}
	}
}

func TestParseRosterDetectsDayColumns(t *testing.T) {
	tbl := readCSV(t, "Class No,Student Name,DAY1,DAY2\n101,Asha,Math,Physics\n102,Ravi,\"Math, Chemistry\",\n")
	r, err := ParseRoster(tbl)
	if err != nil {
		t.Fatalf("ParseRoster: %v", err)
	}
	if !reflect.DeepEqual(r.Days, []string{"DAY1", "DAY2"}) {
		t.Fatalf("days mismatch: %v", r.Days)
	}
	if len(r.Students) != 2 || r.Students[0].ClassNo != "101" {
		t.Fatalf("students mismatch: %+v", r.Students)
	}
	if r.Students[1].Subjects["DAY1"] != "Math, Chemistry" {
		t.Fatalf("raw cell should be preserved: %q", r.Students[1].Subjects["DAY1"])
	}
	if _, ok := r.Students[1].Subjects["DAY2"]; ok {
		t.Fatal("blank cell should not be stored")
	}
	if !r.HasDay("DAY2") || r.HasDay("DAY3") {
		t.Fatal("HasDay misreports the schema")
	}
}

func TestParseRosterRejectsDuplicates(t *testing.T) {
	tbl := readCSV(t, "Class No,Student Name,DAY1\n101,Asha,Math\n101,Ravi,Math\n")
	if _, err := ParseRoster(tbl); err == nil {
		t.Fatal("expected duplicate class no error")
	}
}

func TestParseQPMapNormalizesBothSides(t *testing.T) {
	tbl := readCSV(t, "Subject Name,QP Code\n math ,qp01\nPHYSICS, QP02 \n")
	m, err := ParseQPMap(tbl)
	if err != nil {
		t.Fatalf("ParseQPMap: %v", err)
	}
	want := map[string]string{"MATH": "QP01", "PHYSICS": "QP02"}
	if !reflect.DeepEqual(m, want) {
		t.Fatalf("map mismatch: %v", m)
	}
}

func TestCSVSourceRaggedRows(t *testing.T) {
	tbl := readCSV(t, "Room,Start,End\nA,1,3\nB,2\n")
	if _, err := ParseRooms(tbl); err == nil {
		t.Fatal("short row should fail End parsing")
	}
}
