// Package source reads the uploaded tables the pipeline consumes.  The
// core never inspects file names or extensions: anything that can
// produce a header row plus data rows satisfies TabularSource, and the
// parsers below only see that row-oriented shape.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prajwalrk/seatmaster/internal/model"
	"github.com/prajwalrk/seatmaster/internal/subject"
)

// Table is a parsed row-oriented table: one header row and zero or
// more data rows, all cells as strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Col returns the index of the named column (exact match after
// trimming), or -1.
func (t Table) Col(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

func (t Table) cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// TabularSource produces a Table from some upload format.
type TabularSource interface {
	Read() (Table, error)
}

// CSVSource reads a comma-separated upload.  Rows may have ragged
// lengths; short rows simply read as blank cells.
type CSVSource struct {
	R io.Reader
}

func (s CSVSource) Read() (Table, error) {
	r := csv.NewReader(s.R)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("empty table")
	}
	return Table{Header: records[0], Rows: records[1:]}, nil
}

// ParseRooms builds the room list from a table with columns Room,
// Start, End.  Bench ranges are validated here so a bad upload fails
// fast instead of at generation time.
func ParseRooms(t Table) ([]model.Room, error) {
	cRoom, cStart, cEnd := t.Col("Room"), t.Col("Start"), t.Col("End")
	if cRoom < 0 || cStart < 0 || cEnd < 0 {
		return nil, fmt.Errorf("room table needs Room, Start and End columns")
	}
	seen := make(map[string]bool)
	var rooms []model.Room
	for i, row := range t.Rows {
		name := t.cell(row, cRoom)
		if name == "" {
			continue
		}
		if seen[name] {
			return nil, fmt.Errorf("row %d: duplicate room %q", i+2, name)
		}
		seen[name] = true
		start, err := strconv.Atoi(t.cell(row, cStart))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Start %q", i+2, t.cell(row, cStart))
		}
		end, err := strconv.Atoi(t.cell(row, cEnd))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad End %q", i+2, t.cell(row, cEnd))
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("row %d: invalid bench range %d-%d", i+2, start, end)
		}
		rooms = append(rooms, model.Room{Name: name, Start: start, End: end})
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("room table has no rooms")
	}
	return rooms, nil
}

// ParseRoster builds the student roster.  Required columns are
// "Class No" and "Student Name"; every column whose upper-cased name
// starts with DAY becomes a day column of the roster schema, keeping
// file order.  Row order is preserved — it is the seating order.
func ParseRoster(t Table) (model.Roster, error) {
	cClass, cName := t.Col("Class No"), t.Col("Student Name")
	if cClass < 0 || cName < 0 {
		return model.Roster{}, fmt.Errorf("student list needs Class No and Student Name columns")
	}
	var days []string
	dayCols := make(map[string]int)
	for i, h := range t.Header {
		h = strings.TrimSpace(h)
		if strings.HasPrefix(strings.ToUpper(h), "DAY") {
			days = append(days, h)
			dayCols[h] = i
		}
	}
	seen := make(map[string]bool)
	var students []model.Student
	for i, row := range t.Rows {
		classNo := t.cell(row, cClass)
		if classNo == "" {
			continue
		}
		if seen[classNo] {
			return model.Roster{}, fmt.Errorf("row %d: duplicate class no %q", i+2, classNo)
		}
		seen[classNo] = true
		s := model.Student{
			ClassNo:  classNo,
			Name:     t.cell(row, cName),
			Subjects: make(map[string]string, len(days)),
		}
		for day, col := range dayCols {
			if v := t.cell(row, col); v != "" {
				s.Subjects[day] = v
			}
		}
		students = append(students, s)
	}
	if len(students) == 0 {
		return model.Roster{}, fmt.Errorf("student list has no students")
	}
	return model.Roster{Students: students, Days: days}, nil
}

// ParseQPMap builds the subject→code mapping from a table with
// columns "Subject Name" and "QP Code".  Both sides are normalized so
// casing in either source file can never break a match.
func ParseQPMap(t Table) (map[string]string, error) {
	cSubj, cCode := t.Col("Subject Name"), t.Col("QP Code")
	if cSubj < 0 || cCode < 0 {
		return nil, fmt.Errorf("mapping table needs Subject Name and QP Code columns")
	}
	m := make(map[string]string)
	for _, row := range t.Rows {
		subj := subject.Normalize(t.cell(row, cSubj))
		code := subject.Normalize(t.cell(row, cCode))
		if subj == "" || code == "" {
			continue
		}
		m[subj] = code
	}
	if len(m) == 0 {
		return nil, fmt.Errorf("mapping table has no entries")
	}
	return m, nil
}
