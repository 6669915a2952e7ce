package model

// Student is one row of the uploaded student list.  Identity is the
// class number; the record never changes once loaded.
//
// Fields:
//  ClassNo  – unique class number (string, may carry leading zeros).
//  Name     – student name as uploaded.
//  Subjects – raw day-column cells keyed by day label (e.g. "DAY1").
//             A cell may hold several comma-separated subject names
//             when the student sits more than one paper that day.
type Student struct {
	ClassNo  string            `json:"class_no"`
	Name     string            `json:"name"`
	Subjects map[string]string `json:"subjects_by_day"`
}

// Roster is a loaded student list together with its day-column schema.
// Days records every DAY<n> column present in the upload, in file
// order, so a missing column can be told apart from a blank cell.
type Roster struct {
	Students []Student `json:"students"`
	Days     []string  `json:"days"`
}

// HasDay reports whether the roster schema contains the given day column.
func (r Roster) HasDay(day string) bool {
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}
