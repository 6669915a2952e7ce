package repository

import (
	"context"
	"database/sql"

	"github.com/prajwalrk/seatmaster/internal/model"
)

// RosterRepo persists the uploaded student list.  Students keep their
// upload position (the seating order), day labels are stored as their
// own rows so the schema survives even when every cell for a day is
// blank, and subject cells are stored raw — normalization happens at
// assignment time, at the single matching boundary.
type RosterRepo struct{ DB *sql.DB }

func NewRosterRepo(db *sql.DB) *RosterRepo { return &RosterRepo{DB: db} }

// Replace swaps the stored roster for a new upload.
func (r *RosterRepo) Replace(ctx context.Context, roster model.Roster) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, q := range []string{
		"DELETE FROM student_subjects",
		"DELETE FROM students",
		"DELETE FROM roster_days",
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	for i, day := range roster.Days {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO roster_days (day_label, position) VALUES (?,?)", day, i); err != nil {
			return err
		}
	}
	for i, s := range roster.Students {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO students (class_no, student_name, position) VALUES (?,?,?)",
			s.ClassNo, s.Name, i); err != nil {
			return err
		}
		for _, day := range roster.Days {
			cell, ok := s.Subjects[day]
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO student_subjects (class_no, day_label, subject) VALUES (?,?,?)",
				s.ClassNo, day, cell); err != nil {
				return err
			}
		}
	}
	return tx.Commit()
}

// Load returns the stored roster in upload order, or ErrNoDataset when
// no student list has been uploaded.
func (r *RosterRepo) Load(ctx context.Context) (model.Roster, error) {
	var roster model.Roster

	days, err := r.Days(ctx)
	if err != nil {
		return roster, err
	}
	roster.Days = days

	rows, err := r.DB.QueryContext(ctx,
		"SELECT class_no, student_name FROM students ORDER BY position")
	if err != nil {
		return roster, err
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ClassNo, &s.Name); err != nil {
			return roster, err
		}
		s.Subjects = make(map[string]string)
		index[s.ClassNo] = len(roster.Students)
		roster.Students = append(roster.Students, s)
	}
	if err := rows.Err(); err != nil {
		return roster, err
	}
	if len(roster.Students) == 0 {
		return roster, ErrNoDataset
	}

	cells, err := r.DB.QueryContext(ctx,
		"SELECT class_no, day_label, subject FROM student_subjects")
	if err != nil {
		return roster, err
	}
	defer cells.Close()
	for cells.Next() {
		var classNo, day, subj string
		if err := cells.Scan(&classNo, &day, &subj); err != nil {
			return roster, err
		}
		if i, ok := index[classNo]; ok {
			roster.Students[i].Subjects[day] = subj
		}
	}
	return roster, cells.Err()
}

// Days returns the roster's day-column labels in upload order.
func (r *RosterRepo) Days(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT day_label FROM roster_days ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}
