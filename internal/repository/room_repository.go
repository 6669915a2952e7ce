package repository

import (
	"context"
	"database/sql"

	"github.com/prajwalrk/seatmaster/internal/model"
)

// RoomRepo persists the uploaded room table.  Upload order is kept in
// a position column because room order drives the interleave.
type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

// Replace swaps the whole room table for a new upload.  Uploads are
// whole-table replacements: the room list is small static reference
// data, not an edited resource.
func (r *RoomRepo) Replace(ctx context.Context, rooms []model.Room) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM rooms"); err != nil {
		return err
	}
	for i, room := range rooms {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO rooms (name, start_bench, end_bench, position) VALUES (?,?,?,?)",
			room.Name, room.Start, room.End, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// List returns all rooms in upload order.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT name, start_bench, end_bench FROM rooms ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var m model.Room
		if err := rows.Scan(&m.Name, &m.Start, &m.End); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetByNames resolves the named rooms, preserving the caller's order —
// the selection order is the seating order.  ErrNotFound reports the
// first name with no stored room.
func (r *RoomRepo) GetByNames(ctx context.Context, names []string) ([]model.Room, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoDataset
	}
	byName := make(map[string]model.Room, len(all))
	for _, m := range all {
		byName[m.Name] = m
	}
	out := make([]model.Room, 0, len(names))
	for _, name := range names {
		m, ok := byName[name]
		if !ok {
			return nil, ErrNotFound
		}
		out = append(out, m)
	}
	return out, nil
}
