package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/prajwalrk/seatmaster/internal/model"
)

// RunRepo persists generation runs.  The run itself is stored as one
// JSON payload — it is written once, read whole and never updated —
// while room bundles live in their own table so a PDF download does
// not drag the full run out of the database.
type RunRepo struct{ DB *sql.DB }

func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{DB: db} }

// Create stores a finished run and its bundles, assigning the run ID.
func (r *RunRepo) Create(ctx context.Context, run *model.GenerationRun, bundles map[string]model.RoomBundle) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return err
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO runs (day, payload) VALUES (?,?)", run.Day, payload)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	run.ID = uint64(id)
	for _, b := range bundles {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_bundles (run_id, room, pages, pdf) VALUES (?,?,?,?)",
			run.ID, b.Room, b.Pages, b.PDF); err != nil {
			return err
		}
	}
	// Rewrite the payload now that the ID is known; the column is JSON
	// and the run is immutable from here on.
	payload, err = json.Marshal(run)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE runs SET payload=? WHERE id=?", payload, run.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// Get loads a run by ID.
func (r *RunRepo) Get(ctx context.Context, id uint64) (*model.GenerationRun, error) {
	var payload []byte
	err := r.DB.QueryRowContext(ctx,
		"SELECT payload FROM runs WHERE id=?", id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var run model.GenerationRun
	if err := json.Unmarshal(payload, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// GetBundle loads one room's merged PDF for a run.
func (r *RunRepo) GetBundle(ctx context.Context, id uint64, room string) (model.RoomBundle, error) {
	b := model.RoomBundle{Room: room}
	err := r.DB.QueryRowContext(ctx,
		"SELECT pages, pdf FROM run_bundles WHERE run_id=? AND room=?", id, room).
		Scan(&b.Pages, &b.PDF)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, ErrNotFound
		}
		return b, err
	}
	return b, nil
}
