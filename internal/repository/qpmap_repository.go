package repository

import (
	"context"
	"database/sql"
)

// QPMapRepo persists the subject→QP-code mapping.  Keys and codes are
// stored normalized (the parser already upper-trims both sides), so a
// load returns a map ready for direct lookups.
type QPMapRepo struct{ DB *sql.DB }

func NewQPMapRepo(db *sql.DB) *QPMapRepo { return &QPMapRepo{DB: db} }

// Replace swaps the stored mapping for a new upload.
func (r *QPMapRepo) Replace(ctx context.Context, m map[string]string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM qp_map"); err != nil {
		return err
	}
	for subj, code := range m {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO qp_map (subject, qp_code) VALUES (?,?)", subj, code); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load returns the stored mapping, or ErrNoDataset when empty.
func (r *QPMapRepo) Load(ctx context.Context) (map[string]string, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT subject, qp_code FROM qp_map")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]string)
	for rows.Next() {
		var subj, code string
		if err := rows.Scan(&subj, &code); err != nil {
			return nil, err
		}
		m[subj] = code
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, ErrNoDataset
	}
	return m, nil
}
