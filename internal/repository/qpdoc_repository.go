package repository

import (
	"context"
	"database/sql"
	"time"
)

// QPDoc is one uploaded question-paper PDF.  Code is the upper-trimmed
// base name of the uploaded file; Data is omitted in listings.
type QPDoc struct {
	Code       string    `json:"code"`
	Pages      int       `json:"pages"`
	Data       []byte    `json:"-"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// QPDocRepo persists uploaded question-paper PDFs keyed by code.
// Re-uploading a code replaces the previous document.
type QPDocRepo struct{ DB *sql.DB }

func NewQPDocRepo(db *sql.DB) *QPDocRepo { return &QPDocRepo{DB: db} }

// Upsert stores or replaces the document for a code.
func (r *QPDocRepo) Upsert(ctx context.Context, code string, pages int, data []byte) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO qp_docs (code, pages, data) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE pages=VALUES(pages), data=VALUES(data)`,
		code, pages, data)
	return err
}

// List returns code and page count for every stored document, without
// the PDF bytes.
func (r *QPDocRepo) List(ctx context.Context) ([]QPDoc, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT code, pages, uploaded_at FROM qp_docs ORDER BY code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QPDoc
	for rows.Next() {
		var d QPDoc
		if err := rows.Scan(&d.Code, &d.Pages, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// LoadAll returns every stored document with its bytes, keyed by code.
func (r *QPDocRepo) LoadAll(ctx context.Context) (map[string]QPDoc, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT code, pages, data FROM qp_docs")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]QPDoc)
	for rows.Next() {
		var d QPDoc
		if err := rows.Scan(&d.Code, &d.Pages, &d.Data); err != nil {
			return nil, err
		}
		out[d.Code] = d
	}
	return out, rows.Err()
}
