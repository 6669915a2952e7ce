// Package bundle assembles the deliverable question-paper PDF for each
// room: every QP code the room needs, repeated once per seat needing
// it, concatenated in the order the aggregation produced the codes.
package bundle

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/prajwalrk/seatmaster/internal/model"
	"github.com/prajwalrk/seatmaster/internal/pdf"
	"github.com/prajwalrk/seatmaster/internal/subject"
)

// Lookup resolves a QP code to its uploaded document.  Implementations
// must be safe for concurrent reads.
type Lookup interface {
	Get(code string) (pdf.Document, bool)
}

// DocSet is a plain in-memory Lookup keyed by normalized code, so
// matching is case-insensitive at a single boundary.
type DocSet map[string]pdf.Document

// Get resolves a code after normalizing it the same way the set's keys
// were built.
func (s DocSet) Get(code string) (pdf.Document, bool) {
	d, ok := s[subject.Normalize(code)]
	return d, ok
}

// Assembler builds room bundles.  Merge defaults to pdf.Merge; tests
// substitute a fake to stay off the real engine.
type Assembler struct {
	Merge pdf.MergeFunc
}

func New() *Assembler { return &Assembler{Merge: pdf.Merge} }

// AssembleRoom merges one room's papers into a single document.  Each
// requirement contributes one full copy of its document per seat, in
// requirement order.  A code with no uploaded document yields a
// MissingDocWarning and is skipped; when nothing at all matches, the
// bundle is nil and only warnings are returned.
func (a *Assembler) AssembleRoom(room string, reqs []model.QPRequirement, lookup Lookup) (*model.RoomBundle, []model.MissingDocWarning, error) {
	var docs []pdf.Document
	var missing []model.MissingDocWarning
	for _, req := range reqs {
		if req.Room != room {
			continue
		}
		doc, ok := lookup.Get(req.QPCode)
		if !ok {
			missing = append(missing, model.MissingDocWarning{QPCode: req.QPCode, Room: room})
			continue
		}
		for i := 0; i < req.Count; i++ {
			docs = append(docs, doc)
		}
	}
	if len(docs) == 0 {
		return nil, missing, nil
	}
	merged, err := a.Merge(docs)
	if err != nil {
		return nil, missing, fmt.Errorf("room %s: %w", room, err)
	}
	return &model.RoomBundle{Room: room, PDF: merged.Bytes(), Pages: merged.Pages()}, missing, nil
}

// AssembleAll builds every room's bundle concurrently.  Rooms share no
// state, so each gets its own goroutine; warnings are buffered per
// worker and merged after the join, ordered by room then code.
func (a *Assembler) AssembleAll(reqs []model.QPRequirement, lookup Lookup) (map[string]model.RoomBundle, []model.MissingDocWarning, error) {
	rooms := make([]string, 0)
	seen := make(map[string]bool)
	for _, r := range reqs {
		if !seen[r.Room] {
			seen[r.Room] = true
			rooms = append(rooms, r.Room)
		}
	}

	bundles := make(map[string]model.RoomBundle, len(rooms))
	perRoom := make([][]model.MissingDocWarning, len(rooms))
	var mu sync.Mutex
	var g errgroup.Group
	for i, room := range rooms {
		g.Go(func() error {
			b, missing, err := a.AssembleRoom(room, reqs, lookup)
			if err != nil {
				return err
			}
			perRoom[i] = missing
			if b != nil {
				mu.Lock()
				bundles[room] = *b
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	// Per-worker buffers joined in room order keep warning order
	// deterministic without any cross-goroutine contention.
	var missing []model.MissingDocWarning
	for _, m := range perRoom {
		missing = append(missing, m...)
	}
	return bundles, missing, nil
}
