// Package generator runs the full seating pipeline: load the stored
// datasets, assign seats for the requested day, aggregate question
// paper requirements, assemble per-room PDF bundles and persist the
// result as an immutable run.
package generator

import (
	"context"
	"log"
	"time"

	"github.com/prajwalrk/seatmaster/internal/bundle"
	"github.com/prajwalrk/seatmaster/internal/model"
	"github.com/prajwalrk/seatmaster/internal/pdf"
	"github.com/prajwalrk/seatmaster/internal/qp"
	"github.com/prajwalrk/seatmaster/internal/queue"
	"github.com/prajwalrk/seatmaster/internal/repository"
	"github.com/prajwalrk/seatmaster/internal/seating"
	queue_publisher "github.com/prajwalrk/seatmaster/internal/service"
)

// Request selects which rooms to seat and which day column to read.
// An empty Rooms list means every stored room, in stored order.
type Request struct {
	Day   string   `json:"day"`
	Rooms []string `json:"rooms"`
}

// Generator wires the repositories the pipeline reads and writes.
type Generator struct {
	RoomRepo   *repository.RoomRepo
	RosterRepo *repository.RosterRepo
	QPMapRepo  *repository.QPMapRepo
	QPDocRepo  *repository.QPDocRepo
	RunRepo    *repository.RunRepo

	// Publish sends the completion event. Nil disables publishing,
	// broker errors never fail the run.
	Publish func(ctx context.Context, event queue.GenerationCompletedEvent) error
}

// New returns a Generator over the given database handle with the
// RabbitMQ publisher attached.
func New(rooms *repository.RoomRepo, roster *repository.RosterRepo, qpMap *repository.QPMapRepo, qpDocs *repository.QPDocRepo, runs *repository.RunRepo) *Generator {
	return &Generator{
		RoomRepo:   rooms,
		RosterRepo: roster,
		QPMapRepo:  qpMap,
		QPDocRepo:  qpDocs,
		RunRepo:    runs,
		Publish:    queue_publisher.PublishGenerationCompleted,
	}
}

// Run executes one generation. Fatal conditions surface as errors
// (seating.CapacityError, seating.ErrMissingDayColumn, the repository
// sentinels); recoverable ones end up inside the returned run as
// warning lists. The run and its bundles are committed before the
// completion event is published.
func (g *Generator) Run(ctx context.Context, req Request) (*model.GenerationRun, error) {
	rooms, err := g.selectRooms(ctx, req.Rooms)
	if err != nil {
		return nil, err
	}
	roster, err := g.RosterRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := seating.NewCatalog(rooms)
	if err != nil {
		return nil, err
	}
	assignments, err := seating.Assign(cat, roster, req.Day)
	if err != nil {
		return nil, err
	}

	roomNames := make([]string, len(rooms))
	for i, r := range rooms {
		roomNames[i] = r.Name
	}

	qpMap, err := g.QPMapRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	agg := qp.Aggregate(assignments, qpMap, roomNames)
	summaries := qp.RoomSummaries(assignments, roomNames)

	docs, err := g.loadDocs(ctx)
	if err != nil {
		return nil, err
	}
	bundles, missing, err := bundle.New().AssembleAll(agg.Requirements, docs)
	if err != nil {
		return nil, err
	}

	run := &model.GenerationRun{
		Day:          req.Day,
		Rooms:        roomNames,
		Assignments:  assignments,
		Requirements: agg.Requirements,
		GrandTotals:  agg.GrandTotals,
		Summaries:    summaries,
		Unmapped:     agg.Unmapped,
		MissingDocs:  missing,
		CreatedAt:    time.Now().UTC(),
	}
	if err := g.RunRepo.Create(ctx, run, bundles); err != nil {
		return nil, err
	}

	if g.Publish != nil {
		ev := queue.GenerationCompletedEvent{
			RunID:            run.ID,
			Day:              run.Day,
			Rooms:            run.Rooms,
			Students:         seated(assignments),
			Capacity:         cat.Capacity(),
			QPCodes:          len(run.GrandTotals),
			UnmappedSubjects: len(run.Unmapped),
			MissingDocuments: len(run.MissingDocs),
			GeneratedAt:      run.CreatedAt.Format(time.RFC3339),
		}
		if err := g.Publish(ctx, ev); err != nil {
			log.Printf("generator: publish completion event for run %d failed: %v", run.ID, err)
		}
	}
	return run, nil
}

// selectRooms resolves the requested room names against storage,
// preserving request order. An empty request means all rooms in
// stored order.
func (g *Generator) selectRooms(ctx context.Context, names []string) ([]model.Room, error) {
	if len(names) == 0 {
		rooms, err := g.RoomRepo.List(ctx)
		if err != nil {
			return nil, err
		}
		if len(rooms) == 0 {
			return nil, repository.ErrNoDataset
		}
		return rooms, nil
	}
	return g.RoomRepo.GetByNames(ctx, names)
}

// loadDocs rehydrates every stored question paper into a lookup set.
// Page counts were resolved at upload, so nothing is re-parsed here.
func (g *Generator) loadDocs(ctx context.Context) (bundle.DocSet, error) {
	stored, err := g.QPDocRepo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	set := make(bundle.DocSet, len(stored))
	for code, d := range stored {
		set[code] = pdf.Stored(d.Data, d.Pages)
	}
	return set, nil
}

func seated(assignments []model.Assignment) int {
	n := 0
	for _, a := range assignments {
		if a.Occupied() {
			n++
		}
	}
	return n
}
