package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prajwalrk/seatmaster/internal/generator"
	"github.com/prajwalrk/seatmaster/internal/model"
	"github.com/prajwalrk/seatmaster/internal/report"
	"github.com/prajwalrk/seatmaster/internal/repository"
	"github.com/prajwalrk/seatmaster/internal/seating"
)

// RunHandler exposes generation runs: creating one and reading its
// reports back. Runs are immutable, so every GET is a pure read of the
// stored payload.
type RunHandler struct {
	Gen  *generator.Generator
	Runs *repository.RunRepo
}

func NewRunHandler(g *generator.Generator, runs *repository.RunRepo) *RunHandler {
	return &RunHandler{Gen: g, Runs: runs}
}

// CreateRun handles POST /v1/runs. Fatal pipeline conditions map to
// 422, missing datasets to 409, unknown room names to 404.
func (h *RunHandler) CreateRun(c echo.Context) error {
	var req generator.Request
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Day = strings.ToUpper(strings.TrimSpace(req.Day))
	if req.Day == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "day required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 60*time.Second)
	defer cancel()

	run, err := h.Gen.Run(ctx, req)
	if err != nil {
		var capErr *seating.CapacityError
		switch {
		case errors.As(err, &capErr):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":     "students exceed selected room capacity",
				"capacity":  capErr.Capacity,
				"students":  capErr.Students,
				"shortfall": capErr.Shortfall(),
			})
		case errors.Is(err, seating.ErrMissingDayColumn):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error": fmt.Sprintf("day column %q not present in student list", req.Day),
			})
		case errors.Is(err, repository.ErrNoDataset):
			return c.JSON(http.StatusConflict, echo.Map{"error": "required dataset not uploaded"})
		case errors.Is(err, repository.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown room in selection"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generation failed"})
		}
	}
	return c.JSON(http.StatusCreated, run)
}

func (h *RunHandler) loadRun(c echo.Context) (*model.GenerationRun, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid run id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	run, err := h.Runs.Get(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "run not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return run, nil
}

// GetSeating handles GET /v1/runs/:id/seating and returns the bench
// pivot, one row per bench with left/center/right occupants.
func (h *RunHandler) GetSeating(c echo.Context) error {
	run, err := h.loadRun(c)
	if run == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"run_id": run.ID,
		"day":    run.Day,
		"rooms":  run.Rooms,
		"items":  report.Pivot(run.Assignments, run.Rooms),
	})
}

// GetSeatingDetail handles GET /v1/runs/:id/seating/detail and returns
// one row per seat in canonical slot order.
func (h *RunHandler) GetSeatingDetail(c echo.Context) error {
	run, err := h.loadRun(c)
	if run == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"run_id": run.ID,
		"day":    run.Day,
		"items":  report.Detail(run.Assignments),
	})
}

// GetSummary handles GET /v1/runs/:id/summary: per-room student and
// subject summaries plus the warnings collected during the run.
func (h *RunHandler) GetSummary(c echo.Context) error {
	run, err := h.loadRun(c)
	if run == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"run_id":            run.ID,
		"day":               run.Day,
		"rooms":             run.Summaries,
		"unmapped_subjects": run.Unmapped,
		"missing_documents": run.MissingDocs,
		"created_at":        run.CreatedAt,
	})
}

// GetQP handles GET /v1/runs/:id/qp: the per-room question paper
// requirements and the per-code grand totals.
func (h *RunHandler) GetQP(c echo.Context) error {
	run, err := h.loadRun(c)
	if run == nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"run_id":            run.ID,
		"day":               run.Day,
		"requirements":      run.Requirements,
		"grand_totals":      run.GrandTotals,
		"unmapped_subjects": run.Unmapped,
	})
}

// GetBundle handles GET /v1/runs/:id/bundles/:room and streams the
// merged PDF for one room. Rooms whose bundle produced no pages have
// no row, which reads as 404 here.
func (h *RunHandler) GetBundle(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid run id"})
	}
	room := strings.TrimSpace(c.Param("room"))
	if room == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	b, err := h.Runs.GetBundle(ctx, id, room)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "bundle not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("run-%d-%s.pdf", id, b.Room)))
	return c.Blob(http.StatusOK, "application/pdf", b.PDF)
}
