package handler

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prajwalrk/seatmaster/internal/config"
	"github.com/prajwalrk/seatmaster/internal/pdf"
	"github.com/prajwalrk/seatmaster/internal/repository"
	"github.com/prajwalrk/seatmaster/internal/source"
	"github.com/prajwalrk/seatmaster/internal/subject"
)

// DatasetHandler covers the upload and inspection endpoints for the
// three CSV datasets (rooms, student list, QP mapping) and the question
// paper PDFs. Every upload replaces the previous dataset wholesale;
// there is no row-level editing.
type DatasetHandler struct {
	Cfg    config.Config
	Rooms  *repository.RoomRepo
	Roster *repository.RosterRepo
	QPMap  *repository.QPMapRepo
	QPDocs *repository.QPDocRepo
}

func NewDatasetHandler(cfg config.Config, rooms *repository.RoomRepo, roster *repository.RosterRepo, qpMap *repository.QPMapRepo, qpDocs *repository.QPDocRepo) *DatasetHandler {
	return &DatasetHandler{Cfg: cfg, Rooms: rooms, Roster: roster, QPMap: qpMap, QPDocs: qpDocs}
}

// readTable reads the uploaded CSV, either from a multipart "file"
// field or from the raw request body, capped at MaxUploadBytes.
func (h *DatasetHandler) readTable(c echo.Context) (source.Table, error) {
	var r io.Reader
	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return source.Table{}, err
		}
		defer f.Close()
		r = io.LimitReader(f, h.Cfg.MaxUploadBytes)
	} else {
		r = http.MaxBytesReader(c.Response(), c.Request().Body, h.Cfg.MaxUploadBytes)
	}
	return source.CSVSource{R: r}.Read()
}

func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 10*time.Second)
}

// UploadRooms handles POST /v1/rooms.
func (h *DatasetHandler) UploadRooms(c echo.Context) error {
	t, err := h.readTable(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid csv"})
	}
	rooms, err := source.ParseRooms(t)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Rooms.Replace(ctx, rooms); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save rooms failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"rooms": len(rooms)})
}

// ListRooms handles GET /v1/rooms.
func (h *DatasetHandler) ListRooms(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(rooms), "items": rooms})
}

// UploadRoster handles POST /v1/students.
func (h *DatasetHandler) UploadRoster(c echo.Context) error {
	t, err := h.readTable(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid csv"})
	}
	roster, err := source.ParseRoster(t)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.Roster.Replace(ctx, roster); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save students failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"students": len(roster.Students),
		"days":     roster.Days,
	})
}

// GetRoster handles GET /v1/students.
func (h *DatasetHandler) GetRoster(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	roster, err := h.Roster.Load(ctx)
	if err != nil {
		if err == repository.ErrNoDataset {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no student list uploaded"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(roster.Students),
		"days":  roster.Days,
		"items": roster.Students,
	})
}

// GetDays handles GET /v1/students/days: just the roster's day
// labels, in column order, for populating a day picker.
func (h *DatasetHandler) GetDays(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	days, err := h.Roster.Days(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"days": days})
}

// UploadQPMap handles POST /v1/qp-map.
func (h *DatasetHandler) UploadQPMap(c echo.Context) error {
	t, err := h.readTable(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid csv"})
	}
	m, err := source.ParseQPMap(t)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()
	if err := h.QPMap.Replace(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save mapping failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"subjects": len(m)})
}

// GetQPMap handles GET /v1/qp-map.
func (h *DatasetHandler) GetQPMap(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	m, err := h.QPMap.Load(ctx)
	if err != nil {
		if err == repository.ErrNoDataset {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no qp mapping uploaded"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(m), "mapping": m})
}

// UploadQPDocs handles POST /v1/qp-docs. Each multipart file becomes
// one stored question paper; the QP code is the upper-cased file name
// without its extension, so "qp01.pdf" serves code QP01. Re-uploading
// a code replaces its bytes.
func (h *DatasetHandler) UploadQPDocs(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart form required"})
	}
	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no files"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	type storedDoc struct {
		Code  string `json:"code"`
		Pages int    `json:"pages"`
	}
	out := make([]storedDoc, 0, len(files))
	for _, fh := range files {
		if fh.Size > h.Cfg.MaxUploadBytes {
			return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"error": "file too large: " + fh.Filename})
		}
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
		}
		data, err := io.ReadAll(io.LimitReader(f, h.Cfg.MaxUploadBytes))
		f.Close()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "read upload failed"})
		}
		doc, err := pdf.Load(data)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "not a valid pdf: " + fh.Filename})
		}
		base := strings.TrimSuffix(filepath.Base(fh.Filename), filepath.Ext(fh.Filename))
		code := subject.Normalize(base)
		if code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty file name"})
		}
		if err := h.QPDocs.Upsert(ctx, code, doc.Pages(), doc.Bytes()); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save document failed"})
		}
		out = append(out, storedDoc{Code: code, Pages: doc.Pages()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"count": len(out), "items": out})
}

// ListQPDocs handles GET /v1/qp-docs. Bytes stay in the database; only
// codes, page counts and upload times are returned.
func (h *DatasetHandler) ListQPDocs(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()
	docs, err := h.QPDocs.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"count": len(docs), "items": docs})
}
