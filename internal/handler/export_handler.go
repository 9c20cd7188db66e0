package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/noah-isme/campus-scheduler/internal/domain"
	appErrors "github.com/noah-isme/campus-scheduler/pkg/errors"
	"github.com/noah-isme/campus-scheduler/pkg/export"
	"github.com/noah-isme/campus-scheduler/pkg/response"
	"github.com/noah-isme/campus-scheduler/pkg/storage"
)

// ExportHandler renders a completed proposal as CSV or PDF and persists it
// under the configured export storage directory, then serves it back for
// download. It shares the proposal store with ScheduleHandler so it can only
// export schedules that have actually finished generating.
type ExportHandler struct {
	store *proposalStore
	files *storage.LocalStorage
}

// NewExportHandler wires a local filesystem store rooted at baseDir (the
// directory cfg.Export.StorageDir names) and shares sh's proposal store so
// only completed async schedules can be exported. baseDir is created if
// missing.
func NewExportHandler(sh *ScheduleHandler, baseDir string) (*ExportHandler, error) {
	files, err := storage.NewLocalStorage(baseDir)
	if err != nil {
		return nil, err
	}
	return &ExportHandler{store: sh.store, files: files}, nil
}

// Render godoc
// @Summary Render a completed proposal as CSV or PDF
// @Tags Scheduler
// @Produce json
// @Param id path string true "Proposal ID"
// @Param format query string false "csv or pdf, defaults to csv"
// @Success 200 {object} response.Envelope
// @Router /schedules/proposals/{id}/export [post]
func (h *ExportHandler) Render(c *gin.Context) {
	id := c.Param("id")
	entry, ok := h.store.get(id)
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired"))
		return
	}
	if entry.status != proposalDone {
		response.Error(c, appErrors.Wrap(fmt.Errorf("proposal %s is %s", id, entry.status), appErrors.ErrValidation.Code, http.StatusConflict, "proposal has no schedule to export yet"))
		return
	}

	format := c.DefaultQuery("format", "csv")
	body, filename, err := renderExport(entry.entries, format)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "unsupported export format"))
		return
	}

	name := id + "-" + uuid.NewString()[:8] + filename
	if _, err := h.files.Save(name, body); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to persist export"))
		return
	}

	response.JSON(c, http.StatusOK, map[string]string{"file": name}, nil)
}

// Download godoc
// @Summary Download a previously rendered export
// @Tags Scheduler
// @Produce application/octet-stream
// @Param file path string true "File name returned by Render"
// @Router /exports/{file} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	file := c.Param("file")
	f, err := h.files.Open(file)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export not found"))
		return
	}
	defer f.Close() //nolint:errcheck
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file))
	http.ServeContent(c.Writer, c.Request, file, time.Time{}, f)
}

func renderExport(entries []domain.ScheduleEntry, format string) ([]byte, string, error) {
	dataset := export.ScheduleDataset(entries)
	switch format {
	case "csv":
		body, err := export.NewCSVExporter().Render(dataset)
		return body, ".csv", err
	case "pdf":
		body, err := export.NewPDFExporter().Render(dataset, "Weekly timetable")
		return body, ".pdf", err
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}
