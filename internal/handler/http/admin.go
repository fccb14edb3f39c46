package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Niharika209/kalakendra-discovery/internal/sync"
	pkgerrors "github.com/Niharika209/kalakendra-discovery/pkg/errors"
	"github.com/Niharika209/kalakendra-discovery/pkg/httputil"
)

// AdminHandler exposes the background-job control surface.
type AdminHandler struct {
	scheduler *sync.Scheduler
	logger    *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(scheduler *sync.Scheduler, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		scheduler: scheduler,
		logger:    logger,
	}
}

// ListJobs handles GET /api/v1/admin/jobs
func (h *AdminHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"jobs": h.scheduler.Jobs(),
	}})
}

// RunJob handles POST /api/v1/admin/jobs/{name}/run
func (h *AdminHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	report, err := h.scheduler.RunJob(r.Context(), name)
	switch {
	case errors.Is(err, sync.ErrUnknownJob):
		httputil.WriteError(w, r, pkgerrors.NotFound("job", name), h.logger)
		return
	case errors.Is(err, sync.ErrJobRunning):
		httputil.WriteJSON(w, http.StatusConflict, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "JOB_RUNNING",
				Message: "job " + name + " is already running",
			},
		})
		return
	case err != nil:
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"job":       name,
		"processed": report.Processed,
		"failures":  report.Failures,
	}})
}

// Reindex handles POST /api/v1/admin/reindex. It is a shorthand for running
// the full reindex job.
func (h *AdminHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	report, err := h.scheduler.RunJob(r.Context(), sync.JobFullReindex)
	switch {
	case errors.Is(err, sync.ErrJobRunning):
		httputil.WriteJSON(w, http.StatusConflict, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "JOB_RUNNING",
				Message: "reindex is already running",
			},
		})
		return
	case err != nil:
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"job":       sync.JobFullReindex,
		"processed": report.Processed,
		"failures":  report.Failures,
	}})
}
