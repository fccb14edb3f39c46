package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog/memory"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
	"github.com/Niharika209/kalakendra-discovery/internal/search"
	"github.com/Niharika209/kalakendra-discovery/internal/sync"
	"github.com/Niharika209/kalakendra-discovery/pkg/health"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedCatalog() *memory.Catalog {
	c := memory.New()
	c.Artists.Put(domain.Artist{ID: "art-1", Name: "Meera Joshi", Category: "Dance", City: "Mumbai", Rating: 4.8})
	c.Artists.Put(domain.Artist{ID: "art-2", Name: "Ravi Kumar", Category: "Music", City: "Pune", Rating: 4.2})
	c.Workshops.Put(domain.Workshop{ID: "w1", ArtistID: "art-1", Title: "Kathak Basics", Category: "Dance", City: "Mumbai", Price: 800, Status: domain.WorkshopActive})
	return c
}

func newTestRouter(t *testing.T, c *memory.Catalog, scheduler *sync.Scheduler) http.Handler {
	t.Helper()
	logger := testLogger()
	service := search.NewService(c.Accessor(), logger)
	if scheduler == nil {
		scheduler = sync.NewScheduler(logger)
	}
	return NewRouter(service, scheduler, health.NewHandler(), "development", logger)
}

func doRequest(t *testing.T, h http.Handler, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestSearchInstructors_ReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t, seedCatalog(), nil)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/search/instructors?category=Dance")

	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.0, data["total"])
	assert.Equal(t, 1.0, data["page"])

	results, ok := data["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	first := results[0].(map[string]any)
	assert.Equal(t, "art-1", first["id"])
	assert.NotZero(t, first["ranking_score"])
}

func TestSearchWorkshops_ReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t, seedCatalog(), nil)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/search/workshops?q=kathak")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	results := data["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "w1", results[0].(map[string]any)["id"])
}

func TestAutocomplete_WrapsSuggestions(t *testing.T) {
	router := newTestRouter(t, seedCatalog(), nil)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/search/autocomplete?q=meera")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	suggestions, ok := data["suggestions"].([]any)
	require.True(t, ok)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "artist", suggestions[0].(map[string]any)["type"])
}

func TestAutocomplete_ShortQueryReturnsEmptyList(t *testing.T) {
	router := newTestRouter(t, seedCatalog(), nil)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/search/autocomplete?q=m")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Empty(t, data["suggestions"])
}

func TestAdminListJobs(t *testing.T) {
	scheduler := sync.NewScheduler(testLogger())
	scheduler.Register(sync.Job{Name: "noop", Run: func(ctx context.Context) (sync.Report, error) {
		return sync.Report{}, nil
	}})
	router := newTestRouter(t, seedCatalog(), scheduler)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/admin/jobs")

	require.Equal(t, http.StatusOK, rec.Code)
	jobs := body["data"].(map[string]any)["jobs"].([]any)
	require.Len(t, jobs, 1)
	assert.Equal(t, "noop", jobs[0].(map[string]any)["name"])
}

func TestAdminRunJob_ReportsCounts(t *testing.T) {
	scheduler := sync.NewScheduler(testLogger())
	scheduler.Register(sync.Job{Name: "refresh", Run: func(ctx context.Context) (sync.Report, error) {
		return sync.Report{Processed: 7, Failures: 1}, nil
	}})
	router := newTestRouter(t, seedCatalog(), scheduler)

	rec, body := doRequest(t, router, http.MethodPost, "/api/v1/admin/jobs/refresh/run")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "refresh", data["job"])
	assert.Equal(t, 7.0, data["processed"])
	assert.Equal(t, 1.0, data["failures"])
}

func TestAdminRunJob_UnknownJob(t *testing.T) {
	router := newTestRouter(t, seedCatalog(), nil)

	rec, body := doRequest(t, router, http.MethodPost, "/api/v1/admin/jobs/nonexistent/run")

	require.Equal(t, http.StatusNotFound, rec.Code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errBody["code"])
}

func TestAdminRunJob_AlreadyRunning(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	scheduler := sync.NewScheduler(testLogger())
	scheduler.Register(sync.Job{Name: "slow", Run: func(ctx context.Context) (sync.Report, error) {
		close(started)
		<-release
		return sync.Report{}, nil
	}})
	router := newTestRouter(t, seedCatalog(), scheduler)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = scheduler.RunJob(context.Background(), "slow")
	}()
	<-started

	rec, body := doRequest(t, router, http.MethodPost, "/api/v1/admin/jobs/slow/run")
	close(release)
	<-done

	require.Equal(t, http.StatusConflict, rec.Code)
	errBody := body["error"].(map[string]any)
	assert.Equal(t, "JOB_RUNNING", errBody["code"])
}

func TestAdminReindex_RunsFullReindexJob(t *testing.T) {
	scheduler := sync.NewScheduler(testLogger())
	scheduler.Register(sync.Job{Name: sync.JobFullReindex, Run: func(ctx context.Context) (sync.Report, error) {
		return sync.Report{Processed: 3}, nil
	}})
	router := newTestRouter(t, seedCatalog(), scheduler)

	rec, body := doRequest(t, router, http.MethodPost, "/api/v1/admin/reindex")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, sync.JobFullReindex, data["job"])
	assert.Equal(t, 3.0, data["processed"])
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, seedCatalog(), nil)

	live, _ := doRequest(t, router, http.MethodGet, "/health/live")
	assert.Equal(t, http.StatusOK, live.Code)

	ready, body := doRequest(t, router, http.MethodGet, "/health/ready")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Equal(t, "up", body["status"])
}
