package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Niharika209/kalakendra-discovery/internal/search"
	"github.com/Niharika209/kalakendra-discovery/pkg/httputil"
)

// SearchHandler handles HTTP requests for discovery search endpoints.
type SearchHandler struct {
	service *search.Service
	logger  *slog.Logger
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *search.Service, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// paramsFromQuery lifts the raw query string into search params. Values are
// passed through as-is; the planner ignores anything it cannot parse.
func paramsFromQuery(r *http.Request) search.Params {
	q := r.URL.Query()
	return search.Params{
		Query:          strings.TrimSpace(q.Get("q")),
		Category:       q.Get("category"),
		Subcategories:  q.Get("subcategories"),
		City:           q.Get("city"),
		MinPrice:       q.Get("min_price"),
		MaxPrice:       q.Get("max_price"),
		MinRating:      q.Get("min_rating"),
		DateFrom:       q.Get("date_from"),
		DateTo:         q.Get("date_to"),
		Mode:           q.Get("mode"),
		Status:         q.Get("status"),
		Available:      q.Get("available"),
		SeatsAvailable: q.Get("seats_available"),
		Certificate:    q.Get("certificate"),
		Materials:      q.Get("materials"),
		Tags:           q.Get("tags"),
		TargetAudience: q.Get("target_audience"),
		MinExperience:  q.Get("min_experience"),
		SortBy:         q.Get("sort"),
		Page:           q.Get("page"),
		Limit:          q.Get("limit"),
	}
}

// SearchArtists handles GET /api/v1/search/instructors
func (h *SearchHandler) SearchArtists(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SearchArtists(r.Context(), paramsFromQuery(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// SearchWorkshops handles GET /api/v1/search/workshops
func (h *SearchHandler) SearchWorkshops(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SearchWorkshops(r.Context(), paramsFromQuery(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Autocomplete handles GET /api/v1/search/autocomplete
func (h *SearchHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	suggestions, err := h.service.Autocomplete(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"suggestions": suggestions,
	}})
}
