package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
	"github.com/Niharika209/kalakendra-discovery/pkg/pagination"
)

// relevanceWindow bounds how many candidates are fetched for in-process
// re-ranking when sortBy=relevance. Pagination past the window falls off the
// end of the ranked list.
const relevanceWindow = 500

// Result is the paginated search response for one entity type.
type Result[T any] struct {
	Results    []T                `json:"results"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	HasMore    bool               `json:"has_more"`
	Facets     domain.FacetResult `json:"facets"`
}

// Service executes search, autocomplete, and facet reads. It is stateless:
// every invocation reads catalog state and mutates nothing, so arbitrarily
// many requests may run concurrently.
type Service struct {
	catalog catalog.Accessor
	planner *Planner
	logger  *slog.Logger
}

// NewService creates a search service.
func NewService(cat catalog.Accessor, logger *slog.Logger) *Service {
	return &Service{
		catalog: cat,
		planner: NewPlanner(cat, logger),
		logger:  logger,
	}
}

// SearchArtists runs an artist search: plan, count, fetch, score, facet.
func (s *Service) SearchArtists(ctx context.Context, params Params) (*Result[domain.RankedArtist], error) {
	plan := s.planner.PlanArtists(params)

	total, err := s.catalog.Artists.Count(ctx, plan.Filter)
	if err != nil {
		return nil, fmt.Errorf("search artists: count: %w", err)
	}

	q := catalog.Query{Filter: plan.Filter, Sort: plan.Sort, Skip: plan.Skip, Limit: int64(plan.Limit)}
	if plan.SortBy == domain.SortRelevance {
		q.Skip = 0
		q.Limit = relevanceWindow
	}
	artists, err := s.catalog.Artists.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search artists: find: %w", err)
	}

	ranked := make([]domain.RankedArtist, 0, len(artists))
	for i := range artists {
		a := artists[i]
		ranked = append(ranked, domain.RankedArtist{
			Artist:       a,
			RankingScore: ScoreArtist(&a, ArtistRelevance(&a, plan.Query)),
		})
	}
	if plan.SortBy == domain.SortRelevance {
		rankArtists(ranked)
		ranked = pagination.Slice(ranked, plan.Skip, plan.Limit)
	}

	result := newResult(ranked, total, plan)
	result.Facets = facetsFor(ctx, s.catalog.Artists, plan.Filter, s.logger)

	s.logger.DebugContext(ctx, "artist search executed",
		slog.String("query", plan.Query),
		slog.String("sort", plan.SortBy),
		slog.Int64("total", total),
	)
	return result, nil
}

// SearchWorkshops runs a workshop search.
func (s *Service) SearchWorkshops(ctx context.Context, params Params) (*Result[domain.RankedWorkshop], error) {
	plan := s.planner.PlanWorkshops(ctx, params)

	total, err := s.catalog.Workshops.Count(ctx, plan.Filter)
	if err != nil {
		return nil, fmt.Errorf("search workshops: count: %w", err)
	}

	q := catalog.Query{Filter: plan.Filter, Sort: plan.Sort, Skip: plan.Skip, Limit: int64(plan.Limit)}
	if plan.SortBy == domain.SortRelevance {
		q.Skip = 0
		q.Limit = relevanceWindow
	}
	workshops, err := s.catalog.Workshops.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search workshops: find: %w", err)
	}

	ranked := make([]domain.RankedWorkshop, 0, len(workshops))
	for i := range workshops {
		w := workshops[i]
		ranked = append(ranked, domain.RankedWorkshop{
			Workshop:     w,
			RankingScore: ScoreWorkshop(&w, WorkshopRelevance(&w, plan.Query)),
		})
	}
	if plan.SortBy == domain.SortRelevance {
		rankWorkshops(ranked)
		ranked = pagination.Slice(ranked, plan.Skip, plan.Limit)
	}

	result := newResult(ranked, total, plan)
	result.Facets = facetsFor(ctx, s.catalog.Workshops, plan.Filter, s.logger)

	s.logger.DebugContext(ctx, "workshop search executed",
		slog.String("query", plan.Query),
		slog.String("sort", plan.SortBy),
		slog.Int64("total", total),
	)
	return result, nil
}

func newResult[T any](results []T, total int64, plan Plan) *Result[T] {
	// Relevance ranking only reaches records inside the re-rank window, so
	// the advertised pages stop where the reachable results do. Total still
	// reports the full match count.
	reachable := total
	if plan.SortBy == domain.SortRelevance && reachable > relevanceWindow {
		reachable = relevanceWindow
	}
	totalPages := pagination.TotalPages(reachable, plan.Limit)
	return &Result[T]{
		Results:    results,
		Total:      total,
		Page:       plan.Page,
		Limit:      plan.Limit,
		TotalPages: totalPages,
		HasMore:    pagination.HasMore(plan.Page, totalPages),
		Facets:     domain.FacetResult{},
	}
}
