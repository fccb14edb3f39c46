package search

import (
	"context"
	"log/slog"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// facetValueCap bounds how many distinct values a grouped facet returns.
const facetValueCap = 10

// priceBoundaries are the fixed price bucket edges; the last edge opens an
// unbounded bucket above it.
var priceBoundaries = []float64{0, 500, 1000, 2000, 5000, 10000}

// facetsFor computes grouped counts for the standard facet dimensions
// against the same filter used for the result set (minus pagination).
// Facets are best-effort: a failed dimension is logged and omitted, and a
// fully failed aggregation yields an empty map, never a failed search.
func facetsFor[T any](ctx context.Context, coll catalog.Collection[T], f domain.Filter, logger *slog.Logger) domain.FacetResult {
	facets := domain.FacetResult{}

	for _, dim := range []string{domain.FacetCategory, domain.FacetCity, domain.FacetMode} {
		counts, err := coll.GroupCount(ctx, f, dim, facetValueCap)
		if err != nil {
			logger.WarnContext(ctx, "facet aggregation failed",
				slog.String("facet", dim),
				slog.String("error", err.Error()),
			)
			continue
		}
		facets[dim] = toFacetCounts(counts)
	}

	buckets, err := coll.BucketCount(ctx, f, "price", priceBoundaries)
	if err != nil {
		logger.WarnContext(ctx, "facet aggregation failed",
			slog.String("facet", domain.FacetPriceRange),
			slog.String("error", err.Error()),
		)
		return facets
	}
	facets[domain.FacetPriceRange] = toFacetCounts(buckets)

	return facets
}

func toFacetCounts(counts []catalog.GroupedCount) []domain.FacetCount {
	out := make([]domain.FacetCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, domain.FacetCount{Value: c.Value, Count: c.Count})
	}
	return out
}
