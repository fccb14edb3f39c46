// Package search implements the discovery core: query planning, ranking,
// facet aggregation, and autocomplete over the marketplace catalog.
package search

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
	"github.com/Niharika209/kalakendra-discovery/pkg/pagination"
)

// Pagination bounds shared by both entity types.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// artistLookupCap bounds the artist-ID resolution used to expand a workshop
// category filter through the owning artist.
const artistLookupCap = 500

// Params are the raw, optional search parameters as received from the
// caller. Numeric and boolean values are kept as strings: parsing is
// permissive, and a malformed value is treated as absent rather than
// failing the request.
type Params struct {
	Query          string
	Category       string
	Subcategories  string // comma-delimited
	City           string
	MinPrice       string
	MaxPrice       string
	MinRating      string
	DateFrom       string
	DateTo         string
	Mode           string
	Status         string
	Available      string
	SeatsAvailable string
	Certificate    string
	Materials      string
	Tags           string // comma-delimited
	TargetAudience string // comma-delimited
	MinExperience  string
	SortBy         string
	Page           string
	Limit          string
}

// Plan is a normalized query: filter spec, sort order, and pagination.
type Plan struct {
	Filter domain.Filter
	Sort   domain.Sort
	SortBy string
	Query  string
	Page   int
	Limit  int
	Skip   int64
}

// Planner turns raw search parameters into catalog query plans.
type Planner struct {
	catalog catalog.Accessor
	logger  *slog.Logger
}

// NewPlanner creates a query planner.
func NewPlanner(cat catalog.Accessor, logger *slog.Logger) *Planner {
	return &Planner{catalog: cat, logger: logger}
}

// Searchable field sets for free-text expansion.
var (
	artistTextFields   = []string{"name", "bio", "category", "city", "searchText"}
	workshopTextFields = []string{"title", "description", "category", "city", "searchText"}
)

// PlanArtists builds the filter, sort, and pagination for an artist search.
func (p *Planner) PlanArtists(params Params) Plan {
	f := domain.Filter{}

	if q := strings.TrimSpace(params.Query); q != "" {
		f = f.AnyOf(textConds(artistTextFields, q)...)
	}
	if cat := strings.TrimSpace(params.Category); cat != "" {
		f = f.AnyOf(
			domain.Cond{Field: "category", Op: domain.OpContains, Value: cat},
			domain.Cond{Field: "specialties", Op: domain.OpContains, Value: cat},
		)
	}
	if subs := splitCSV(params.Subcategories); len(subs) > 0 {
		f = f.In("specialties", subs)
	}
	if city := strings.TrimSpace(params.City); city != "" {
		f = f.Contains("city", city)
	}
	f = addRange(f, "price", params.MinPrice, params.MaxPrice)
	if min, ok := parseFloat(params.MinRating); ok {
		f = f.Gte("rating", min)
	}
	if mode := strings.TrimSpace(params.Mode); mode != "" {
		f = f.Eq("mode", mode)
	}
	if avail, ok := parseBool(params.Available); ok && avail {
		f = f.Eq("isAvailable", true)
	}
	if tags := splitCSV(params.Tags); len(tags) > 0 {
		f = f.In("tags", tags)
	}
	if aud := splitCSV(params.TargetAudience); len(aud) > 0 {
		f = f.In("targetAudience", aud)
	}
	if exp, ok := parseFloat(params.MinExperience); ok {
		f = f.Gte("experienceYears", exp)
	}

	return p.finish(f, params, domain.ResolveArtistSort)
}

// PlanWorkshops builds the filter, sort, and pagination for a workshop
// search. A category filter expands through the owning artist: workshops
// whose own category is stale or missing still match when the artist's
// category or specialties do.
func (p *Planner) PlanWorkshops(ctx context.Context, params Params) Plan {
	f := domain.Filter{}

	if q := strings.TrimSpace(params.Query); q != "" {
		f = f.AnyOf(textConds(workshopTextFields, q)...)
	}
	if cat := strings.TrimSpace(params.Category); cat != "" {
		conds := []domain.Cond{
			{Field: "category", Op: domain.OpContains, Value: cat},
			{Field: "subcategory", Op: domain.OpContains, Value: cat},
		}
		if ids := p.resolveArtistIDs(ctx, cat); len(ids) > 0 {
			conds = append(conds, domain.Cond{Field: "artistId", Op: domain.OpIn, Value: ids})
		}
		f = f.AnyOf(conds...)
	}
	if subs := splitCSV(params.Subcategories); len(subs) > 0 {
		f = f.In("subcategory", subs)
	}
	if city := strings.TrimSpace(params.City); city != "" {
		f = f.Contains("city", city)
	}
	f = addRange(f, "price", params.MinPrice, params.MaxPrice)
	if min, ok := parseFloat(params.MinRating); ok {
		f = f.Gte("averageRating", min)
	}
	if from, ok := parseDate(params.DateFrom); ok {
		f = f.Gte("date", from)
	}
	if to, ok := parseDate(params.DateTo); ok {
		f = f.Lte("date", to)
	}
	if mode := strings.TrimSpace(params.Mode); mode != "" {
		f = f.Eq("mode", mode)
	}
	if status := strings.TrimSpace(params.Status); status != "" {
		f = f.Eq("status", status)
	}
	if seats, ok := parseBool(params.SeatsAvailable); ok && seats {
		f = f.Gt("seatsAvailable", 0)
	}
	if cert, ok := parseBool(params.Certificate); ok && cert {
		f = f.Eq("certificate", true)
	}
	if mat, ok := parseBool(params.Materials); ok && mat {
		f = f.Eq("materialsIncluded", true)
	}
	if tags := splitCSV(params.Tags); len(tags) > 0 {
		f = f.In("tags", tags)
	}
	if aud := splitCSV(params.TargetAudience); len(aud) > 0 {
		f = f.In("targetAudience", aud)
	}

	return p.finish(f, params, domain.ResolveWorkshopSort)
}

// resolveArtistIDs finds artists whose category or specialties match the
// given category text. Lookup failures degrade to the direct category match
// only; they never fail the search.
func (p *Planner) resolveArtistIDs(ctx context.Context, category string) []string {
	filter := domain.Filter{}.AnyOf(
		domain.Cond{Field: "category", Op: domain.OpContains, Value: category},
		domain.Cond{Field: "specialties", Op: domain.OpContains, Value: category},
	)
	artists, err := p.catalog.Artists.Find(ctx, catalog.Query{Filter: filter, Limit: artistLookupCap})
	if err != nil {
		p.logger.WarnContext(ctx, "artist lookup for category expansion failed",
			slog.String("category", category),
			slog.String("error", err.Error()),
		)
		return nil
	}
	ids := make([]string, 0, len(artists))
	for i := range artists {
		ids = append(ids, artists[i].ID)
	}
	return ids
}

func (p *Planner) finish(f domain.Filter, params Params, resolve func(string) domain.Sort) Plan {
	sortBy := normalizeSortBy(params.SortBy)

	page := 1
	if v, err := strconv.Atoi(params.Page); err == nil && v > 0 {
		page = v
	}
	limit := DefaultLimit
	if v, err := strconv.Atoi(params.Limit); err == nil && v > 0 {
		limit = v
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Plan{
		Filter: f,
		Sort:   resolve(sortBy),
		SortBy: sortBy,
		Query:  strings.TrimSpace(params.Query),
		Page:   page,
		Limit:  limit,
		Skip:   pagination.Params{Page: page, Limit: limit}.Skip(),
	}
}

// normalizeSortBy maps unknown keywords to the recommended default.
func normalizeSortBy(sortBy string) string {
	switch sortBy {
	case domain.SortRelevance, domain.SortRating, domain.SortTopRated,
		domain.SortPriceLow, domain.SortPriceHigh, domain.SortPopularity,
		domain.SortNewest, domain.SortDate, domain.SortAvailableNow:
		return sortBy
	default:
		return domain.SortRecommended
	}
}

func textConds(fields []string, q string) []domain.Cond {
	conds := make([]domain.Cond, 0, len(fields))
	for _, field := range fields {
		conds = append(conds, domain.Cond{Field: field, Op: domain.OpContains, Value: q})
	}
	return conds
}

func addRange(f domain.Filter, field, minRaw, maxRaw string) domain.Filter {
	if min, ok := parseFloat(minRaw); ok {
		f = f.Gte(field, min)
	}
	if max, ok := parseFloat(maxRaw); ok {
		f = f.Lte(field, max)
	}
	return f
}

func parseFloat(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
