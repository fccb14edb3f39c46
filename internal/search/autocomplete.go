package search

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

const (
	// autocompleteMinLength is the minimum query length before any backend
	// lookup happens; shorter queries return an empty list immediately.
	autocompleteMinLength = 2

	// autocompletePerType caps suggestions per entity type.
	autocompletePerType = 5
)

// Fixed field sets matched by autocomplete.
var (
	artistSuggestFields   = []string{"name", "category", "city", "searchText"}
	workshopSuggestFields = []string{"title", "category", "city", "searchText"}
)

// Autocomplete returns up to five artist and five workshop suggestions for
// the query, artists first. Queries shorter than two characters return an
// empty list without touching the catalog.
func (s *Service) Autocomplete(ctx context.Context, query string) ([]domain.Suggestion, error) {
	if utf8.RuneCountInString(query) < autocompleteMinLength {
		return []domain.Suggestion{}, nil
	}

	suggestions := make([]domain.Suggestion, 0, 2*autocompletePerType)

	artists, err := s.catalog.Artists.Find(ctx, catalog.Query{
		Filter: domain.Filter{}.AnyOf(textConds(artistSuggestFields, query)...),
		Sort:   domain.ResolveArtistSort(domain.SortRecommended),
		Limit:  autocompletePerType,
	})
	if err != nil {
		return nil, err
	}
	for i := range artists {
		a := &artists[i]
		suggestions = append(suggestions, domain.Suggestion{
			Type:     domain.SuggestionArtist,
			ID:       a.ID,
			Name:     a.Name,
			Category: a.Category,
			City:     a.City,
			Image:    a.Image,
		})
	}

	workshops, err := s.catalog.Workshops.Find(ctx, catalog.Query{
		Filter: domain.Filter{}.AnyOf(textConds(workshopSuggestFields, query)...),
		Sort:   domain.ResolveWorkshopSort(domain.SortRecommended),
		Limit:  autocompletePerType,
	})
	if err != nil {
		return nil, err
	}
	for i := range workshops {
		w := &workshops[i]
		date := w.Date
		price := w.Price
		suggestions = append(suggestions, domain.Suggestion{
			Type:     domain.SuggestionWorkshop,
			ID:       w.ID,
			Name:     w.Title,
			Category: w.Category,
			City:     w.City,
			Image:    w.Image,
			Date:     &date,
			Price:    &price,
		})
	}

	s.logger.DebugContext(ctx, "autocomplete executed",
		slog.String("query", query),
		slog.Int("suggestions", len(suggestions)),
	)

	return suggestions, nil
}
