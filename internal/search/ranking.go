package search

import (
	"sort"
	"strings"

	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// Ranking weights. Relevance and quality dominate; popularity counters carry
// small per-field weights tuned to their typical magnitudes so no single
// signal drowns out the rest.
const (
	relevanceWeight      = 0.4
	artistRatingWeight   = 4.0
	workshopRatingWeight = 5.0
	bookingsWeight       = 0.1
	reviewsWeight        = 0.05
	enrolledWeight       = 0.05
	experienceWeight     = 0.5
	availabilityBonus    = 10.0
	featuredBonus        = 10.0
	certificateBonus     = 3.0
	materialsBonus       = 2.0
)

// ScoreArtist computes the composite ranking score for an artist. It is a
// pure function of the record and the relevance input: identical inputs
// always produce the identical float.
func ScoreArtist(a *domain.Artist, relevance float64) float64 {
	score := relevance*relevanceWeight +
		a.Rating*artistRatingWeight +
		float64(a.TotalBookings)*bookingsWeight +
		float64(a.ReviewsCount)*reviewsWeight +
		float64(a.ExperienceYears)*experienceWeight
	if a.IsAvailable {
		score += availabilityBonus
	}
	if a.Featured {
		score += featuredBonus
	}
	return score
}

// ScoreWorkshop computes the composite ranking score for a workshop.
func ScoreWorkshop(w *domain.Workshop, relevance float64) float64 {
	score := relevance*relevanceWeight +
		w.AverageRating*workshopRatingWeight +
		float64(w.Enrolled)*enrolledWeight +
		float64(w.ReviewCount)*reviewsWeight
	if w.SeatsAvailable > 0 {
		score += availabilityBonus
	}
	if w.Certificate {
		score += certificateBonus
	}
	if w.MaterialsIncluded {
		score += materialsBonus
	}
	return score
}

// ArtistRelevance derives a text relevance score from which searchable
// fields contain the query. A name hit weighs double. Returns 0 for an
// empty query.
func ArtistRelevance(a *domain.Artist, query string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}
	var rel float64
	if strings.Contains(strings.ToLower(a.Name), query) {
		rel += 2
	}
	for _, field := range []string{a.Bio, a.Category, a.City, a.SearchText} {
		if strings.Contains(strings.ToLower(field), query) {
			rel++
		}
	}
	return rel
}

// WorkshopRelevance is the workshop counterpart of ArtistRelevance; a title
// hit weighs double.
func WorkshopRelevance(w *domain.Workshop, query string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}
	var rel float64
	if strings.Contains(strings.ToLower(w.Title), query) {
		rel += 2
	}
	for _, field := range []string{w.Description, w.Category, w.City, w.SearchText} {
		if strings.Contains(strings.ToLower(field), query) {
			rel++
		}
	}
	return rel
}

// rankArtists orders by score descending with deterministic tie-breaks
// (rating, then identifier) so repeated identical queries paginate stably.
func rankArtists(ranked []domain.RankedArtist) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RankingScore != ranked[j].RankingScore {
			return ranked[i].RankingScore > ranked[j].RankingScore
		}
		if ranked[i].Rating != ranked[j].Rating {
			return ranked[i].Rating > ranked[j].Rating
		}
		return ranked[i].ID < ranked[j].ID
	})
}

func rankWorkshops(ranked []domain.RankedWorkshop) {
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RankingScore != ranked[j].RankingScore {
			return ranked[i].RankingScore > ranked[j].RankingScore
		}
		if ranked[i].AverageRating != ranked[j].AverageRating {
			return ranked[i].AverageRating > ranked[j].AverageRating
		}
		return ranked[i].ID < ranked[j].ID
	})
}
