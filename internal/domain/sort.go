package domain

// SortKey is one (field, direction) pair of a sort order.
type SortKey struct {
	Field string
	Desc  bool
}

// Sort is an ordered list of sort keys, primary first.
type Sort []SortKey

// Sort keywords accepted by the search API.
const (
	SortRecommended  = "recommended"
	SortRelevance    = "relevance"
	SortRating       = "rating"
	SortTopRated     = "top_rated"
	SortPriceLow     = "price_low"
	SortPriceHigh    = "price_high"
	SortPopularity   = "popularity"
	SortNewest       = "newest"
	SortDate         = "date"
	SortAvailableNow = "available_now"
)

// ResolveArtistSort maps a sort keyword to a concrete multi-key ordering for
// artists. Unknown or empty keywords resolve to the recommended order.
// SortRelevance intentionally resolves to the recommended order as well: the
// ranking engine re-orders relevance results after the catalog read.
func ResolveArtistSort(sortBy string) Sort {
	switch sortBy {
	case SortRating, SortTopRated:
		return Sort{{"rating", true}, {"reviewsCount", true}, {"totalBookings", true}}
	case SortPriceLow:
		return Sort{{"price", false}, {"rating", true}}
	case SortPriceHigh:
		return Sort{{"price", true}, {"rating", true}}
	case SortPopularity:
		return Sort{{"totalBookings", true}, {"reviewsCount", true}, {"rating", true}}
	case SortNewest:
		return Sort{{"createdAt", true}}
	case SortAvailableNow:
		return Sort{{"isAvailable", true}, {"rating", true}, {"totalBookings", true}}
	default:
		return Sort{{"featured", true}, {"featuredOrder", false}, {"rating", true}, {"isAvailable", true}, {"totalBookings", true}}
	}
}

// ResolveWorkshopSort maps a sort keyword to a concrete multi-key ordering
// for workshops. The "date" keyword is only meaningful here.
func ResolveWorkshopSort(sortBy string) Sort {
	switch sortBy {
	case SortRating, SortTopRated:
		return Sort{{"averageRating", true}, {"reviewCount", true}, {"enrolled", true}}
	case SortPriceLow:
		return Sort{{"price", false}, {"averageRating", true}}
	case SortPriceHigh:
		return Sort{{"price", true}, {"averageRating", true}}
	case SortPopularity:
		return Sort{{"enrolled", true}, {"reviewCount", true}, {"averageRating", true}}
	case SortNewest:
		return Sort{{"createdAt", true}}
	case SortDate:
		return Sort{{"date", false}, {"seatsAvailable", true}}
	case SortAvailableNow:
		return Sort{{"seatsAvailable", true}, {"averageRating", true}, {"enrolled", true}}
	default:
		return Sort{{"featured", true}, {"featuredOrder", false}, {"averageRating", true}, {"seatsAvailable", true}, {"enrolled", true}}
	}
}
