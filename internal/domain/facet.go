package domain

// FacetCount is one (value, count) pair within a facet dimension.
type FacetCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// FacetResult maps a facet dimension name (category, city, priceRange, mode)
// to its counts, ordered by count descending.
type FacetResult map[string][]FacetCount

// Facet dimension names.
const (
	FacetCategory   = "category"
	FacetCity       = "city"
	FacetMode       = "mode"
	FacetPriceRange = "priceRange"
)
