// Package catalog defines the read/write boundary to the marketplace catalog
// store. The discovery core builds opaque filter, sort, and group specs; the
// backend (MongoDB in production, in-memory for tests and local development)
// executes them without understanding ranking semantics.
package catalog

import (
	"context"
	"errors"

	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// ErrNotFound is returned by FindByID and UpdateByID when no record matches.
var ErrNotFound = errors.New("catalog: record not found")

// Query bundles a filter with sort order and pagination for a Find call.
type Query struct {
	Filter domain.Filter
	Sort   domain.Sort
	Skip   int64
	Limit  int64
}

// GroupedCount is one bucket of a grouped count aggregation.
type GroupedCount struct {
	Value string
	Count int64
}

// Collection is the generic access contract for one catalog collection.
type Collection[T any] interface {
	// Find returns records matching the query, in sort order.
	Find(ctx context.Context, q Query) ([]T, error)

	// FindByID returns the record with the given identifier, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*T, error)

	// Count returns the number of records matching the filter.
	Count(ctx context.Context, f domain.Filter) (int64, error)

	// GroupCount groups matching records by a field and returns per-value
	// counts sorted descending, truncated to limit values (0 = no cap).
	GroupCount(ctx context.Context, f domain.Filter, field string, limit int) ([]GroupedCount, error)

	// BucketCount groups matching records by which numeric range of the
	// given boundaries the field falls into. Boundaries must be ascending;
	// values at or above the last boundary land in an open-ended bucket.
	BucketCount(ctx context.Context, f domain.Filter, field string, boundaries []float64) ([]GroupedCount, error)

	// UpdateByID sets the given fields on one record.
	UpdateByID(ctx context.Context, id string, fields map[string]any) error

	// UpdateMany sets the given fields on every matching record and returns
	// the number of records modified.
	UpdateMany(ctx context.Context, f domain.Filter, fields map[string]any) (int64, error)

	// IncrementByID atomically adds the given deltas to numeric fields.
	IncrementByID(ctx context.Context, id string, deltas map[string]float64) error
}

// Accessor groups the catalog collections the discovery core reads and
// writes. Entities themselves are owned by the upstream write paths.
type Accessor struct {
	Artists   Collection[domain.Artist]
	Workshops Collection[domain.Workshop]
	Bookings  Collection[domain.Booking]
	Reviews   Collection[domain.Review]
}
