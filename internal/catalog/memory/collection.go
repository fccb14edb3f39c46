// Package memory is an in-memory catalog backend. It evaluates the same
// filter, sort, and group specs as the MongoDB backend and is used in tests
// and local development.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// fieldGetter resolves a stored field name to its value on a record.
type fieldGetter[T any] func(rec *T, field string) (any, bool)

// fieldSetter writes a stored field on a record. Unknown fields are ignored.
type fieldSetter[T any] func(rec *T, field string, value any)

// Collection is a thread-safe in-memory catalog collection.
type Collection[T any] struct {
	mu   sync.RWMutex
	docs map[string]T
	id   func(*T) string
	get  fieldGetter[T]
	set  fieldSetter[T]
	now  func() time.Time
}

func newCollection[T any](id func(*T) string, get fieldGetter[T], set fieldSetter[T]) *Collection[T] {
	return &Collection[T]{
		docs: make(map[string]T),
		id:   id,
		get:  get,
		set:  set,
		now:  time.Now,
	}
}

// Put inserts or replaces a record. It exists for seeding and for the write
// paths that own the entities; the discovery core itself never calls it.
func (c *Collection[T]) Put(rec T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[c.id(&rec)] = rec
}

// Remove deletes a record by identifier.
func (c *Collection[T]) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.docs, id)
}

// Find returns records matching the query in sort order.
func (c *Collection[T]) Find(_ context.Context, q catalog.Query) ([]T, error) {
	c.mu.RLock()
	matched := c.matchLocked(q.Filter)
	c.mu.RUnlock()

	c.sortRecords(matched, q.Sort)

	skip := int(q.Skip)
	if skip > len(matched) {
		skip = len(matched)
	}
	matched = matched[skip:]
	if q.Limit > 0 && int64(len(matched)) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

// FindByID returns the record with the given identifier.
func (c *Collection[T]) FindByID(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.docs[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &rec, nil
}

// Count returns the number of records matching the filter.
func (c *Collection[T]) Count(_ context.Context, f domain.Filter) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.matchLocked(f))), nil
}

// GroupCount groups matching records by a field, counts descending.
func (c *Collection[T]) GroupCount(_ context.Context, f domain.Filter, field string, limit int) ([]catalog.GroupedCount, error) {
	c.mu.RLock()
	matched := c.matchLocked(f)
	c.mu.RUnlock()

	counts := make(map[string]int64)
	for i := range matched {
		v, ok := c.get(&matched[i], field)
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			if val != "" {
				counts[val]++
			}
		case []string:
			for _, s := range val {
				if s != "" {
					counts[s]++
				}
			}
		default:
			counts[fmt.Sprint(val)]++
		}
	}

	grouped := sortedCounts(counts)
	if limit > 0 && len(grouped) > limit {
		grouped = grouped[:limit]
	}
	return grouped, nil
}

// BucketCount groups matching records by numeric range.
func (c *Collection[T]) BucketCount(_ context.Context, f domain.Filter, field string, boundaries []float64) ([]catalog.GroupedCount, error) {
	c.mu.RLock()
	matched := c.matchLocked(f)
	c.mu.RUnlock()

	labels := bucketLabels(boundaries)
	counts := make([]int64, len(labels))
	for i := range matched {
		v, ok := c.get(&matched[i], field)
		if !ok {
			continue
		}
		n, ok := toFloat(v)
		if !ok {
			continue
		}
		counts[bucketIndex(boundaries, n)]++
	}

	out := make([]catalog.GroupedCount, 0, len(labels))
	for i, label := range labels {
		if counts[i] > 0 {
			out = append(out, catalog.GroupedCount{Value: label, Count: counts[i]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// UpdateByID sets the given fields on one record and bumps updatedAt.
func (c *Collection[T]) UpdateByID(_ context.Context, id string, fields map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.docs[id]
	if !ok {
		return catalog.ErrNotFound
	}
	for k, v := range fields {
		c.set(&rec, k, v)
	}
	c.set(&rec, "updatedAt", c.now().UTC())
	c.docs[id] = rec
	return nil
}

// UpdateMany sets the given fields on every matching record.
func (c *Collection[T]) UpdateMany(_ context.Context, f domain.Filter, fields map[string]any) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for id, rec := range c.docs {
		if !c.matches(&rec, f) {
			continue
		}
		for k, v := range fields {
			c.set(&rec, k, v)
		}
		c.set(&rec, "updatedAt", c.now().UTC())
		c.docs[id] = rec
		n++
	}
	return n, nil
}

// IncrementByID adds the given deltas to numeric fields.
func (c *Collection[T]) IncrementByID(_ context.Context, id string, deltas map[string]float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.docs[id]
	if !ok {
		return catalog.ErrNotFound
	}
	for k, d := range deltas {
		cur := 0.0
		if v, ok := c.get(&rec, k); ok {
			if n, ok := toFloat(v); ok {
				cur = n
			}
		}
		c.set(&rec, k, cur+d)
	}
	c.set(&rec, "updatedAt", c.now().UTC())
	c.docs[id] = rec
	return nil
}

func (c *Collection[T]) matchLocked(f domain.Filter) []T {
	matched := make([]T, 0)
	for _, rec := range c.docs {
		rec := rec
		if c.matches(&rec, f) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func (c *Collection[T]) matches(rec *T, f domain.Filter) bool {
	for _, cond := range f.Conds {
		if !c.condHolds(rec, cond) {
			return false
		}
	}
	for _, group := range f.Ors {
		hit := false
		for _, cond := range group {
			if c.condHolds(rec, cond) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func (c *Collection[T]) condHolds(rec *T, cond domain.Cond) bool {
	v, ok := c.get(rec, cond.Field)
	if !ok {
		return false
	}
	return evalCond(v, cond)
}

// sortRecords orders records by the multi-key sort, with the identifier as a
// final tie-break so repeated identical queries paginate stably.
func (c *Collection[T]) sortRecords(recs []T, s domain.Sort) {
	if len(s) == 0 {
		sort.SliceStable(recs, func(i, j int) bool { return c.id(&recs[i]) < c.id(&recs[j]) })
		return
	}
	sort.SliceStable(recs, func(i, j int) bool {
		for _, key := range s {
			a, _ := c.get(&recs[i], key.Field)
			b, _ := c.get(&recs[j], key.Field)
			cmp := compareValues(a, b)
			if cmp == 0 {
				continue
			}
			if key.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return c.id(&recs[i]) < c.id(&recs[j])
	})
}

func sortedCounts(counts map[string]int64) []catalog.GroupedCount {
	out := make([]catalog.GroupedCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, catalog.GroupedCount{Value: v, Count: n})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
