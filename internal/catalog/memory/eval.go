package memory

import (
	"strconv"
	"strings"
	"time"

	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// evalCond checks a single condition against a field value. The semantics
// mirror the MongoDB translation in catalog/mongo: Contains is a
// case-insensitive substring match that applies element-wise to array
// fields, In matches any element on array fields.
func evalCond(v any, cond domain.Cond) bool {
	switch cond.Op {
	case domain.OpEq:
		return compareValues(v, cond.Value) == 0
	case domain.OpContains:
		needle, ok := cond.Value.(string)
		if !ok {
			return false
		}
		return containsFold(v, needle)
	case domain.OpIn:
		set, ok := cond.Value.([]string)
		if !ok {
			return false
		}
		return inSet(v, set)
	case domain.OpGte:
		return compareValues(v, cond.Value) >= 0
	case domain.OpGt:
		return compareValues(v, cond.Value) > 0
	case domain.OpLte:
		return compareValues(v, cond.Value) <= 0
	case domain.OpLt:
		return compareValues(v, cond.Value) < 0
	default:
		return false
	}
}

func containsFold(v any, needle string) bool {
	needle = strings.ToLower(needle)
	switch val := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(val), needle)
	case []string:
		for _, s := range val {
			if strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
	}
	return false
}

func inSet(v any, set []string) bool {
	switch val := v.(type) {
	case string:
		for _, s := range set {
			if val == s {
				return true
			}
		}
	case []string:
		for _, elem := range val {
			for _, s := range set {
				if elem == s {
					return true
				}
			}
		}
	}
	return false
}

// compareValues orders two field values: -1 if a < b, 0 if equal, 1 if a > b.
// Booleans order false < true so that a descending sort puts true first.
func compareValues(a, b any) int {
	if ta, ok := toTime(a); ok {
		if tb, ok := toTime(b); ok {
			switch {
			case ta.Before(tb):
				return -1
			case ta.After(tb):
				return 1
			default:
				return 0
			}
		}
	}
	if na, ok := toFloat(a); ok {
		if nb, ok := toFloat(b); ok {
			switch {
			case na < nb:
				return -1
			case na > nb:
				return 1
			default:
				return 0
			}
		}
	}
	if ba, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ba == bb:
				return 0
			case ba:
				return 1
			default:
				return -1
			}
		}
	}
	sa, aok := a.(string)
	sb, bok := b.(string)
	if aok && bok {
		return strings.Compare(sa, sb)
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	default:
		return time.Time{}, false
	}
}

// bucketIndex returns which boundary bucket a value falls into; values at or
// above the last boundary land in the final open-ended bucket.
func bucketIndex(boundaries []float64, v float64) int {
	for i := 0; i < len(boundaries)-1; i++ {
		if v >= boundaries[i] && v < boundaries[i+1] {
			return i
		}
	}
	if v >= boundaries[len(boundaries)-1] {
		return len(boundaries) - 1
	}
	return 0
}

// bucketLabels renders boundary ranges as "lo-hi" labels plus a trailing
// "lo+" label for the open-ended bucket.
func bucketLabels(boundaries []float64) []string {
	labels := make([]string, 0, len(boundaries))
	for i := 0; i < len(boundaries)-1; i++ {
		labels = append(labels, formatBound(boundaries[i])+"-"+formatBound(boundaries[i+1]))
	}
	labels = append(labels, formatBound(boundaries[len(boundaries)-1])+"+")
	return labels
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
