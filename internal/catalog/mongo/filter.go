package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// filterDoc translates a typed filter spec into a MongoDB filter document.
// AND conditions on the same field are merged into one operator document so
// that min/max bounds form a single inclusive range.
func filterDoc(f domain.Filter) bson.M {
	doc := bson.M{}
	for _, cond := range f.Conds {
		applyCond(doc, cond)
	}

	if len(f.Ors) > 0 {
		groups := make([]bson.M, 0, len(f.Ors))
		for _, group := range f.Ors {
			ors := make([]bson.M, 0, len(group))
			for _, cond := range group {
				sub := bson.M{}
				applyCond(sub, cond)
				ors = append(ors, sub)
			}
			groups = append(groups, bson.M{"$or": ors})
		}
		if len(groups) == 1 && len(doc) == 0 {
			return groups[0]
		}
		doc["$and"] = groups
	}
	return doc
}

func applyCond(doc bson.M, cond domain.Cond) {
	switch cond.Op {
	case domain.OpEq:
		doc[cond.Field] = cond.Value
	case domain.OpContains:
		s, _ := cond.Value.(string)
		doc[cond.Field] = primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
	case domain.OpIn:
		mergeOp(doc, cond.Field, "$in", cond.Value)
	case domain.OpGte:
		mergeOp(doc, cond.Field, "$gte", cond.Value)
	case domain.OpGt:
		mergeOp(doc, cond.Field, "$gt", cond.Value)
	case domain.OpLte:
		mergeOp(doc, cond.Field, "$lte", cond.Value)
	case domain.OpLt:
		mergeOp(doc, cond.Field, "$lt", cond.Value)
	}
}

// mergeOp adds an operator under a field, merging with any operator document
// already present for that field.
func mergeOp(doc bson.M, field, op string, value any) {
	if existing, ok := doc[field].(bson.M); ok {
		existing[op] = value
		return
	}
	doc[field] = bson.M{op: value}
}

// sortDoc translates a sort order, preserving key precedence.
func sortDoc(s domain.Sort) bson.D {
	out := make(bson.D, 0, len(s))
	for _, key := range s {
		dir := 1
		if key.Desc {
			dir = -1
		}
		out = append(out, bson.E{Key: key.Field, Value: dir})
	}
	return out
}
