package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_BuilderAppendsConds(t *testing.T) {
	f := Filter{}.
		Eq("mode", "online").
		Contains("city", "mumbai").
		In("tags", []string{"beginner"}).
		Gte("price", 100.0).
		Lte("price", 500.0)

	assert.Len(t, f.Conds, 5)
	assert.Equal(t, Cond{Field: "mode", Op: OpEq, Value: "online"}, f.Conds[0])
	assert.Equal(t, Cond{Field: "city", Op: OpContains, Value: "mumbai"}, f.Conds[1])
	assert.Equal(t, OpIn, f.Conds[2].Op)
	assert.Equal(t, OpGte, f.Conds[3].Op)
	assert.Equal(t, OpLte, f.Conds[4].Op)
}

func TestFilter_BuilderDoesNotMutateReceiver(t *testing.T) {
	base := Filter{}.Eq("mode", "online")
	withCity := base.Contains("city", "pune")

	assert.Len(t, base.Conds, 1)
	assert.Len(t, withCity.Conds, 2)
}

func TestFilter_AnyOfDropsEmptyGroup(t *testing.T) {
	f := Filter{}.AnyOf()
	assert.True(t, f.IsZero())

	f = f.AnyOf(
		Cond{Field: "category", Op: OpContains, Value: "dance"},
		Cond{Field: "specialties", Op: OpContains, Value: "dance"},
	)
	assert.Len(t, f.Ors, 1)
	assert.Len(t, f.Ors[0], 2)
}

func TestFilter_IsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{}.Eq("mode", "online").IsZero())
	assert.False(t, Filter{}.AnyOf(Cond{Field: "name", Op: OpContains, Value: "x"}).IsZero())
}
