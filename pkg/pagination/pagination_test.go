package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Skip(t *testing.T) {
	assert.Equal(t, int64(0), Params{Page: 1, Limit: 20}.Skip())
	assert.Equal(t, int64(40), Params{Page: 3, Limit: 20}.Skip())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "exact fit", total: 40, limit: 20, want: 2},
		{name: "partial last page", total: 41, limit: 20, want: 3},
		{name: "empty", total: 0, limit: 20, want: 0},
		{name: "zero limit", total: 10, limit: 0, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit))
		})
	}
}

func TestHasMore(t *testing.T) {
	assert.True(t, HasMore(1, 3))
	assert.False(t, HasMore(3, 3))
	assert.False(t, HasMore(4, 3))
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{3, 4}, Slice(items, 2, 2))
	assert.Equal(t, []int{5}, Slice(items, 4, 2))
	assert.Empty(t, Slice(items, 10, 2))
	assert.Empty(t, Slice([]int{}, 0, 2))
}
