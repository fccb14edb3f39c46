package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

func TestFilterDoc_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, filterDoc(domain.Filter{}))
}

func TestFilterDoc_Eq(t *testing.T) {
	doc := filterDoc(domain.Filter{}.Eq("mode", "online"))
	assert.Equal(t, bson.M{"mode": "online"}, doc)
}

func TestFilterDoc_ContainsBecomesCaseInsensitiveRegex(t *testing.T) {
	doc := filterDoc(domain.Filter{}.Contains("city", "mumbai"))
	assert.Equal(t, bson.M{"city": primitive.Regex{Pattern: "mumbai", Options: "i"}}, doc)
}

func TestFilterDoc_ContainsQuotesRegexMeta(t *testing.T) {
	doc := filterDoc(domain.Filter{}.Contains("name", "a.b*c"))
	rx, ok := doc["name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `a\.b\*c`, rx.Pattern)
}

func TestFilterDoc_RangeBoundsMergeIntoOneDocument(t *testing.T) {
	doc := filterDoc(domain.Filter{}.Gte("price", 100.0).Lte("price", 500.0))
	assert.Equal(t, bson.M{"price": bson.M{"$gte": 100.0, "$lte": 500.0}}, doc)
}

func TestFilterDoc_In(t *testing.T) {
	doc := filterDoc(domain.Filter{}.In("tags", []string{"beginner", "weekend"}))
	assert.Equal(t, bson.M{"tags": bson.M{"$in": []string{"beginner", "weekend"}}}, doc)
}

func TestFilterDoc_SingleOrGroupWithoutConds(t *testing.T) {
	doc := filterDoc(domain.Filter{}.AnyOf(
		domain.Cond{Field: "category", Op: domain.OpEq, Value: "Dance"},
		domain.Cond{Field: "subcategory", Op: domain.OpEq, Value: "Dance"},
	))
	assert.Equal(t, bson.M{"$or": []bson.M{
		{"category": "Dance"},
		{"subcategory": "Dance"},
	}}, doc)
}

func TestFilterDoc_MultipleOrGroupsAndConds(t *testing.T) {
	f := domain.Filter{}.
		Eq("status", "active").
		AnyOf(domain.Cond{Field: "category", Op: domain.OpEq, Value: "Dance"}).
		AnyOf(domain.Cond{Field: "city", Op: domain.OpEq, Value: "Mumbai"})

	doc := filterDoc(f)
	assert.Equal(t, "active", doc["status"])
	groups, ok := doc["$and"].([]bson.M)
	require.True(t, ok)
	assert.Len(t, groups, 2)
	assert.Equal(t, bson.M{"$or": []bson.M{{"category": "Dance"}}}, groups[0])
}

func TestSortDoc_PreservesKeyPrecedence(t *testing.T) {
	doc := sortDoc(domain.Sort{
		{Field: "featured", Desc: true},
		{Field: "featuredOrder", Desc: false},
		{Field: "rating", Desc: true},
	})
	assert.Equal(t, bson.D{
		{Key: "featured", Value: -1},
		{Key: "featuredOrder", Value: 1},
		{Key: "rating", Value: -1},
	}, doc)
}

func TestBucketLabel(t *testing.T) {
	boundaries := []float64{0, 500, 1000}

	assert.Equal(t, "0-500", bucketLabel(float64(0), boundaries))
	assert.Equal(t, "500-1000", bucketLabel(int32(500), boundaries))
	assert.Equal(t, "1000+", bucketLabel(float64(1000), boundaries))
	// The default bucket arrives from $bucket already labeled.
	assert.Equal(t, "1000+", bucketLabel("1000+", boundaries))
}
