// Package mongo implements the catalog accessor against MongoDB, the store
// that owns the marketplace entities.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Niharika209/kalakendra-discovery/internal/catalog"
	"github.com/Niharika209/kalakendra-discovery/internal/domain"
)

// Collection names in the catalog database.
const (
	collArtists   = "artists"
	collWorkshops = "workshops"
	collBookings  = "bookings"
	collReviews   = "reviews"
)

// Catalog is the MongoDB-backed catalog accessor.
type Catalog struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, uri, dbName string) (*Catalog, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &Catalog{client: client, db: client.Database(dbName)}, nil
}

// Accessor returns the backend-agnostic view used by the discovery core.
func (c *Catalog) Accessor() catalog.Accessor {
	return catalog.Accessor{
		Artists:   &collection[domain.Artist]{coll: c.db.Collection(collArtists)},
		Workshops: &collection[domain.Workshop]{coll: c.db.Collection(collWorkshops)},
		Bookings:  &collection[domain.Booking]{coll: c.db.Collection(collBookings)},
		Reviews:   &collection[domain.Review]{coll: c.db.Collection(collReviews)},
	}
}

// Ping reports whether the database is reachable. Used by the readiness probe.
func (c *Catalog) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (c *Catalog) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

type collection[T any] struct {
	coll *mongo.Collection
}

func (c *collection[T]) Find(ctx context.Context, q catalog.Query) ([]T, error) {
	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(sortDoc(q.Sort))
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}

	cur, err := c.coll.Find(ctx, filterDoc(q.Filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.coll.Name(), err)
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c *collection[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var rec T
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, catalog.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s by id: %w", c.coll.Name(), err)
	}
	return &rec, nil
}

func (c *collection[T]) Count(ctx context.Context, f domain.Filter) (int64, error) {
	n, err := c.coll.CountDocuments(ctx, filterDoc(f))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.coll.Name(), err)
	}
	return n, nil
}

func (c *collection[T]) GroupCount(ctx context.Context, f domain.Filter, field string, limit int) ([]catalog.GroupedCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filterDoc(f)}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	return c.runGrouped(ctx, pipeline)
}

func (c *collection[T]) BucketCount(ctx context.Context, f domain.Filter, field string, boundaries []float64) ([]catalog.GroupedCount, error) {
	bounds := make(bson.A, 0, len(boundaries))
	for _, b := range boundaries {
		bounds = append(bounds, b)
	}
	last := boundaries[len(boundaries)-1]

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filterDoc(f)}},
		bson.D{{Key: "$bucket", Value: bson.D{
			{Key: "groupBy", Value: "$" + field},
			{Key: "boundaries", Value: bounds},
			{Key: "default", Value: formatBound(last) + "+"},
			{Key: "output", Value: bson.D{{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	raw, err := c.runGroupedRaw(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.GroupedCount, 0, len(raw))
	for _, row := range raw {
		out = append(out, catalog.GroupedCount{
			Value: bucketLabel(row.ID, boundaries),
			Count: row.Count,
		})
	}
	return out, nil
}

func (c *collection[T]) UpdateByID(ctx context.Context, id string, fields map[string]any) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update %s: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (c *collection[T]) UpdateMany(ctx context.Context, f domain.Filter, fields map[string]any) (int64, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	res, err := c.coll.UpdateMany(ctx, filterDoc(f), bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("update many %s: %w", c.coll.Name(), err)
	}
	return res.ModifiedCount, nil
}

func (c *collection[T]) IncrementByID(ctx context.Context, id string, deltas map[string]float64) error {
	inc := bson.M{}
	for k, v := range deltas {
		inc[k] = v
	}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("increment %s: %w", c.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

type groupedRow struct {
	ID    any   `bson:"_id"`
	Count int64 `bson:"count"`
}

func (c *collection[T]) runGroupedRaw(ctx context.Context, pipeline mongo.Pipeline) ([]groupedRow, error) {
	cur, err := c.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", c.coll.Name(), err)
	}
	defer cur.Close(ctx)

	var rows []groupedRow
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode aggregate %s: %w", c.coll.Name(), err)
	}
	return rows, nil
}

func (c *collection[T]) runGrouped(ctx context.Context, pipeline mongo.Pipeline) ([]catalog.GroupedCount, error) {
	rows, err := c.runGroupedRaw(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.GroupedCount, 0, len(rows))
	for _, row := range rows {
		val := groupValue(row.ID)
		if val == "" {
			continue
		}
		out = append(out, catalog.GroupedCount{Value: val, Count: row.Count})
	}
	return out, nil
}

func groupValue(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// bucketLabel renders a $bucket _id as "lo-hi"; the default bucket already
// carries its string label.
func bucketLabel(id any, boundaries []float64) string {
	if s, ok := id.(string); ok {
		return s
	}
	lo, ok := toFloat(id)
	if !ok {
		return fmt.Sprint(id)
	}
	for i := 0; i < len(boundaries)-1; i++ {
		if boundaries[i] == lo {
			return formatBound(lo) + "-" + formatBound(boundaries[i+1])
		}
	}
	return formatBound(lo) + "+"
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
