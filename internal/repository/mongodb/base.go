package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/thelivecure/admin-api/pkg/errors"
	"github.com/thelivecure/admin-api/internal/query"
)

// findPage runs a count plus a skip/limit find and decodes the page. When
// the options carry populate specs the page is fetched through an
// aggregation pipeline so referenced documents are joined in.
func findPage[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts query.Options) ([]T, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	if len(opts.Populate) > 0 {
		docs, err := findPagePopulated[T](ctx, coll, filter, opts)
		return docs, total, err
	}

	findOpts := options.Find().
		SetSkip(opts.Skip()).
		SetLimit(opts.Limit).
		SetSort(opts.Sort)
	if opts.Select != nil {
		findOpts.SetProjection(opts.Select)
	}

	cur, err := coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cur.Close(ctx)

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, total, nil
}

// findPagePopulated pages through an aggregation with one $lookup per
// populate spec. Lookups run after $skip/$limit so only the returned page
// pays the join cost; missing references leave the As field unset.
func findPagePopulated[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts query.Options) ([]T, error) {
	pipeline := []bson.M{{"$match": filter}}
	if len(opts.Sort) > 0 {
		pipeline = append(pipeline, bson.M{"$sort": opts.Sort})
	}
	pipeline = append(pipeline,
		bson.M{"$skip": opts.Skip()},
		bson.M{"$limit": opts.Limit},
	)
	for _, p := range opts.Populate {
		pipeline = append(pipeline,
			bson.M{"$lookup": bson.M{
				"from":         p.From,
				"localField":   p.Path,
				"foreignField": "_id",
				"as":           p.As,
			}},
			bson.M{"$unwind": bson.M{
				"path":                       "$" + p.As,
				"preserveNullAndEmptyArrays": true,
			}},
		)
		if len(p.Select) > 0 {
			pipeline = append(pipeline, bson.M{"$project": p.Select})
		}
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate page: %w", err)
	}
	defer cur.Close(ctx)

	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode documents: %w", err)
	}
	return docs, nil
}

func getByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, resource string) (*T, error) {
	return findOne[T](ctx, coll, bson.M{"_id": id}, resource)
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, resource string) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(resource, err)
		}
		return nil, fmt.Errorf("failed to get %s: %w", resource, err)
	}
	return &doc, nil
}

// updateByID sets the given fields plus updatedAt and returns the updated
// document.
func updateByID[T any](ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, fields bson.M, resource string) (*T, error) {
	return updateOneDoc[T](ctx, coll, bson.M{"_id": id}, fields, resource)
}

func updateOneDoc[T any](ctx context.Context, coll *mongo.Collection, filter, fields bson.M, resource string) (*T, error) {
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc T
	err := coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound(resource, err)
		}
		return nil, fmt.Errorf("failed to update %s: %w", resource, err)
	}
	return &doc, nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, resource string) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", resource, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound(resource, nil)
	}
	return nil
}

func countDocs(ctx context.Context, coll *mongo.Collection, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return total, nil
}

// groupCounts groups matching documents by a field and returns counts per
// distinct value.
func groupCounts(ctx context.Context, coll *mongo.Collection, field string, match bson.M) (map[string]int64, error) {
	pipeline := []bson.M{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.M{"$match": match})
	}
	pipeline = append(pipeline, bson.M{"$group": bson.M{
		"_id":   "$" + field,
		"count": bson.M{"$sum": 1},
	}})

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by %s: %w", field, err)
	}
	defer cur.Close(ctx)

	var buckets []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}

	counts := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		counts[b.ID] = b.Count
	}
	return counts, nil
}

func distinctStrings(ctx context.Context, coll *mongo.Collection, field string, filter bson.M) ([]string, error) {
	if filter == nil {
		filter = bson.M{}
	}
	raw, err := coll.Distinct(ctx, field, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct %s: %w", field, err)
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			values = append(values, s)
		}
	}
	return values, nil
}
