package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
)

type clinicRepository struct {
	coll *mongo.Collection
}

func NewClinicRepository(db *mongo.Database) *clinicRepository {
	return &clinicRepository{coll: db.Collection(collClinics)}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *model.Clinic) error {
	clinic.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, clinic)
	if err != nil {
		return fmt.Errorf("failed to create clinic: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		clinic.ID = oid
	}
	return nil
}

func (r *clinicRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Clinic, error) {
	return getByID[model.Clinic](ctx, r.coll, id, "clinic")
}

func (r *clinicRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Clinic, int64, error) {
	return findPage[model.Clinic](ctx, r.coll, filter, opts)
}

func (r *clinicRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Clinic, error) {
	return updateByID[model.Clinic](ctx, r.coll, id, fields, "clinic")
}

func (r *clinicRepository) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to update clinic: %w", err)
	}
	return res.MatchedCount, nil
}

func (r *clinicRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "clinic")
}

func (r *clinicRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}

func (r *clinicRepository) GroupBy(ctx context.Context, field string, filter bson.M) (map[string]int64, error) {
	return groupCounts(ctx, r.coll, field, filter)
}

// TopArrayValues unwinds an array field and returns its most frequent
// values.
func (r *clinicRepository) TopArrayValues(ctx context.Context, field string, limit int) ([]model.NameCount, error) {
	pipeline := []bson.M{
		{"$unwind": "$" + field},
		{"$group": bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
		{"$limit": limit},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top %s: %w", field, err)
	}
	defer cur.Close(ctx)

	var buckets []model.NameCount
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode top %s: %w", field, err)
	}
	return buckets, nil
}
