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

type doctorRepository struct {
	coll *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *doctorRepository {
	return &doctorRepository{coll: db.Collection(collDoctors)}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	doctor.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, doctor)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doctor.ID = oid
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Doctor, error) {
	return getByID[model.Doctor](ctx, r.coll, id, "doctor")
}

func (r *doctorRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Doctor, int64, error) {
	return findPage[model.Doctor](ctx, r.coll, filter, opts)
}

func (r *doctorRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Doctor, error) {
	return updateByID[model.Doctor](ctx, r.coll, id, fields, "doctor")
}

// UpdateOne applies a raw update document, used for array operators on
// qualifications, cities and diseases.
func (r *doctorRepository) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to update doctor: %w", err)
	}
	return res.MatchedCount, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "doctor")
}

func (r *doctorRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}

func (r *doctorRepository) Distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	return distinctStrings(ctx, r.coll, field, filter)
}

func (r *doctorRepository) GroupBy(ctx context.Context, field string, filter bson.M) (map[string]int64, error) {
	return groupCounts(ctx, r.coll, field, filter)
}
