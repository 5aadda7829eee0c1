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

type blogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *blogRepository {
	return &blogRepository{coll: db.Collection(collBlogs)}
}

func (r *blogRepository) Create(ctx context.Context, blog *model.Blog) error {
	blog.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, blog)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		blog.ID = oid
	}
	return nil
}

func (r *blogRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Blog, error) {
	return getByID[model.Blog](ctx, r.coll, id, "blog")
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	return findOne[model.Blog](ctx, r.coll, bson.M{"slug": slug}, "blog")
}

func (r *blogRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Blog, int64, error) {
	return findPage[model.Blog](ctx, r.coll, filter, opts)
}

func (r *blogRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Blog, error) {
	return updateByID[model.Blog](ctx, r.coll, id, fields, "blog")
}

func (r *blogRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment blog views: %w", err)
	}
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "blog")
}

func (r *blogRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}

func (r *blogRepository) Distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	return distinctStrings(ctx, r.coll, field, filter)
}

type patientStoryRepository struct {
	coll *mongo.Collection
}

func NewPatientStoryRepository(db *mongo.Database) *patientStoryRepository {
	return &patientStoryRepository{coll: db.Collection(collStories)}
}

func (r *patientStoryRepository) Create(ctx context.Context, story *model.PatientStory) error {
	story.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, story)
	if err != nil {
		return fmt.Errorf("failed to create patient story: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		story.ID = oid
	}
	return nil
}

func (r *patientStoryRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.PatientStory, error) {
	return getByID[model.PatientStory](ctx, r.coll, id, "patient story")
}

func (r *patientStoryRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.PatientStory, int64, error) {
	return findPage[model.PatientStory](ctx, r.coll, filter, opts)
}

func (r *patientStoryRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.PatientStory, error) {
	return updateByID[model.PatientStory](ctx, r.coll, id, fields, "patient story")
}

func (r *patientStoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "patient story")
}

func (r *patientStoryRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}

func (r *patientStoryRepository) Distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	return distinctStrings(ctx, r.coll, field, filter)
}

type treatmentRepository struct {
	coll *mongo.Collection
}

func NewTreatmentRepository(db *mongo.Database) *treatmentRepository {
	return &treatmentRepository{coll: db.Collection(collTreatments)}
}

func (r *treatmentRepository) Create(ctx context.Context, treatment *model.Treatment) error {
	treatment.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, treatment)
	if err != nil {
		return fmt.Errorf("failed to create treatment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		treatment.ID = oid
	}
	return nil
}

func (r *treatmentRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Treatment, error) {
	return getByID[model.Treatment](ctx, r.coll, id, "treatment")
}

func (r *treatmentRepository) GetByURL(ctx context.Context, url string) (*model.Treatment, error) {
	return findOne[model.Treatment](ctx, r.coll, bson.M{"url": url}, "treatment")
}

func (r *treatmentRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Treatment, int64, error) {
	return findPage[model.Treatment](ctx, r.coll, filter, opts)
}

func (r *treatmentRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Treatment, error) {
	return updateByID[model.Treatment](ctx, r.coll, id, fields, "treatment")
}

func (r *treatmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "treatment")
}

func (r *treatmentRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}
