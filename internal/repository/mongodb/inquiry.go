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

type contactInquiryRepository struct {
	coll *mongo.Collection
}

func NewContactInquiryRepository(db *mongo.Database) *contactInquiryRepository {
	return &contactInquiryRepository{coll: db.Collection(collInquiries)}
}

func (r *contactInquiryRepository) Create(ctx context.Context, inquiry *model.ContactInquiry) error {
	inquiry.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, inquiry)
	if err != nil {
		return fmt.Errorf("failed to create contact inquiry: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inquiry.ID = oid
	}
	return nil
}

func (r *contactInquiryRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.ContactInquiry, error) {
	return getByID[model.ContactInquiry](ctx, r.coll, id, "contact inquiry")
}

func (r *contactInquiryRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.ContactInquiry, int64, error) {
	return findPage[model.ContactInquiry](ctx, r.coll, filter, opts)
}

func (r *contactInquiryRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.ContactInquiry, error) {
	return updateByID[model.ContactInquiry](ctx, r.coll, id, fields, "contact inquiry")
}

func (r *contactInquiryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "contact inquiry")
}

func (r *contactInquiryRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}

func (r *contactInquiryRepository) GroupBy(ctx context.Context, field string, filter bson.M) (map[string]int64, error) {
	return groupCounts(ctx, r.coll, field, filter)
}
