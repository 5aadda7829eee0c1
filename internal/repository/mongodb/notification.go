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
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

type notificationRepository struct {
	coll *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *notificationRepository {
	return &notificationRepository{coll: db.Collection(collNotifications)}
}

func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	notification.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, notification)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		notification.ID = oid
	}
	return nil
}

func (r *notificationRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Notification, error) {
	return getByID[model.Notification](ctx, r.coll, id, "notification")
}

func (r *notificationRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Notification, int64, error) {
	return findPage[model.Notification](ctx, r.coll, filter, opts)
}

func (r *notificationRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}

// UpdateForRecipient mutates a notification only when it belongs to the
// recipient; a mismatch surfaces as not found.
func (r *notificationRepository) UpdateForRecipient(ctx context.Context, id, recipientID primitive.ObjectID, fields bson.M) (*model.Notification, error) {
	return updateOneDoc[model.Notification](ctx, r.coll,
		bson.M{"_id": id, "recipientId": recipientID}, fields, "notification")
}

func (r *notificationRepository) UpdateManyForRecipient(ctx context.Context, recipientID primitive.ObjectID, filter, fields bson.M) (int64, error) {
	match := bson.M{"recipientId": recipientID}
	for k, v := range filter {
		match[k] = v
	}
	set := bson.M{"updatedAt": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.coll.UpdateMany(ctx, match, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("failed to update notifications: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *notificationRepository) DeleteForRecipient(ctx context.Context, id, recipientID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "recipientId": recipientID})
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFound("notification", nil)
	}
	return nil
}

func (r *notificationRepository) DeleteAllForRecipient(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"recipientId": recipientID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}
	return res.DeletedCount, nil
}
