package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/thelivecure/admin-api/internal/model"
)

type settingsRepository struct {
	coll *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *settingsRepository {
	return &settingsRepository{coll: db.Collection(collSettings)}
}

func (r *settingsRepository) GetByType(ctx context.Context, settingsType model.SettingsType) (*model.Settings, error) {
	return findOne[model.Settings](ctx, r.coll, bson.M{"type": settingsType}, "settings")
}

// UpsertByType keeps a single document per settings type.
func (r *settingsRepository) UpsertByType(ctx context.Context, settingsType model.SettingsType, data bson.M, updatedBy string) (*model.Settings, error) {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"data":        data,
			"lastUpdated": now,
			"updatedBy":   updatedBy,
			"updatedAt":   now,
		},
		"$setOnInsert": bson.M{
			"type":      settingsType,
			"createdAt": now,
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc model.Settings
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"type": settingsType}, update, opts).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert settings: %w", err)
	}
	return &doc, nil
}

func (r *settingsRepository) ListAll(ctx context.Context) ([]model.Settings, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer cur.Close(ctx)

	docs := []model.Settings{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return docs, nil
}
