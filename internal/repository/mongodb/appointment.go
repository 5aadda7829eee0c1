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

type appointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *appointmentRepository {
	return &appointmentRepository{coll: db.Collection(collAppointments)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	appointment.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, appointment)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		appointment.ID = oid
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error) {
	return getByID[model.Appointment](ctx, r.coll, id, "appointment")
}

func (r *appointmentRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Appointment, int64, error) {
	return findPage[model.Appointment](ctx, r.coll, filter, opts)
}

func (r *appointmentRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Appointment, error) {
	return updateByID[model.Appointment](ctx, r.coll, id, fields, "appointment")
}

func (r *appointmentRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "appointment")
}

func (r *appointmentRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}

func (r *appointmentRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return groupCounts(ctx, r.coll, "status", nil)
}

// MonthlyCounts buckets bookings of the given year per calendar month.
func (r *appointmentRepository) MonthlyCounts(ctx context.Context, year int) ([]int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	pipeline := []bson.M{
		{"$match": bson.M{"bookingDate": bson.M{"$gte": start, "$lt": end}}},
		{"$group": bson.M{
			"_id":   bson.M{"$month": "$bookingDate"},
			"count": bson.M{"$sum": 1},
		}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly bookings: %w", err)
	}
	defer cur.Close(ctx)

	var buckets []struct {
		Month int   `bson:"_id"`
		Count int64 `bson:"count"`
	}
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode monthly bookings: %w", err)
	}

	counts := make([]int64, 12)
	for _, b := range buckets {
		if b.Month >= 1 && b.Month <= 12 {
			counts[b.Month-1] = b.Count
		}
	}
	return counts, nil
}
