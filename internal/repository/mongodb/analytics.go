package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thelivecure/admin-api/internal/model"
)

// analyticsRepository aggregates across several collections, so it holds
// the database handle instead of a single collection.
type analyticsRepository struct {
	db *mongo.Database
}

func NewAnalyticsRepository(db *mongo.Database) *analyticsRepository {
	return &analyticsRepository{db: db}
}

// RevenueByPeriod buckets matching appointments by a $dateToString format
// over createdAt and sums consultation fees per bucket.
func (r *analyticsRepository) RevenueByPeriod(ctx context.Context, dateFormat string, match bson.M) ([]model.RevenueBucket, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": dateFormat,
				"date":   "$createdAt",
			}},
			"count":   bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$consultationFees"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	var buckets []model.RevenueBucket
	if err := r.aggregate(ctx, collAppointments, pipeline, &buckets); err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	return buckets, nil
}

func (r *analyticsRepository) DoctorPerformance(ctx context.Context, match bson.M) ([]model.PerformanceBucket, error) {
	return r.performance(ctx, "doctorId", collDoctors, "fullName", match)
}

func (r *analyticsRepository) ClinicPerformance(ctx context.Context, match bson.M) ([]model.PerformanceBucket, error) {
	return r.performance(ctx, "clinicId", collClinics, "name", match)
}

// performance groups appointments under a reference field and joins the
// referenced document's display name.
func (r *analyticsRepository) performance(ctx context.Context, groupField, from, nameField string, match bson.M) ([]model.PerformanceBucket, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   "$" + groupField,
			"total": bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{
				"$cond": []interface{}{
					bson.M{"$eq": []interface{}{"$status", model.AppointmentStatusCompleted}},
					1, 0,
				},
			}},
			"revenue": bson.M{"$sum": "$consultationFees"},
		}},
		{"$lookup": bson.M{
			"from":         from,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "ref",
		}},
		{"$addFields": bson.M{
			"name": bson.M{"$arrayElemAt": []interface{}{"$ref." + nameField, 0}},
		}},
		{"$project": bson.M{"ref": 0}},
		{"$sort": bson.M{"total": -1}},
	}

	var buckets []model.PerformanceBucket
	if err := r.aggregate(ctx, collAppointments, pipeline, &buckets); err != nil {
		return nil, fmt.Errorf("failed to aggregate %s performance: %w", groupField, err)
	}
	return buckets, nil
}

func (r *analyticsRepository) BlogTotals(ctx context.Context, match bson.M) (*model.ContentTotals, error) {
	return r.contentTotals(ctx, collBlogs, match)
}

func (r *analyticsRepository) StoryTotals(ctx context.Context, match bson.M) (*model.ContentTotals, error) {
	return r.contentTotals(ctx, collStories, match)
}

func (r *analyticsRepository) contentTotals(ctx context.Context, coll string, match bson.M) (*model.ContentTotals, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":       nil,
			"total":     bson.M{"$sum": 1},
			"views":     bson.M{"$sum": bson.M{"$ifNull": []interface{}{"$views", 0}}},
			"avgRating": bson.M{"$avg": "$rating"},
		}},
		// collections without a rating field average to null
		{"$addFields": bson.M{"avgRating": bson.M{"$ifNull": []interface{}{"$avgRating", 0}}}},
	}

	var totals []model.ContentTotals
	if err := r.aggregate(ctx, coll, pipeline, &totals); err != nil {
		return nil, fmt.Errorf("failed to aggregate %s totals: %w", coll, err)
	}
	if len(totals) == 0 {
		return &model.ContentTotals{}, nil
	}
	return &totals[0], nil
}

func (r *analyticsRepository) AppointmentsByCity(ctx context.Context, match bson.M) ([]model.NameCount, error) {
	return r.cityCounts(ctx, collAppointments, "$city", match, false)
}

func (r *analyticsRepository) DoctorsByCity(ctx context.Context, match bson.M) ([]model.NameCount, error) {
	return r.cityCounts(ctx, collDoctors, "$cities", match, true)
}

func (r *analyticsRepository) ClinicsByCity(ctx context.Context, match bson.M) ([]model.NameCount, error) {
	return r.cityCounts(ctx, collClinics, "$city", match, false)
}

func (r *analyticsRepository) cityCounts(ctx context.Context, coll, field string, match bson.M, unwind bool) ([]model.NameCount, error) {
	pipeline := []bson.M{{"$match": match}}
	if unwind {
		pipeline = append(pipeline, bson.M{"$unwind": field})
	}
	pipeline = append(pipeline,
		bson.M{"$group": bson.M{
			"_id":   field,
			"count": bson.M{"$sum": 1},
		}},
		bson.M{"$sort": bson.M{"count": -1}},
	)

	var buckets []model.NameCount
	if err := r.aggregate(ctx, coll, pipeline, &buckets); err != nil {
		return nil, fmt.Errorf("failed to aggregate %s by city: %w", coll, err)
	}
	return buckets, nil
}

func (r *analyticsRepository) aggregate(ctx context.Context, coll string, pipeline []bson.M, out interface{}) error {
	cur, err := r.db.Collection(coll).Aggregate(ctx, pipeline)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}
