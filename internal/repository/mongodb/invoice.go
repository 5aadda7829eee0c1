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

type invoiceRepository struct {
	coll *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *invoiceRepository {
	return &invoiceRepository{coll: db.Collection(collInvoices)}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	invoice.RecalculateTotals()
	invoice.Touch(time.Now())
	res, err := r.coll.InsertOne(ctx, invoice)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		invoice.ID = oid
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id primitive.ObjectID) (*model.Invoice, error) {
	return getByID[model.Invoice](ctx, r.coll, id, "invoice")
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	return findOne[model.Invoice](ctx, r.coll, bson.M{"invoiceNumber": number}, "invoice")
}

func (r *invoiceRepository) GetByAppointment(ctx context.Context, appointmentID primitive.ObjectID) (*model.Invoice, error) {
	return findOne[model.Invoice](ctx, r.coll, bson.M{"appointmentId": appointmentID}, "invoice")
}

func (r *invoiceRepository) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Invoice, int64, error) {
	return findPage[model.Invoice](ctx, r.coll, filter, opts)
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	invoice.RecalculateTotals()
	invoice.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": invoice.ID}, invoice)
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("invoice", nil)
	}
	return nil
}

func (r *invoiceRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Invoice, error) {
	updated, err := updateByID[model.Invoice](ctx, r.coll, id, fields, "invoice")
	if err != nil {
		return nil, err
	}
	// keep the arithmetic invariant after partial amount updates
	recalced := *updated
	recalced.RecalculateTotals()
	if recalced.Subtotal != updated.Subtotal || recalced.Total != updated.Total {
		return updateByID[model.Invoice](ctx, r.coll, id, bson.M{
			"subtotal": recalced.Subtotal,
			"total":    recalced.Total,
		}, "invoice")
	}
	return updated, nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.coll, id, "invoice")
}

func (r *invoiceRepository) Count(ctx context.Context, filter bson.M) (int64, error) {
	return countDocs(ctx, r.coll, filter)
}

// CountInMonth backs the sequential invoice-number scheme. Counting then
// inserting is racy under concurrent generation; duplicate numbers are
// accepted as a known limitation.
func (r *invoiceRepository) CountInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return countDocs(ctx, r.coll, bson.M{
		"issueDate": bson.M{"$gte": start, "$lt": end},
	})
}

// MarkOverdue flips pending invoices past their due date to overdue.
func (r *invoiceRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{
			"status":  model.InvoiceStatusPending,
			"dueDate": bson.M{"$lt": asOf},
		},
		bson.M{"$set": bson.M{
			"status":    model.InvoiceStatusOverdue,
			"updatedAt": time.Now(),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *invoiceRepository) Stats(ctx context.Context) (*model.InvoiceStats, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":    "$status",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$total"},
		}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate invoice stats: %w", err)
	}
	defer cur.Close(ctx)

	var buckets []struct {
		Status string  `bson:"_id"`
		Count  int64   `bson:"count"`
		Amount float64 `bson:"amount"`
	}
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode invoice stats: %w", err)
	}

	stats := &model.InvoiceStats{}
	for _, b := range buckets {
		stats.Total += b.Count
		stats.TotalAmount += b.Amount
		switch model.InvoiceStatus(b.Status) {
		case model.InvoiceStatusPending:
			stats.Pending = b.Count
			stats.PendingAmount = b.Amount
		case model.InvoiceStatusPaid:
			stats.Paid = b.Count
			stats.PaidAmount = b.Amount
		case model.InvoiceStatusOverdue:
			stats.Overdue = b.Count
		}
	}
	return stats, nil
}
