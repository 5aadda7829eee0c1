package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names
const (
	collAppointments  = "appointments"
	collInvoices      = "invoices"
	collDoctors       = "doctors"
	collClinics       = "clinics"
	collBlogs         = "blogs"
	collStories       = "patientstories"
	collTreatments    = "treatments"
	collInquiries     = "contactinquiries"
	collNotifications = "notifications"
	collSettings      = "settings"
	collUsers         = "users"
)

// Connect opens a client, verifies connectivity and returns the database
// handle plus a disconnect function.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, func(context.Context) error, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	return db, client.Disconnect, nil
}

func uniqueIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}

func index(keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys}
}

// collectionIndexes declares the indexes ensured at startup. Invoice
// numbers, blog slugs, treatment urls and user emails must be unique; the
// rest back the hot list filters.
var collectionIndexes = map[string][]mongo.IndexModel{
	collInvoices: {
		uniqueIndex("invoiceNumber"),
		index(bson.D{{Key: "appointmentId", Value: 1}}),
		index(bson.D{{Key: "patientEmail", Value: 1}}),
		index(bson.D{{Key: "status", Value: 1}}),
		index(bson.D{{Key: "issueDate", Value: -1}}),
	},
	collBlogs: {
		uniqueIndex("slug"),
		index(bson.D{{Key: "status", Value: 1}, {Key: "category", Value: 1}}),
	},
	collTreatments: {
		uniqueIndex("url"),
	},
	collUsers: {
		uniqueIndex("email"),
	},
	collAppointments: {
		index(bson.D{{Key: "status", Value: 1}}),
		index(bson.D{{Key: "preferredDate", Value: 1}}),
		index(bson.D{{Key: "patientEmail", Value: 1}}),
	},
	collNotifications: {
		index(bson.D{{Key: "recipientId", Value: 1}, {Key: "read", Value: 1}}),
	},
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range collectionIndexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
