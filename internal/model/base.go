package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timestamps contains the audit fields shared by every collection
type Timestamps struct {
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Touch stamps UpdatedAt, and CreatedAt when unset
func (t *Timestamps) Touch(now time.Time) {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}

// ObjectIDFromHex parses a hex id, returning false on malformed input
func ObjectIDFromHex(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
