package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func declaredIndex(t *testing.T, coll, field string) *bool {
	t.Helper()
	for _, m := range collectionIndexes[coll] {
		keys, ok := m.Keys.(bson.D)
		require.True(t, ok)
		if len(keys) > 0 && keys[0].Key == field {
			if m.Options == nil {
				unique := false
				return &unique
			}
			if m.Options.Unique == nil {
				unique := false
				return &unique
			}
			return m.Options.Unique
		}
	}
	return nil
}

func TestCollectionIndexes_UniqueConstraints(t *testing.T) {
	for coll, field := range map[string]string{
		collInvoices:   "invoiceNumber",
		collBlogs:      "slug",
		collTreatments: "url",
		collUsers:      "email",
	} {
		unique := declaredIndex(t, coll, field)
		require.NotNil(t, unique, "%s.%s index missing", coll, field)
		assert.True(t, *unique, "%s.%s must be unique", coll, field)
	}
}

func TestCollectionIndexes_NotificationRecipientScope(t *testing.T) {
	unique := declaredIndex(t, collNotifications, "recipientId")
	require.NotNil(t, unique)
	assert.False(t, *unique)
}
