package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

type fakeRepo struct {
	notifications map[primitive.ObjectID]*model.Notification
	lastFilter    bson.M
	lastOpts      query.Options
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{notifications: map[primitive.ObjectID]*model.Notification{}}
}

func (f *fakeRepo) Create(ctx context.Context, n *model.Notification) error {
	n.ID = primitive.NewObjectID()
	n.Touch(time.Now())
	f.notifications[n.ID] = n
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Notification, error) {
	n, ok := f.notifications[id]
	if !ok {
		return nil, apperrors.NotFound("notification", nil)
	}
	copied := *n
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Notification, int64, error) {
	f.lastFilter = filter
	f.lastOpts = opts
	out := []model.Notification{}
	for _, n := range f.notifications {
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	f.lastFilter = filter
	return int64(len(f.notifications)), nil
}

func (f *fakeRepo) UpdateForRecipient(ctx context.Context, id, recipientID primitive.ObjectID, fields bson.M) (*model.Notification, error) {
	n, ok := f.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return nil, apperrors.NotFound("notification", nil)
	}
	for k, v := range fields {
		switch k {
		case "read":
			n.Read = v.(bool)
		case "readAt":
			if t, ok := v.(time.Time); ok {
				n.ReadAt = &t
			} else {
				n.ReadAt = nil
			}
		case "dismissed":
			n.Dismissed = v.(bool)
		case "dismissedAt":
			t := v.(time.Time)
			n.DismissedAt = &t
		}
	}
	copied := *n
	return &copied, nil
}

func (f *fakeRepo) UpdateManyForRecipient(ctx context.Context, recipientID primitive.ObjectID, filter, fields bson.M) (int64, error) {
	var n int64
	for _, notif := range f.notifications {
		if notif.RecipientID == recipientID && !notif.Read {
			notif.Read = true
			n++
		}
	}
	return n, nil
}

func (f *fakeRepo) DeleteForRecipient(ctx context.Context, id, recipientID primitive.ObjectID) error {
	n, ok := f.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return apperrors.NotFound("notification", nil)
	}
	delete(f.notifications, id)
	return nil
}

func (f *fakeRepo) DeleteAllForRecipient(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	var n int64
	for id, notif := range f.notifications {
		if notif.RecipientID == recipientID {
			delete(f.notifications, id)
			n++
		}
	}
	return n, nil
}

func send(t *testing.T, svc *Service, recipient primitive.ObjectID) *model.Notification {
	t.Helper()
	n, err := svc.Send(context.Background(), &model.SendNotificationRequest{
		Title:       "Appointment confirmed",
		Message:     "See you at 10:30",
		Type:        model.NotificationTypeAppointment,
		RecipientID: recipient.Hex(),
	})
	require.NoError(t, err)
	return n
}

func TestSend_DefaultsInfoAndActive(t *testing.T) {
	svc := NewService(newFakeRepo())
	recipient := primitive.NewObjectID()

	n, err := svc.Send(context.Background(), &model.SendNotificationRequest{
		Title:       "Hello",
		Message:     "World",
		RecipientID: recipient.Hex(),
	})
	require.NoError(t, err)
	assert.Equal(t, model.NotificationTypeInfo, n.Type)
	assert.Equal(t, model.NotificationStatusActive, n.Status)
	assert.False(t, n.Read)
}

func TestMarkRead_ScopedToRecipient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	recipient := primitive.NewObjectID()
	other := primitive.NewObjectID()
	n := send(t, svc, recipient)

	// someone else's id gets not-found, not someone else's data
	_, err := svc.MarkRead(context.Background(), n.ID.Hex(), other.Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.False(t, repo.notifications[n.ID].Read)

	updated, err := svc.MarkRead(context.Background(), n.ID.Hex(), recipient.Hex())
	require.NoError(t, err)
	assert.True(t, updated.Read)
	require.NotNil(t, updated.ReadAt)
}

func TestDelete_ScopedToRecipient(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	recipient := primitive.NewObjectID()
	n := send(t, svc, recipient)

	err := svc.Delete(context.Background(), n.ID.Hex(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.Contains(t, repo.notifications, n.ID)

	err = svc.Delete(context.Background(), n.ID.Hex(), recipient.Hex())
	require.NoError(t, err)
	assert.NotContains(t, repo.notifications, n.ID)
}

func TestMarkAllRead(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	recipient := primitive.NewObjectID()
	send(t, svc, recipient)
	send(t, svc, recipient)
	send(t, svc, primitive.NewObjectID())

	n, err := svc.MarkAllRead(context.Background(), recipient.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestListForRecipient_Filters(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	recipient := primitive.NewObjectID()

	read := true
	_, _, err := svc.ListForRecipient(context.Background(), recipient.Hex(), model.NotificationFilters{
		Type: model.NotificationTypeReminder,
		Read: &read,
	}, query.Options{Page: 1, Limit: 5})
	require.NoError(t, err)

	assert.Equal(t, model.NotificationTypeReminder, repo.lastFilter["type"])
	assert.Equal(t, true, repo.lastFilter["read"])
	// deleted notifications are hidden unless a status is asked for
	assert.Equal(t, bson.M{"$ne": model.NotificationStatusDeleted}, repo.lastFilter["status"])
}

func TestList_JoinsSender(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	recipient := primitive.NewObjectID()

	_, _, err := svc.ListForRecipient(context.Background(), recipient.Hex(),
		model.NotificationFilters{}, query.Options{Page: 1, Limit: 5})
	require.NoError(t, err)

	require.Len(t, repo.lastOpts.Populate, 1)
	p := repo.lastOpts.Populate[0]
	assert.Equal(t, "senderId", p.Path)
	assert.Equal(t, "users", p.From)
	assert.Equal(t, "sender", p.As)

	_, _, err = svc.Unread(context.Background(), recipient.Hex(), query.Options{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, repo.lastOpts.Populate, 1)
}

func TestSend_InvalidRecipient(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Send(context.Background(), &model.SendNotificationRequest{
		Title: "x", Message: "y", RecipientID: "nope",
	})
	require.Error(t, err)
}
