package notification

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

type Service struct {
	repo repository.NotificationRepository
}

func NewService(repo repository.NotificationRepository) *Service {
	return &Service{repo: repo}
}

// senderPopulate joins the sending user into list results. The password
// hash is projected away even though the model never serializes it.
var senderPopulate = []query.Populate{{
	Path:   "senderId",
	From:   "users",
	As:     "sender",
	Select: bson.M{"sender.passwordHash": 0},
}}

func (s *Service) Send(ctx context.Context, req *model.SendNotificationRequest) (*model.Notification, error) {
	notifType := req.Type
	if notifType == "" {
		notifType = model.NotificationTypeInfo
	}
	if !notifType.Valid() {
		return nil, apperrors.Validationf("invalid notification type: %s", notifType)
	}
	recipientID, err := parseID(req.RecipientID)
	if err != nil {
		return nil, err
	}

	n := &model.Notification{
		Title:       req.Title,
		Message:     req.Message,
		Type:        notifType,
		RecipientID: recipientID,
		Data:        req.Data,
		Priority:    req.Priority,
		Status:      model.NotificationStatusActive,
	}
	if req.SenderID != "" {
		senderID, err := parseID(req.SenderID)
		if err != nil {
			return nil, err
		}
		n.SenderID = &senderID
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListForRecipient returns a user's notifications, optionally narrowed by
// type, status and read flag.
func (s *Service) ListForRecipient(ctx context.Context, recipientID string, filters model.NotificationFilters, opts query.Options) ([]model.Notification, int64, error) {
	rid, err := parseID(recipientID)
	if err != nil {
		return nil, 0, err
	}

	filter := bson.M{"recipientId": rid}
	if filters.Type != "" {
		if !filters.Type.Valid() {
			return nil, 0, apperrors.Validationf("invalid notification type: %s", filters.Type)
		}
		filter["type"] = filters.Type
	}
	if filters.Status != "" {
		if !filters.Status.Valid() {
			return nil, 0, apperrors.Validationf("invalid status: %s", filters.Status)
		}
		filter["status"] = filters.Status
	} else {
		filter["status"] = bson.M{"$ne": model.NotificationStatusDeleted}
	}
	if filters.Read != nil {
		filter["read"] = *filters.Read
	}

	opts.Populate = senderPopulate
	return s.repo.List(ctx, filter, opts)
}

func (s *Service) Unread(ctx context.Context, recipientID string, opts query.Options) ([]model.Notification, int64, error) {
	rid, err := parseID(recipientID)
	if err != nil {
		return nil, 0, err
	}
	opts.Populate = senderPopulate
	return s.repo.List(ctx, bson.M{
		"recipientId": rid,
		"read":        false,
		"status":      model.NotificationStatusActive,
	}, opts)
}

func (s *Service) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	rid, err := parseID(recipientID)
	if err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, bson.M{
		"recipientId": rid,
		"read":        false,
		"status":      model.NotificationStatusActive,
	})
}

func (s *Service) MarkRead(ctx context.Context, id, recipientID string) (*model.Notification, error) {
	oid, rid, err := parseIDs(id, recipientID)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateForRecipient(ctx, oid, rid, bson.M{
		"read":   true,
		"readAt": time.Now(),
	})
}

func (s *Service) MarkUnread(ctx context.Context, id, recipientID string) (*model.Notification, error) {
	oid, rid, err := parseIDs(id, recipientID)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateForRecipient(ctx, oid, rid, bson.M{
		"read":   false,
		"readAt": nil,
	})
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	rid, err := parseID(recipientID)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateManyForRecipient(ctx, rid,
		bson.M{"read": false},
		bson.M{"read": true, "readAt": time.Now()},
	)
}

func (s *Service) Dismiss(ctx context.Context, id, recipientID string) (*model.Notification, error) {
	oid, rid, err := parseIDs(id, recipientID)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateForRecipient(ctx, oid, rid, bson.M{
		"dismissed":   true,
		"dismissedAt": time.Now(),
	})
}

func (s *Service) Delete(ctx context.Context, id, recipientID string) error {
	oid, rid, err := parseIDs(id, recipientID)
	if err != nil {
		return err
	}
	return s.repo.DeleteForRecipient(ctx, oid, rid)
}

func (s *Service) DeleteAll(ctx context.Context, recipientID string) (int64, error) {
	rid, err := parseID(recipientID)
	if err != nil {
		return 0, err
	}
	return s.repo.DeleteAllForRecipient(ctx, rid)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, ok := model.ObjectIDFromHex(id)
	if !ok {
		return primitive.NilObjectID, apperrors.Validationf("invalid id: %s", id)
	}
	return oid, nil
}

func parseIDs(id, recipientID string) (primitive.ObjectID, primitive.ObjectID, error) {
	oid, err := parseID(id)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	rid, err := parseID(recipientID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}
	return oid, rid, nil
}
