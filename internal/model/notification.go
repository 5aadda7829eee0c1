package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeInfo        NotificationType = "info"
	NotificationTypeSuccess     NotificationType = "success"
	NotificationTypeWarning     NotificationType = "warning"
	NotificationTypeError       NotificationType = "error"
	NotificationTypeAppointment NotificationType = "appointment"
	NotificationTypeReminder    NotificationType = "reminder"
	NotificationTypeSystem      NotificationType = "system"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTypeInfo, NotificationTypeSuccess, NotificationTypeWarning,
		NotificationTypeError, NotificationTypeAppointment, NotificationTypeReminder,
		NotificationTypeSystem:
		return true
	}
	return false
}

type NotificationStatus string

const (
	NotificationStatusActive   NotificationStatus = "active"
	NotificationStatusArchived NotificationStatus = "archived"
	NotificationStatusDeleted  NotificationStatus = "deleted"
)

func (s NotificationStatus) Valid() bool {
	switch s {
	case NotificationStatusActive, NotificationStatusArchived, NotificationStatusDeleted:
		return true
	}
	return false
}

type Notification struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Message     string              `bson:"message" json:"message"`
	Type        NotificationType    `bson:"type" json:"type"`
	RecipientID primitive.ObjectID  `bson:"recipientId" json:"recipientId"`
	SenderID    *primitive.ObjectID `bson:"senderId,omitempty" json:"senderId,omitempty"`
	// Sender is joined in by list queries, never stored.
	Sender *User `bson:"sender,omitempty" json:"sender,omitempty"`
	Read        bool                `bson:"read" json:"read"`
	ReadAt      *time.Time          `bson:"readAt,omitempty" json:"readAt,omitempty"`
	Dismissed   bool                `bson:"dismissed" json:"dismissed"`
	DismissedAt *time.Time          `bson:"dismissedAt,omitempty" json:"dismissedAt,omitempty"`
	Data        bson.M              `bson:"data,omitempty" json:"data,omitempty"`
	Priority    string              `bson:"priority,omitempty" json:"priority,omitempty"`
	Status      NotificationStatus  `bson:"status" json:"status"`
	Timestamps  `bson:",inline"`
}

type SendNotificationRequest struct {
	Title       string           `json:"title" binding:"required"`
	Message     string           `json:"message" binding:"required"`
	Type        NotificationType `json:"type"`
	RecipientID string           `json:"recipientId" binding:"required"`
	SenderID    string           `json:"senderId"`
	Data        bson.M           `json:"data"`
	Priority    string           `json:"priority"`
}

// NotificationFilters narrows a recipient's notification list
type NotificationFilters struct {
	Type   NotificationType
	Status NotificationStatus
	Read   *bool
}
