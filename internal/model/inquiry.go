package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InquiryType string

const (
	InquiryTypeGeneral     InquiryType = "general"
	InquiryTypeAppointment InquiryType = "appointment"
	InquiryTypeFeedback    InquiryType = "feedback"
)

func (t InquiryType) Valid() bool {
	switch t {
	case InquiryTypeGeneral, InquiryTypeAppointment, InquiryTypeFeedback:
		return true
	}
	return false
}

type InquiryStatus string

const (
	InquiryStatusNew        InquiryStatus = "new"
	InquiryStatusInProgress InquiryStatus = "in_progress"
	InquiryStatusResolved   InquiryStatus = "resolved"
	InquiryStatusClosed     InquiryStatus = "closed"
)

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryStatusNew, InquiryStatusInProgress, InquiryStatusResolved, InquiryStatusClosed:
		return true
	}
	return false
}

type InquiryPriority string

const (
	InquiryPriorityLow    InquiryPriority = "low"
	InquiryPriorityMedium InquiryPriority = "medium"
	InquiryPriorityHigh   InquiryPriority = "high"
	InquiryPriorityUrgent InquiryPriority = "urgent"
)

func (p InquiryPriority) Valid() bool {
	switch p {
	case InquiryPriorityLow, InquiryPriorityMedium, InquiryPriorityHigh, InquiryPriorityUrgent:
		return true
	}
	return false
}

type ContactInquiry struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	Email       string              `bson:"email" json:"email"`
	Phone       string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject     string              `bson:"subject" json:"subject"`
	Message     string              `bson:"message" json:"message"`
	Type        InquiryType         `bson:"type" json:"type"`
	Status      InquiryStatus       `bson:"status" json:"status"`
	Priority    InquiryPriority     `bson:"priority" json:"priority"`
	AssignedTo  *primitive.ObjectID `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	RespondedBy *primitive.ObjectID `bson:"respondedBy,omitempty" json:"respondedBy,omitempty"`
	Response    string              `bson:"response,omitempty" json:"response,omitempty"`
	RespondedAt *time.Time          `bson:"respondedAt,omitempty" json:"respondedAt,omitempty"`
	Timestamps  `bson:",inline"`
}

type CreateInquiryRequest struct {
	Name    string      `json:"name" binding:"required"`
	Email   string      `json:"email" binding:"required,email"`
	Phone   string      `json:"phone"`
	Subject string      `json:"subject" binding:"required"`
	Message string      `json:"message" binding:"required"`
	Type    InquiryType `json:"type"`
}

type RespondInquiryRequest struct {
	Response string `json:"response" binding:"required"`
}

type AssignInquiryRequest struct {
	AssignedTo string `json:"assignedTo" binding:"required"`
}

type UpdateInquiryStatusRequest struct {
	Status InquiryStatus `json:"status" binding:"required"`
}

// InquiryStats aggregates inquiry counts for the dashboard
type InquiryStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	ByType     map[string]int64 `json:"byType"`
	ByPriority map[string]int64 `json:"byPriority"`
	Unresolved int64            `json:"unresolved"`
}
