package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SettingsType string

const (
	SettingsTypeGeneral       SettingsType = "general"
	SettingsTypeNotifications SettingsType = "notifications"
	SettingsTypeSecurity      SettingsType = "security"
	SettingsTypeAppearance    SettingsType = "appearance"
)

func (t SettingsType) Valid() bool {
	switch t {
	case SettingsTypeGeneral, SettingsTypeNotifications, SettingsTypeSecurity, SettingsTypeAppearance:
		return true
	}
	return false
}

// Settings is a singleton document per type
type Settings struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        SettingsType       `bson:"type" json:"type"`
	Data        bson.M             `bson:"data" json:"data"`
	LastUpdated time.Time          `bson:"lastUpdated" json:"lastUpdated"`
	UpdatedBy   string             `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	Timestamps  `bson:",inline"`
}

type UpsertSettingsRequest struct {
	Data bson.M `json:"data" binding:"required"`
}
