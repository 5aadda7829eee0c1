package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClinicType string

const (
	ClinicTypePrimaryCare      ClinicType = "Primary Care"
	ClinicTypeSpecialtyClinic  ClinicType = "Specialty Clinic"
	ClinicTypeHospital         ClinicType = "Hospital"
	ClinicTypeEmergencyCenter  ClinicType = "Emergency Center"
	ClinicTypeDiagnosticCenter ClinicType = "Diagnostic Center"
)

func (t ClinicType) Valid() bool {
	switch t {
	case ClinicTypePrimaryCare, ClinicTypeSpecialtyClinic, ClinicTypeHospital,
		ClinicTypeEmergencyCenter, ClinicTypeDiagnosticCenter:
		return true
	}
	return false
}

type ClinicStatus string

const (
	ClinicStatusActive   ClinicStatus = "active"
	ClinicStatusInactive ClinicStatus = "inactive"
)

func (s ClinicStatus) Valid() bool {
	return s == ClinicStatusActive || s == ClinicStatusInactive
}

// DayHours describes opening hours for a single weekday
type DayHours struct {
	Open     string `bson:"open" json:"open"`
	Close    string `bson:"close" json:"close"`
	IsClosed bool   `bson:"isClosed" json:"isClosed"`
}

type WorkingHours map[string]DayHours

type Clinic struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Type                ClinicType         `bson:"type" json:"type"`
	Address             string             `bson:"address" json:"address"`
	City                string             `bson:"city" json:"city"`
	State               string             `bson:"state" json:"state"`
	Pincode             string             `bson:"pincode" json:"pincode"`
	Phone               string             `bson:"phone" json:"phone"`
	Email               string             `bson:"email,omitempty" json:"email,omitempty"`
	Website             string             `bson:"website,omitempty" json:"website,omitempty"`
	Status              ClinicStatus       `bson:"status" json:"status"`
	Specialties         []string           `bson:"specialties" json:"specialties"`
	Facilities          []string           `bson:"facilities" json:"facilities"`
	Amenities           []string           `bson:"amenities" json:"amenities"`
	WorkingHours        WorkingHours       `bson:"workingHours,omitempty" json:"workingHours,omitempty"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	EmergencyContact    string             `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	IsEmergencyCenter   bool               `bson:"isEmergencyCenter" json:"isEmergencyCenter"`
	Is24Hours           bool               `bson:"is24Hours" json:"is24Hours"`
	HasParking          bool               `bson:"hasParking" json:"hasParking"`
	HasWheelchairAccess bool               `bson:"hasWheelchairAccess" json:"hasWheelchairAccess"`
	Timestamps          `bson:",inline"`
}

type CreateClinicRequest struct {
	Name                string       `json:"name" binding:"required"`
	Type                ClinicType   `json:"type" binding:"required"`
	Address             string       `json:"address" binding:"required"`
	City                string       `json:"city" binding:"required"`
	State               string       `json:"state"`
	Pincode             string       `json:"pincode"`
	Phone               string       `json:"phone" binding:"required"`
	Email               string       `json:"email"`
	Website             string       `json:"website"`
	Specialties         []string     `json:"specialties"`
	Facilities          []string     `json:"facilities"`
	Amenities           []string     `json:"amenities"`
	WorkingHours        WorkingHours `json:"workingHours"`
	Description         string       `json:"description"`
	EmergencyContact    string       `json:"emergencyContact"`
	IsEmergencyCenter   bool         `json:"isEmergencyCenter"`
	Is24Hours           bool         `json:"is24Hours"`
	HasParking          bool         `json:"hasParking"`
	HasWheelchairAccess bool         `json:"hasWheelchairAccess"`
}

type UpdateClinicStatusRequest struct {
	Status ClinicStatus `json:"status" binding:"required"`
}

type UpdateWorkingHoursRequest struct {
	WorkingHours WorkingHours `json:"workingHours" binding:"required"`
}

// ClinicStats aggregates clinic breakdowns for the dashboard
type ClinicStats struct {
	Total            int64            `json:"total"`
	Active           int64            `json:"active"`
	Inactive         int64            `json:"inactive"`
	ByType           map[string]int64 `json:"byType"`
	ByCity           map[string]int64 `json:"byCity"`
	ByState          map[string]int64 `json:"byState"`
	EmergencyCenters int64            `json:"emergencyCenters"`
	OpenAllDay       int64            `json:"openAllDay"`
	WithParking      int64            `json:"withParking"`
	WheelchairAccess int64            `json:"wheelchairAccess"`
	TopSpecialties   []NameCount      `json:"topSpecialties"`
	TopFacilities    []NameCount      `json:"topFacilities"`
	RecentlyAdded    []Clinic         `json:"recentlyAdded"`
}

// NameCount is a generic aggregation bucket
type NameCount struct {
	Name  string `bson:"_id" json:"name"`
	Count int64  `bson:"count" json:"count"`
}
