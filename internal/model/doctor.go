package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DoctorStatus string

const (
	DoctorStatusActive   DoctorStatus = "active"
	DoctorStatusInactive DoctorStatus = "inactive"
)

func (s DoctorStatus) Valid() bool {
	return s == DoctorStatusActive || s == DoctorStatusInactive
}

type ProfessionalTitle string

const (
	TitleDr   ProfessionalTitle = "Dr."
	TitleProf ProfessionalTitle = "Prof."
	TitleMr   ProfessionalTitle = "Mr."
	TitleMs   ProfessionalTitle = "Ms."
)

func (t ProfessionalTitle) Valid() bool {
	switch t {
	case TitleDr, TitleProf, TitleMr, TitleMs:
		return true
	}
	return false
}

// Qualification carries its own id so a single degree can be updated or
// removed without rewriting the whole list
type Qualification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Degree    string             `bson:"degree" json:"degree"`
	Institute string             `bson:"institute" json:"institute"`
	Year      string             `bson:"year" json:"year"`
}

type MapCoordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Doctor struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName          string             `bson:"fullName" json:"fullName"`
	ProfessionalTitle ProfessionalTitle  `bson:"professionalTitle" json:"professionalTitle"`
	Specialty         string             `bson:"specialty" json:"specialty"`
	MainCategory      string             `bson:"mainCategory" json:"mainCategory"`
	Rating            float64            `bson:"rating" json:"rating"`
	ReviewCount       int                `bson:"reviewCount" json:"reviewCount"`
	ConsultationFees  float64            `bson:"consultationFees" json:"consultationFees"`
	Experience        string             `bson:"experience" json:"experience"`
	About             string             `bson:"about,omitempty" json:"about,omitempty"`
	ProfileImageURL   string             `bson:"profileImageUrl,omitempty" json:"profileImageUrl,omitempty"`
	ContactNumber     string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	Qualifications    []Qualification    `bson:"qualifications" json:"qualifications"`
	Cities            []string           `bson:"cities" json:"cities"`
	DiseasesTreated   []string           `bson:"diseasesTreated" json:"diseasesTreated"`
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	MapCoordinates    *MapCoordinates    `bson:"mapCoordinates,omitempty" json:"mapCoordinates,omitempty"`
	MapLink           string             `bson:"mapLink,omitempty" json:"mapLink,omitempty"`
	EmployeeCode      string             `bson:"employeeCode,omitempty" json:"employeeCode,omitempty"`
	Status            DoctorStatus       `bson:"status" json:"status"`
	IsVisitingDoctor  bool               `bson:"isVisitingDoctor" json:"isVisitingDoctor"`
	IsHospitalDoctor  bool               `bson:"isHospitalDoctor" json:"isHospitalDoctor"`
	Timestamps        `bson:",inline"`
}

type CreateDoctorRequest struct {
	FullName          string          `json:"fullName" binding:"required"`
	ProfessionalTitle string          `json:"professionalTitle" binding:"required"`
	Specialty         string          `json:"specialty" binding:"required"`
	MainCategory      string          `json:"mainCategory"`
	Rating            float64         `json:"rating" binding:"gte=0,lte=5"`
	ConsultationFees  float64         `json:"consultationFees" binding:"gte=0"`
	Experience        string          `json:"experience"`
	About             string          `json:"about"`
	ProfileImageURL   string          `json:"profileImageUrl"`
	ContactNumber     string          `json:"contactNumber"`
	Qualifications    []Qualification `json:"qualifications"`
	Cities            []string        `json:"cities"`
	DiseasesTreated   []string        `json:"diseasesTreated"`
	Address           string          `json:"address"`
	MapCoordinates    *MapCoordinates `json:"mapCoordinates"`
	MapLink           string          `json:"mapLink"`
	EmployeeCode      string          `json:"employeeCode"`
	IsVisitingDoctor  bool            `json:"isVisitingDoctor"`
	IsHospitalDoctor  bool            `json:"isHospitalDoctor"`
}

type UpdateDoctorRatingRequest struct {
	Rating      float64 `json:"rating" binding:"gte=0,lte=5"`
	ReviewCount *int    `json:"reviewCount"`
}

type UpdateDoctorFeesRequest struct {
	ConsultationFees float64 `json:"consultationFees" binding:"gte=0"`
}

type UpdateDoctorStatusRequest struct {
	Status DoctorStatus `json:"status" binding:"required"`
}

type QualificationRequest struct {
	Degree    string `json:"degree" binding:"required"`
	Institute string `json:"institute" binding:"required"`
	Year      string `json:"year"`
}

// DoctorStats aggregates counts for the dashboard
type DoctorStats struct {
	Total       int64            `json:"total"`
	Active      int64            `json:"active"`
	Inactive    int64            `json:"inactive"`
	BySpecialty map[string]int64 `json:"bySpecialty"`
	ByCategory  map[string]int64 `json:"byCategory"`
}
