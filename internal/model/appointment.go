package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentStatus string

const (
	AppointmentStatusPending     AppointmentStatus = "pending"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCancelled, AppointmentStatusCompleted,
		AppointmentStatusRescheduled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type Appointment struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PatientName       string              `bson:"patientName" json:"patientName"`
	PatientMobile     string              `bson:"patientMobile" json:"patientMobile"`
	PatientEmail      string              `bson:"patientEmail" json:"patientEmail"`
	PatientAge        int                 `bson:"patientAge" json:"patientAge"`
	PatientGender     string              `bson:"patientGender" json:"patientGender"`
	City              string              `bson:"city" json:"city"`
	TreatmentType     string              `bson:"treatmentType" json:"treatmentType"`
	DoctorName        string              `bson:"doctorName" json:"doctorName"`
	DoctorID          *primitive.ObjectID `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	ClinicID          *primitive.ObjectID `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	Symptoms          string              `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	PreviousTreatment string              `bson:"previousTreatment,omitempty" json:"previousTreatment,omitempty"`
	PreferredDate     time.Time           `bson:"preferredDate" json:"preferredDate"`
	PreferredTime     string              `bson:"preferredTime" json:"preferredTime"`
	Status            AppointmentStatus   `bson:"status" json:"status"`
	BookingDate       time.Time           `bson:"bookingDate" json:"bookingDate"`
	AppointmentNotes  string              `bson:"appointmentNotes,omitempty" json:"appointmentNotes,omitempty"`
	CancellationReason string             `bson:"cancellationReason,omitempty" json:"cancellationReason,omitempty"`
	ConfirmedDate     *time.Time          `bson:"confirmedDate,omitempty" json:"confirmedDate,omitempty"`
	ConfirmedTime     string              `bson:"confirmedTime,omitempty" json:"confirmedTime,omitempty"`
	ConsultationFees  float64             `bson:"consultationFees" json:"consultationFees"`
	PaymentStatus     PaymentStatus       `bson:"paymentStatus" json:"paymentStatus"`
	Timestamps        `bson:",inline"`
}

type CreateAppointmentRequest struct {
	PatientName       string  `json:"patientName" binding:"required"`
	PatientMobile     string  `json:"patientMobile" binding:"required"`
	PatientEmail      string  `json:"patientEmail" binding:"required,email"`
	PatientAge        int     `json:"patientAge" binding:"required,gt=0"`
	PatientGender     string  `json:"patientGender" binding:"required"`
	City              string  `json:"city" binding:"required"`
	TreatmentType     string  `json:"treatmentType" binding:"required"`
	DoctorName        string  `json:"doctorName" binding:"required"`
	DoctorID          string  `json:"doctorId"`
	ClinicID          string  `json:"clinicId"`
	Symptoms          string  `json:"symptoms"`
	PreviousTreatment string  `json:"previousTreatment"`
	PreferredDate     string  `json:"preferredDate" binding:"required"`
	PreferredTime     string  `json:"preferredTime" binding:"required"`
	ConsultationFees  float64 `json:"consultationFees" binding:"gte=0"`
}

type UpdateAppointmentStatusRequest struct {
	Status             AppointmentStatus `json:"status" binding:"required"`
	ConfirmedDate      string            `json:"confirmedDate"`
	ConfirmedTime      string            `json:"confirmedTime"`
	AppointmentNotes   string            `json:"appointmentNotes"`
	CancellationReason string            `json:"cancellationReason"`
	ConsultationFees   *float64          `json:"consultationFees"`
}

type ConfirmAppointmentRequest struct {
	ConfirmedDate    string   `json:"confirmedDate"`
	ConfirmedTime    string   `json:"confirmedTime"`
	ConsultationFees *float64 `json:"consultationFees"`
}

type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

type RescheduleAppointmentRequest struct {
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
}

type CompleteAppointmentRequest struct {
	AppointmentNotes string `json:"appointmentNotes"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"paymentStatus" binding:"required"`
}

// AppointmentStats aggregates counts for the dashboard
type AppointmentStats struct {
	Total    int64            `json:"total"`
	Today    int64            `json:"today"`
	ByStatus map[string]int64 `json:"byStatus"`
}
