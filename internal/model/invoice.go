package model

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InvoiceStatus string

const (
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodCard      PaymentMethod = "card"
	PaymentMethodOnline    PaymentMethod = "online"
	PaymentMethodInsurance PaymentMethod = "insurance"
	PaymentMethodPending   PaymentMethod = "pending"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodOnline,
		PaymentMethodInsurance, PaymentMethodPending:
		return true
	}
	return false
}

type Invoice struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InvoiceNumber    string              `bson:"invoiceNumber" json:"invoiceNumber"`
	AppointmentID    *primitive.ObjectID `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	PatientName      string              `bson:"patientName" json:"patientName"`
	PatientEmail     string              `bson:"patientEmail" json:"patientEmail"`
	PatientMobile    string              `bson:"patientMobile" json:"patientMobile"`
	DoctorName       string              `bson:"doctorName" json:"doctorName"`
	TreatmentType    string              `bson:"treatmentType" json:"treatmentType"`
	City             string              `bson:"city" json:"city"`
	AppointmentDate  *time.Time          `bson:"appointmentDate,omitempty" json:"appointmentDate,omitempty"`
	AppointmentTime  string              `bson:"appointmentTime,omitempty" json:"appointmentTime,omitempty"`
	ConsultationFee  float64             `bson:"consultationFee" json:"consultationFee"`
	PlatformFee      float64             `bson:"platformFee" json:"platformFee"`
	Tax              float64             `bson:"tax" json:"tax"`
	Discount         float64             `bson:"discount" json:"discount"`
	Subtotal         float64             `bson:"subtotal" json:"subtotal"`
	Total            float64             `bson:"total" json:"total"`
	IssueDate        time.Time           `bson:"issueDate" json:"issueDate"`
	DueDate          time.Time           `bson:"dueDate" json:"dueDate"`
	Status           InvoiceStatus       `bson:"status" json:"status"`
	PaymentMethod    PaymentMethod       `bson:"paymentMethod" json:"paymentMethod"`
	PaymentDate      *time.Time          `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"`
	Notes            string              `bson:"notes,omitempty" json:"notes,omitempty"`
	EmailSent        bool                `bson:"emailSent" json:"emailSent"`
	EmailSentAt      *time.Time          `bson:"emailSentAt,omitempty" json:"emailSentAt,omitempty"`
	EmailOpened      bool                `bson:"emailOpened" json:"emailOpened"`
	EmailOpenedAt    *time.Time          `bson:"emailOpenedAt,omitempty" json:"emailOpenedAt,omitempty"`
	Timestamps       `bson:",inline"`
}

// RecalculateTotals re-derives subtotal and total from the line amounts.
// Called by the repository before every write so stored documents never
// drift from the arithmetic invariant.
func (i *Invoice) RecalculateTotals() {
	i.Subtotal = i.ConsultationFee + i.PlatformFee - i.Discount
	i.Total = i.Subtotal + i.Tax
}

// DeriveCharges fills platform fee, tax, discount and the totals from the
// consultation fee alone.
func (i *Invoice) DeriveCharges() {
	i.PlatformFee = math.Round(i.ConsultationFee * 0.10)
	i.Tax = math.Round((i.ConsultationFee + i.PlatformFee) * 0.11)
	i.Discount = 0
	i.RecalculateTotals()
}

type UpdateInvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status" binding:"required"`
}

type MarkInvoicePaidRequest struct {
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"required"`
}

type UpdateInvoiceRequest struct {
	PatientName     *string        `json:"patientName"`
	PatientEmail    *string        `json:"patientEmail"`
	PatientMobile   *string        `json:"patientMobile"`
	DoctorName      *string        `json:"doctorName"`
	TreatmentType   *string        `json:"treatmentType"`
	ConsultationFee *float64       `json:"consultationFee"`
	Discount        *float64       `json:"discount"`
	DueDate         *time.Time     `json:"dueDate"`
	Status          *InvoiceStatus `json:"status"`
	PaymentMethod   *PaymentMethod `json:"paymentMethod"`
	Notes           *string        `json:"notes"`
}

// InvoiceStats aggregates invoice counts and amounts for the dashboard
type InvoiceStats struct {
	Total         int64   `json:"total"`
	Pending       int64   `json:"pending"`
	Paid          int64   `json:"paid"`
	Overdue       int64   `json:"overdue"`
	TotalAmount   float64 `json:"totalAmount"`
	PendingAmount float64 `json:"pendingAmount"`
	PaidAmount    float64 `json:"paidAmount"`
}
