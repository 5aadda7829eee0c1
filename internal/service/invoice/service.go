package invoice

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/email"
	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
	"github.com/thelivecure/admin-api/pkg/metrics"
)

// DefaultConsultationFee applies when the appointment carries no fee.
const DefaultConsultationFee = 150.00

const dueInDays = 30

var searchFields = []string{"invoiceNumber", "patientName", "patientEmail", "doctorName"}

type Service struct {
	repo   repository.InvoiceRepository
	appts  repository.AppointmentRepository
	mailer email.Service
}

func NewService(repo repository.InvoiceRepository, appts repository.AppointmentRepository, mailer email.Service) *Service {
	return &Service{repo: repo, appts: appts, mailer: mailer}
}

// GenerateFromAppointment derives a persisted invoice from an appointment.
// All amounts follow from the consultation fee alone.
func (s *Service) GenerateFromAppointment(ctx context.Context, appointmentID string) (*model.Invoice, error) {
	oid, err := parseID(appointmentID)
	if err != nil {
		return nil, err
	}
	apt, err := s.appts.Get(ctx, oid)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	existing, err := s.repo.CountInMonth(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	inv := buildFromAppointment(apt, now)
	inv.InvoiceNumber = sequentialNumber(existing, now)

	if err := s.repo.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func buildFromAppointment(apt *model.Appointment, now time.Time) *model.Invoice {
	fee := apt.ConsultationFees
	if fee <= 0 {
		fee = DefaultConsultationFee
	}

	aptDate := apt.PreferredDate
	aptTime := apt.PreferredTime
	if apt.ConfirmedDate != nil {
		aptDate = *apt.ConfirmedDate
		aptTime = apt.ConfirmedTime
	}

	inv := &model.Invoice{
		AppointmentID:   &apt.ID,
		PatientName:     apt.PatientName,
		PatientEmail:    apt.PatientEmail,
		PatientMobile:   apt.PatientMobile,
		DoctorName:      apt.DoctorName,
		TreatmentType:   apt.TreatmentType,
		City:            apt.City,
		AppointmentDate: &aptDate,
		AppointmentTime: aptTime,
		ConsultationFee: fee,
		IssueDate:       now,
		DueDate:         now.AddDate(0, 0, dueInDays),
		Status:          model.InvoiceStatusPending,
		PaymentMethod:   model.PaymentMethodPending,
	}
	inv.DeriveCharges()
	return inv
}

// SendEmail renders the invoice and mails it to the patient. The sent flag
// is only stamped after a successful send; a failed stamp after a
// successful send is not rolled back.
func (s *Service) SendEmail(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	oid, err := parseID(invoiceID)
	if err != nil {
		return nil, err
	}
	inv, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if inv.PatientEmail == "" {
		return nil, apperrors.Validationf("invoice %s has no patient email", inv.InvoiceNumber)
	}

	html, err := renderInvoiceHTML(inv)
	if err != nil {
		return nil, err
	}
	subject := fmt.Sprintf("Invoice %s from The Live Cure", inv.InvoiceNumber)
	if err := s.mailer.Send(ctx, inv.PatientEmail, subject, html); err != nil {
		metrics.InvoiceEmailsSent.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.InvoiceEmailsSent.WithLabelValues("success").Inc()

	return s.repo.UpdateFields(ctx, oid, bson.M{
		"emailSent":   true,
		"emailSentAt": time.Now(),
	})
}

// SendDirectEmail mails a one-off invoice derived from the appointment
// without persisting anything.
func (s *Service) SendDirectEmail(ctx context.Context, appointmentID string) (*model.Invoice, error) {
	oid, err := parseID(appointmentID)
	if err != nil {
		return nil, err
	}
	apt, err := s.appts.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if apt.PatientEmail == "" {
		return nil, apperrors.Validationf("appointment has no patient email")
	}

	now := time.Now()
	inv := buildFromAppointment(apt, now)
	inv.InvoiceNumber = randomNumber(now)

	html, err := renderInvoiceHTML(inv)
	if err != nil {
		return nil, err
	}
	subject := fmt.Sprintf("Invoice %s from The Live Cure", inv.InvoiceNumber)
	if err := s.mailer.Send(ctx, apt.PatientEmail, subject, html); err != nil {
		metrics.InvoiceEmailsSent.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.InvoiceEmailsSent.WithLabelValues("success").Inc()
	return inv, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Invoice, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	return s.repo.GetByNumber(ctx, number)
}

func (s *Service) GetByAppointment(ctx context.Context, appointmentID string) (*model.Invoice, error) {
	oid, err := parseID(appointmentID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByAppointment(ctx, oid)
}

func (s *Service) List(ctx context.Context, params url.Values) ([]model.Invoice, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) Update(ctx context.Context, id string, req *model.UpdateInvoiceRequest) (*model.Invoice, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if req.PatientName != nil {
		fields["patientName"] = *req.PatientName
	}
	if req.PatientEmail != nil {
		fields["patientEmail"] = *req.PatientEmail
	}
	if req.PatientMobile != nil {
		fields["patientMobile"] = *req.PatientMobile
	}
	if req.DoctorName != nil {
		fields["doctorName"] = *req.DoctorName
	}
	if req.TreatmentType != nil {
		fields["treatmentType"] = *req.TreatmentType
	}
	if req.ConsultationFee != nil {
		fields["consultationFee"] = *req.ConsultationFee
	}
	if req.Discount != nil {
		fields["discount"] = *req.Discount
	}
	if req.DueDate != nil {
		fields["dueDate"] = *req.DueDate
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.Validationf("invalid status: %s", *req.Status)
		}
		fields["status"] = *req.Status
	}
	if req.PaymentMethod != nil {
		if !req.PaymentMethod.Valid() {
			return nil, apperrors.Validationf("invalid payment method: %s", *req.PaymentMethod)
		}
		fields["paymentMethod"] = *req.PaymentMethod
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if len(fields) == 0 {
		return nil, apperrors.Validationf("no fields to update")
	}

	return s.repo.UpdateFields(ctx, oid, fields)
}

// UpdateStatus flips the invoice status; moving to paid stamps the payment
// date.
func (s *Service) UpdateStatus(ctx context.Context, id string, status model.InvoiceStatus) (*model.Invoice, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", status)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{"status": status}
	if status == model.InvoiceStatusPaid {
		fields["paymentDate"] = time.Now()
	}
	return s.repo.UpdateFields(ctx, oid, fields)
}

func (s *Service) MarkAsPaid(ctx context.Context, id string, method model.PaymentMethod) (*model.Invoice, error) {
	if !method.Valid() {
		return nil, apperrors.Validationf("invalid payment method: %s", method)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{
		"status":        model.InvoiceStatusPaid,
		"paymentMethod": method,
		"paymentDate":   time.Now(),
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

func (s *Service) ByStatus(ctx context.Context, status model.InvoiceStatus, opts query.Options) ([]model.Invoice, int64, error) {
	if !status.Valid() {
		return nil, 0, apperrors.Validationf("invalid status: %s", status)
	}
	return s.repo.List(ctx, bson.M{"status": status}, opts)
}

func (s *Service) Recent(ctx context.Context, limit int64) ([]model.Invoice, error) {
	opts := query.Options{
		Page:  1,
		Limit: limit,
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
	}
	docs, _, err := s.repo.List(ctx, bson.M{}, opts)
	return docs, err
}

func (s *Service) Stats(ctx context.Context) (*model.InvoiceStats, error) {
	return s.repo.Stats(ctx)
}

// MarkOverdue sweeps pending invoices past their due date, returning how
// many were flipped. Run daily by the scheduler.
func (s *Service) MarkOverdue(ctx context.Context) (int64, error) {
	return s.repo.MarkOverdue(ctx, time.Now())
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, ok := model.ObjectIDFromHex(id)
	if !ok {
		return primitive.NilObjectID, apperrors.Validationf("invalid id: %s", id)
	}
	return oid, nil
}
