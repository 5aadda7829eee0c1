package appointment

import (
	"context"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

var searchFields = []string{"patientName", "patientEmail", "patientMobile", "doctorName"}

type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// Create books a new appointment. Status and booking date are server-owned:
// whatever the client sends, the appointment starts pending, stamped now.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	preferredDate, err := parseDate(req.PreferredDate)
	if err != nil {
		return nil, apperrors.Validation("invalid preferredDate", err)
	}

	apt := &model.Appointment{
		PatientName:       req.PatientName,
		PatientMobile:     req.PatientMobile,
		PatientEmail:      req.PatientEmail,
		PatientAge:        req.PatientAge,
		PatientGender:     req.PatientGender,
		City:              req.City,
		TreatmentType:     req.TreatmentType,
		DoctorName:        req.DoctorName,
		Symptoms:          req.Symptoms,
		PreviousTreatment: req.PreviousTreatment,
		PreferredDate:     preferredDate,
		PreferredTime:     req.PreferredTime,
		Status:            model.AppointmentStatusPending,
		BookingDate:       time.Now(),
		ConsultationFees:  req.ConsultationFees,
		PaymentStatus:     model.PaymentStatusPending,
	}

	if req.DoctorID != "" {
		id, ok := model.ObjectIDFromHex(req.DoctorID)
		if !ok {
			return nil, apperrors.Validationf("invalid doctorId: %s", req.DoctorID)
		}
		apt.DoctorID = &id
	}
	if req.ClinicID != "" {
		id, ok := model.ObjectIDFromHex(req.ClinicID)
		if !ok {
			return nil, apperrors.Validationf("invalid clinicId: %s", req.ClinicID)
		}
		apt.ClinicID = &id
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Appointment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) List(ctx context.Context, params url.Values) ([]model.Appointment, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

// UpdateStatus moves an appointment through its lifecycle. Illegal
// transitions are rejected before any write.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *model.UpdateAppointmentStatusRequest) (*model.Appointment, error) {
	if !req.Status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", req.Status)
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, req.Status) {
		return nil, apperrors.Validationf("cannot transition appointment from %s to %s", current.Status, req.Status)
	}

	fields := bson.M{"status": req.Status}
	if req.AppointmentNotes != "" {
		fields["appointmentNotes"] = req.AppointmentNotes
	}
	if req.CancellationReason != "" {
		fields["cancellationReason"] = req.CancellationReason
	}
	if req.ConsultationFees != nil {
		fields["consultationFees"] = *req.ConsultationFees
	}
	if req.Status == model.AppointmentStatusConfirmed {
		confirmedDate := time.Now()
		if req.ConfirmedDate != "" {
			if parsed, err := parseDate(req.ConfirmedDate); err == nil {
				confirmedDate = parsed
			}
		}
		fields["confirmedDate"] = confirmedDate
		if req.ConfirmedTime != "" {
			fields["confirmedTime"] = req.ConfirmedTime
		}
	}

	return s.repo.UpdateFields(ctx, oid, fields)
}

// Confirm requires both a confirmed date and time before anything is
// written.
func (s *Service) Confirm(ctx context.Context, id string, req *model.ConfirmAppointmentRequest) (*model.Appointment, error) {
	if req.ConfirmedDate == "" || req.ConfirmedTime == "" {
		return nil, apperrors.Validationf("confirmedDate and confirmedTime are required")
	}
	confirmedDate, err := parseDate(req.ConfirmedDate)
	if err != nil {
		return nil, apperrors.Validation("invalid confirmedDate", err)
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, model.AppointmentStatusConfirmed) {
		return nil, apperrors.Validationf("cannot confirm appointment in status %s", current.Status)
	}

	fields := bson.M{
		"status":        model.AppointmentStatusConfirmed,
		"confirmedDate": confirmedDate,
		"confirmedTime": req.ConfirmedTime,
	}
	if req.ConsultationFees != nil {
		fields["consultationFees"] = *req.ConsultationFees
	}
	return s.repo.UpdateFields(ctx, oid, fields)
}

func (s *Service) Cancel(ctx context.Context, id string, req *model.CancelAppointmentRequest) (*model.Appointment, error) {
	if req.CancellationReason == "" {
		return nil, apperrors.Validationf("cancellationReason is required")
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, model.AppointmentStatusCancelled) {
		return nil, apperrors.Validationf("cannot cancel appointment in status %s", current.Status)
	}

	return s.repo.UpdateFields(ctx, oid, bson.M{
		"status":             model.AppointmentStatusCancelled,
		"cancellationReason": req.CancellationReason,
	})
}

// Reschedule overwrites the preferred slot in place; the previous slot is
// not kept.
func (s *Service) Reschedule(ctx context.Context, id string, req *model.RescheduleAppointmentRequest) (*model.Appointment, error) {
	if req.PreferredDate == "" || req.PreferredTime == "" {
		return nil, apperrors.Validationf("preferredDate and preferredTime are required")
	}
	preferredDate, err := parseDate(req.PreferredDate)
	if err != nil {
		return nil, apperrors.Validation("invalid preferredDate", err)
	}

	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, model.AppointmentStatusRescheduled) {
		return nil, apperrors.Validationf("cannot reschedule appointment in status %s", current.Status)
	}

	return s.repo.UpdateFields(ctx, oid, bson.M{
		"status":        model.AppointmentStatusRescheduled,
		"preferredDate": preferredDate,
		"preferredTime": req.PreferredTime,
	})
}

func (s *Service) Complete(ctx context.Context, id string, req *model.CompleteAppointmentRequest) (*model.Appointment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.Get(ctx, oid)
	if err != nil {
		return nil, err
	}
	if !CanTransition(current.Status, model.AppointmentStatusCompleted) {
		return nil, apperrors.Validationf("cannot complete appointment in status %s", current.Status)
	}

	fields := bson.M{"status": model.AppointmentStatusCompleted}
	if req.AppointmentNotes != "" {
		fields["appointmentNotes"] = req.AppointmentNotes
	}
	return s.repo.UpdateFields(ctx, oid, fields)
}

// UpdatePaymentStatus moves the payment axis independently of the
// appointment lifecycle.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id string, status model.PaymentStatus) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid payment status: %s", status)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{"paymentStatus": status})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

func (s *Service) ByStatus(ctx context.Context, status model.AppointmentStatus, opts query.Options) ([]model.Appointment, int64, error) {
	if !status.Valid() {
		return nil, 0, apperrors.Validationf("invalid status: %s", status)
	}
	return s.repo.List(ctx, bson.M{"status": status}, opts)
}

func (s *Service) ByDoctor(ctx context.Context, doctorID string, opts query.Options) ([]model.Appointment, int64, error) {
	oid, err := parseID(doctorID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, bson.M{"doctorId": oid}, opts)
}

func (s *Service) ByClinic(ctx context.Context, clinicID string, opts query.Options) ([]model.Appointment, int64, error) {
	oid, err := parseID(clinicID)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, bson.M{"clinicId": oid}, opts)
}

func (s *Service) ByPatientEmail(ctx context.Context, email string, opts query.Options) ([]model.Appointment, int64, error) {
	return s.repo.List(ctx, bson.M{"patientEmail": email}, opts)
}

func (s *Service) Pending(ctx context.Context, opts query.Options) ([]model.Appointment, int64, error) {
	return s.repo.List(ctx, bson.M{"status": model.AppointmentStatusPending}, opts)
}

func (s *Service) Today(ctx context.Context, opts query.Options) ([]model.Appointment, int64, error) {
	start, end := dayBounds(time.Now())
	return s.repo.List(ctx, bson.M{
		"preferredDate": bson.M{"$gte": start, "$lt": end},
	}, opts)
}

// Upcoming lists appointments preferred within the next seven days.
func (s *Service) Upcoming(ctx context.Context, opts query.Options) ([]model.Appointment, int64, error) {
	now := time.Now()
	return s.repo.List(ctx, bson.M{
		"preferredDate": bson.M{"$gte": now, "$lt": now.AddDate(0, 0, 7)},
		"status": bson.M{"$in": []model.AppointmentStatus{
			model.AppointmentStatusPending,
			model.AppointmentStatusConfirmed,
			model.AppointmentStatusRescheduled,
		}},
	}, opts)
}

func (s *Service) Stats(ctx context.Context) (*model.AppointmentStats, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}
	start, end := dayBounds(time.Now())
	today, err := s.repo.Count(ctx, bson.M{"bookingDate": bson.M{"$gte": start, "$lt": end}})
	if err != nil {
		return nil, err
	}
	return &model.AppointmentStats{Total: total, Today: today, ByStatus: byStatus}, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, ok := model.ObjectIDFromHex(id)
	if !ok {
		return primitive.NilObjectID, apperrors.Validationf("invalid id: %s", id)
	}
	return oid, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
