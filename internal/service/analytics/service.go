package analytics

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

// periodFormats maps the public period names onto $dateToString formats.
var periodFormats = map[string]string{
	"daily":   "%Y-%m-%d",
	"weekly":  "%Y-%U",
	"monthly": "%Y-%m",
}

// Range bounds an analytics query by creation time. Either end may be nil.
type Range struct {
	Start *time.Time
	End   *time.Time
}

func (r Range) match() bson.M {
	bounds := bson.M{}
	if r.Start != nil {
		bounds["$gte"] = *r.Start
	}
	if r.End != nil {
		bounds["$lte"] = *r.End
	}
	if len(bounds) == 0 {
		return bson.M{}
	}
	return bson.M{"createdAt": bounds}
}

type Service struct {
	repo         repository.AnalyticsRepository
	appointments repository.AppointmentRepository
	users        repository.UserRepository
	inquiries    repository.ContactInquiryRepository
}

func NewService(
	repo repository.AnalyticsRepository,
	appointments repository.AppointmentRepository,
	users repository.UserRepository,
	inquiries repository.ContactInquiryRepository,
) *Service {
	return &Service{
		repo:         repo,
		appointments: appointments,
		users:        users,
		inquiries:    inquiries,
	}
}

// Revenue buckets completed-appointment revenue per period. An empty period
// defaults to monthly.
func (s *Service) Revenue(ctx context.Context, period string, rng Range) ([]model.RevenueBucket, error) {
	if period == "" {
		period = "monthly"
	}
	format, ok := periodFormats[period]
	if !ok {
		return nil, apperrors.Validationf("invalid period: %s", period)
	}

	match := rng.match()
	match["status"] = model.AppointmentStatusCompleted
	return s.repo.RevenueByPeriod(ctx, format, match)
}

// Conversions counts bookings, account registrations and contact inquiries
// in the range. An empty type returns all three.
func (s *Service) Conversions(ctx context.Context, typ string, rng Range) (map[string]int64, error) {
	switch typ {
	case "", "appointments", "registrations", "inquiries":
	default:
		return nil, apperrors.Validationf("invalid conversion type: %s", typ)
	}

	match := rng.match()
	conversions := map[string]int64{}

	if typ == "" || typ == "appointments" {
		n, err := s.appointments.Count(ctx, match)
		if err != nil {
			return nil, err
		}
		conversions["appointments"] = n
	}
	if typ == "" || typ == "registrations" {
		n, err := s.users.Count(ctx, match)
		if err != nil {
			return nil, err
		}
		conversions["registrations"] = n
	}
	if typ == "" || typ == "inquiries" {
		n, err := s.inquiries.Count(ctx, match)
		if err != nil {
			return nil, err
		}
		conversions["inquiries"] = n
	}
	return conversions, nil
}

// DoctorPerformance groups appointment volume, completions and revenue per
// doctor; a doctor id narrows to one.
func (s *Service) DoctorPerformance(ctx context.Context, doctorID string, rng Range) ([]model.PerformanceBucket, error) {
	match := rng.match()
	if doctorID != "" {
		oid, ok := model.ObjectIDFromHex(doctorID)
		if !ok {
			return nil, apperrors.Validationf("invalid doctor id: %s", doctorID)
		}
		match["doctorId"] = oid
	}
	return s.repo.DoctorPerformance(ctx, match)
}

func (s *Service) ClinicPerformance(ctx context.Context, clinicID string, rng Range) ([]model.PerformanceBucket, error) {
	match := rng.match()
	if clinicID != "" {
		oid, ok := model.ObjectIDFromHex(clinicID)
		if !ok {
			return nil, apperrors.Validationf("invalid clinic id: %s", clinicID)
		}
		match["clinicId"] = oid
	}
	return s.repo.ClinicPerformance(ctx, match)
}

// ContentPerformance summarizes blogs and patient stories. An empty type
// returns both sections.
func (s *Service) ContentPerformance(ctx context.Context, typ string, rng Range) (*model.ContentPerformance, error) {
	switch typ {
	case "", "blogs", "stories":
	default:
		return nil, apperrors.Validationf("invalid content type: %s", typ)
	}

	match := rng.match()
	perf := &model.ContentPerformance{}

	if typ == "" || typ == "blogs" {
		totals, err := s.repo.BlogTotals(ctx, match)
		if err != nil {
			return nil, err
		}
		perf.Blogs = totals
	}
	if typ == "" || typ == "stories" {
		totals, err := s.repo.StoryTotals(ctx, match)
		if err != nil {
			return nil, err
		}
		perf.Stories = totals
	}
	return perf, nil
}

// Geographic counts appointments, doctors and clinics per city, busiest
// city first.
func (s *Service) Geographic(ctx context.Context, typ string, rng Range) (*model.GeographicDistribution, error) {
	switch typ {
	case "", "appointments", "doctors", "clinics":
	default:
		return nil, apperrors.Validationf("invalid distribution type: %s", typ)
	}

	match := rng.match()
	dist := &model.GeographicDistribution{}

	if typ == "" || typ == "appointments" {
		counts, err := s.repo.AppointmentsByCity(ctx, match)
		if err != nil {
			return nil, err
		}
		dist.Appointments = counts
	}
	if typ == "" || typ == "doctors" {
		counts, err := s.repo.DoctorsByCity(ctx, match)
		if err != nil {
			return nil, err
		}
		dist.Doctors = counts
	}
	if typ == "" || typ == "clinics" {
		counts, err := s.repo.ClinicsByCity(ctx, match)
		if err != nil {
			return nil, err
		}
		dist.Clinics = counts
	}
	return dist, nil
}
