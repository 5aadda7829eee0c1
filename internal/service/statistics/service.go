package statistics

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/repository"
)

// Dashboard aggregates the numbers the admin landing page renders.
type Dashboard struct {
	Doctors         int64             `json:"doctors"`
	Clinics         int64             `json:"clinics"`
	Blogs           int64             `json:"blogs"`
	Stories         int64             `json:"stories"`
	Treatments      int64             `json:"treatments"`
	Inquiries       int64             `json:"inquiries"`
	Appointments    *model.AppointmentStats `json:"appointments"`
	Invoices        *model.InvoiceStats     `json:"invoices"`
	TopSpecialties  []model.NameCount `json:"topSpecialties"`
	MonthlyBookings []int64           `json:"monthlyBookings"`
}

type Service struct {
	doctors      repository.DoctorRepository
	clinics      repository.ClinicRepository
	blogs        repository.BlogRepository
	stories      repository.PatientStoryRepository
	treatments   repository.TreatmentRepository
	inquiries    repository.ContactInquiryRepository
	appointments repository.AppointmentRepository
	invoices     repository.InvoiceRepository
}

func NewService(
	doctors repository.DoctorRepository,
	clinics repository.ClinicRepository,
	blogs repository.BlogRepository,
	stories repository.PatientStoryRepository,
	treatments repository.TreatmentRepository,
	inquiries repository.ContactInquiryRepository,
	appointments repository.AppointmentRepository,
	invoices repository.InvoiceRepository,
) *Service {
	return &Service{
		doctors:      doctors,
		clinics:      clinics,
		blogs:        blogs,
		stories:      stories,
		treatments:   treatments,
		inquiries:    inquiries,
		appointments: appointments,
		invoices:     invoices,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	doctors, err := s.doctors.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	clinics, err := s.clinics.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	blogs, err := s.blogs.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	stories, err := s.stories.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	treatments, err := s.treatments.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	inquiries, err := s.inquiries.Count(ctx, nil)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.appointments.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var appointmentTotal int64
	for _, n := range byStatus {
		appointmentTotal += n
	}
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	today, err := s.appointments.Count(ctx, bson.M{
		"bookingDate": bson.M{"$gte": todayStart, "$lt": todayStart.AddDate(0, 0, 1)},
	})
	if err != nil {
		return nil, err
	}

	invoiceStats, err := s.invoices.Stats(ctx)
	if err != nil {
		return nil, err
	}

	topSpecialties, err := s.clinics.TopArrayValues(ctx, "specialties", 10)
	if err != nil {
		return nil, err
	}

	monthly, err := s.appointments.MonthlyCounts(ctx, now.Year())
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Doctors:    doctors,
		Clinics:    clinics,
		Blogs:      blogs,
		Stories:    stories,
		Treatments: treatments,
		Inquiries:  inquiries,
		Appointments: &model.AppointmentStats{
			Total:    appointmentTotal,
			Today:    today,
			ByStatus: byStatus,
		},
		Invoices:        invoiceStats,
		TopSpecialties:  topSpecialties,
		MonthlyBookings: monthly,
	}, nil
}
