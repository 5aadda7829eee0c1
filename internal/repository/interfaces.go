package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
)

// All repository interfaces in one file
type (
	// AppointmentRepository handles appointment persistence
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Appointment, int64, error)
		UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Appointment, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context, filter bson.M) (int64, error)
		CountByStatus(ctx context.Context) (map[string]int64, error)
		MonthlyCounts(ctx context.Context, year int) ([]int64, error)
	}

	InvoiceRepository interface {
		Create(ctx context.Context, invoice *model.Invoice) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Invoice, error)
		GetByNumber(ctx context.Context, number string) (*model.Invoice, error)
		GetByAppointment(ctx context.Context, appointmentID primitive.ObjectID) (*model.Invoice, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Invoice, int64, error)
		Update(ctx context.Context, invoice *model.Invoice) error
		UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Invoice, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context, filter bson.M) (int64, error)
		CountInMonth(ctx context.Context, year int, month time.Month) (int64, error)
		MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)
		Stats(ctx context.Context) (*model.InvoiceStats, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Doctor, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Doctor, int64, error)
		UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Doctor, error)
		UpdateOne(ctx context.Context, filter, update bson.M) (int64, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context, filter bson.M) (int64, error)
		Distinct(ctx context.Context, field string, filter bson.M) ([]string, error)
		GroupBy(ctx context.Context, field string, filter bson.M) (map[string]int64, error)
	}

	ClinicRepository interface {
		Create(ctx context.Context, clinic *model.Clinic) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Clinic, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Clinic, int64, error)
		UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Clinic, error)
		UpdateOne(ctx context.Context, filter, update bson.M) (int64, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context, filter bson.M) (int64, error)
		GroupBy(ctx context.Context, field string, filter bson.M) (map[string]int64, error)
		TopArrayValues(ctx context.Context, field string, limit int) ([]model.NameCount, error)
	}

	BlogRepository interface {
		Create(ctx context.Context, blog *model.Blog) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Blog, error)
		GetBySlug(ctx context.Context, slug string) (*model.Blog, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Blog, int64, error)
		UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Blog, error)
		IncrementViews(ctx context.Context, id primitive.ObjectID) error
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context, filter bson.M) (int64, error)
		Distinct(ctx context.Context, field string, filter bson.M) ([]string, error)
	}

	PatientStoryRepository interface {
		Create(ctx context.Context, story *model.PatientStory) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.PatientStory, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.PatientStory, int64, error)
		UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.PatientStory, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context, filter bson.M) (int64, error)
		Distinct(ctx context.Context, field string, filter bson.M) ([]string, error)
	}

	TreatmentRepository interface {
		Create(ctx context.Context, treatment *model.Treatment) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Treatment, error)
		GetByURL(ctx context.Context, url string) (*model.Treatment, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Treatment, int64, error)
		UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Treatment, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context, filter bson.M) (int64, error)
	}

	ContactInquiryRepository interface {
		Create(ctx context.Context, inquiry *model.ContactInquiry) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.ContactInquiry, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.ContactInquiry, int64, error)
		UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.ContactInquiry, error)
		Delete(ctx context.Context, id primitive.ObjectID) error
		Count(ctx context.Context, filter bson.M) (int64, error)
		GroupBy(ctx context.Context, field string, filter bson.M) (map[string]int64, error)
	}

	NotificationRepository interface {
		Create(ctx context.Context, notification *model.Notification) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.Notification, error)
		List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Notification, int64, error)
		Count(ctx context.Context, filter bson.M) (int64, error)
		UpdateForRecipient(ctx context.Context, id, recipientID primitive.ObjectID, fields bson.M) (*model.Notification, error)
		UpdateManyForRecipient(ctx context.Context, recipientID primitive.ObjectID, filter, fields bson.M) (int64, error)
		DeleteForRecipient(ctx context.Context, id, recipientID primitive.ObjectID) error
		DeleteAllForRecipient(ctx context.Context, recipientID primitive.ObjectID) (int64, error)
	}

	// AnalyticsRepository runs the cross-collection aggregation pipelines
	// behind the analytics endpoints.
	AnalyticsRepository interface {
		RevenueByPeriod(ctx context.Context, dateFormat string, match bson.M) ([]model.RevenueBucket, error)
		DoctorPerformance(ctx context.Context, match bson.M) ([]model.PerformanceBucket, error)
		ClinicPerformance(ctx context.Context, match bson.M) ([]model.PerformanceBucket, error)
		BlogTotals(ctx context.Context, match bson.M) (*model.ContentTotals, error)
		StoryTotals(ctx context.Context, match bson.M) (*model.ContentTotals, error)
		AppointmentsByCity(ctx context.Context, match bson.M) ([]model.NameCount, error)
		DoctorsByCity(ctx context.Context, match bson.M) ([]model.NameCount, error)
		ClinicsByCity(ctx context.Context, match bson.M) ([]model.NameCount, error)
	}

	SettingsRepository interface {
		GetByType(ctx context.Context, settingsType model.SettingsType) (*model.Settings, error)
		UpsertByType(ctx context.Context, settingsType model.SettingsType, data bson.M, updatedBy string) (*model.Settings, error)
		ListAll(ctx context.Context) ([]model.Settings, error)
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id primitive.ObjectID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		Count(ctx context.Context, filter bson.M) (int64, error)
	}
)
