package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

type fakeAnalyticsRepo struct {
	lastFormat string
	lastMatch  bson.M
}

func (f *fakeAnalyticsRepo) RevenueByPeriod(_ context.Context, dateFormat string, match bson.M) ([]model.RevenueBucket, error) {
	f.lastFormat = dateFormat
	f.lastMatch = match
	return []model.RevenueBucket{{Period: "2026-01", Count: 3, Revenue: 450}}, nil
}

func (f *fakeAnalyticsRepo) DoctorPerformance(_ context.Context, match bson.M) ([]model.PerformanceBucket, error) {
	f.lastMatch = match
	return nil, nil
}

func (f *fakeAnalyticsRepo) ClinicPerformance(_ context.Context, match bson.M) ([]model.PerformanceBucket, error) {
	f.lastMatch = match
	return nil, nil
}

func (f *fakeAnalyticsRepo) BlogTotals(_ context.Context, match bson.M) (*model.ContentTotals, error) {
	f.lastMatch = match
	return &model.ContentTotals{Total: 4, TotalViews: 120}, nil
}

func (f *fakeAnalyticsRepo) StoryTotals(_ context.Context, match bson.M) (*model.ContentTotals, error) {
	return &model.ContentTotals{Total: 2, AverageRating: 4.5}, nil
}

func (f *fakeAnalyticsRepo) AppointmentsByCity(_ context.Context, match bson.M) ([]model.NameCount, error) {
	f.lastMatch = match
	return []model.NameCount{{Name: "Mumbai", Count: 7}}, nil
}

func (f *fakeAnalyticsRepo) DoctorsByCity(context.Context, bson.M) ([]model.NameCount, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) ClinicsByCity(context.Context, bson.M) ([]model.NameCount, error) {
	return nil, nil
}

type fakeCountRepo struct {
	count     int64
	lastMatch bson.M
}

func (f *fakeCountRepo) Count(_ context.Context, filter bson.M) (int64, error) {
	f.lastMatch = filter
	return f.count, nil
}

type fakeAppointmentRepo struct{ fakeCountRepo }

func (f *fakeAppointmentRepo) Create(context.Context, *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Get(context.Context, primitive.ObjectID) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment", nil)
}
func (f *fakeAppointmentRepo) List(context.Context, bson.M, query.Options) ([]model.Appointment, int64, error) {
	return nil, 0, nil
}
func (f *fakeAppointmentRepo) UpdateFields(context.Context, primitive.ObjectID, bson.M) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment", nil)
}
func (f *fakeAppointmentRepo) Delete(context.Context, primitive.ObjectID) error { return nil }
func (f *fakeAppointmentRepo) CountByStatus(context.Context) (map[string]int64, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) MonthlyCounts(context.Context, int) ([]int64, error) { return nil, nil }

type fakeUserRepo struct{ fakeCountRepo }

func (f *fakeUserRepo) Create(context.Context, *model.User) error { return nil }
func (f *fakeUserRepo) Get(context.Context, primitive.ObjectID) (*model.User, error) {
	return nil, apperrors.NotFound("user", nil)
}
func (f *fakeUserRepo) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, apperrors.NotFound("user", nil)
}

type fakeInquiryRepo struct{ fakeCountRepo }

func (f *fakeInquiryRepo) Create(context.Context, *model.ContactInquiry) error { return nil }
func (f *fakeInquiryRepo) Get(context.Context, primitive.ObjectID) (*model.ContactInquiry, error) {
	return nil, apperrors.NotFound("inquiry", nil)
}
func (f *fakeInquiryRepo) List(context.Context, bson.M, query.Options) ([]model.ContactInquiry, int64, error) {
	return nil, 0, nil
}
func (f *fakeInquiryRepo) UpdateFields(context.Context, primitive.ObjectID, bson.M) (*model.ContactInquiry, error) {
	return nil, apperrors.NotFound("inquiry", nil)
}
func (f *fakeInquiryRepo) Delete(context.Context, primitive.ObjectID) error { return nil }
func (f *fakeInquiryRepo) GroupBy(context.Context, string, bson.M) (map[string]int64, error) {
	return nil, nil
}

var (
	_ repository.AnalyticsRepository      = (*fakeAnalyticsRepo)(nil)
	_ repository.AppointmentRepository    = (*fakeAppointmentRepo)(nil)
	_ repository.UserRepository           = (*fakeUserRepo)(nil)
	_ repository.ContactInquiryRepository = (*fakeInquiryRepo)(nil)
)

func requireValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

type fixture struct {
	repo         *fakeAnalyticsRepo
	appointments *fakeAppointmentRepo
	users        *fakeUserRepo
	inquiries    *fakeInquiryRepo
	service      *Service
}

func newFixture() *fixture {
	f := &fixture{
		repo:         &fakeAnalyticsRepo{},
		appointments: &fakeAppointmentRepo{fakeCountRepo{count: 12}},
		users:        &fakeUserRepo{fakeCountRepo{count: 5}},
		inquiries:    &fakeInquiryRepo{fakeCountRepo{count: 8}},
	}
	f.service = NewService(f.repo, f.appointments, f.users, f.inquiries)
	return f
}

func TestRevenue_DefaultsToMonthly(t *testing.T) {
	f := newFixture()

	buckets, err := f.service.Revenue(context.Background(), "", Range{})
	require.NoError(t, err)
	require.Len(t, buckets, 1)

	assert.Equal(t, "%Y-%m", f.repo.lastFormat)
	assert.Equal(t, model.AppointmentStatusCompleted, f.repo.lastMatch["status"])
}

func TestRevenue_RejectsUnknownPeriod(t *testing.T) {
	f := newFixture()

	_, err := f.service.Revenue(context.Background(), "hourly", Range{})
	requireValidationError(t, err)
}

func TestRevenue_AppliesDateBounds(t *testing.T) {
	f := newFixture()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.service.Revenue(context.Background(), "daily", Range{Start: &start, End: &end})
	require.NoError(t, err)

	assert.Equal(t, "%Y-%m-%d", f.repo.lastFormat)
	bounds, ok := f.repo.lastMatch["createdAt"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, start, bounds["$gte"])
	assert.Equal(t, end, bounds["$lte"])
}

func TestConversions_ReturnsAllWhenUntyped(t *testing.T) {
	f := newFixture()

	conversions, err := f.service.Conversions(context.Background(), "", Range{})
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{
		"appointments":  12,
		"registrations": 5,
		"inquiries":     8,
	}, conversions)
}

func TestConversions_NarrowsToType(t *testing.T) {
	f := newFixture()

	conversions, err := f.service.Conversions(context.Background(), "inquiries", Range{})
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"inquiries": 8}, conversions)
	assert.Nil(t, f.appointments.lastMatch)
}

func TestConversions_RejectsUnknownType(t *testing.T) {
	f := newFixture()

	_, err := f.service.Conversions(context.Background(), "pageviews", Range{})
	requireValidationError(t, err)
}

func TestDoctorPerformance_NarrowsToDoctor(t *testing.T) {
	f := newFixture()
	id := primitive.NewObjectID()

	_, err := f.service.DoctorPerformance(context.Background(), id.Hex(), Range{})
	require.NoError(t, err)
	assert.Equal(t, id, f.repo.lastMatch["doctorId"])
}

func TestDoctorPerformance_RejectsMalformedID(t *testing.T) {
	f := newFixture()

	_, err := f.service.DoctorPerformance(context.Background(), "not-a-hex-id", Range{})
	requireValidationError(t, err)
}

func TestContentPerformance_NarrowsToBlogs(t *testing.T) {
	f := newFixture()

	perf, err := f.service.ContentPerformance(context.Background(), "blogs", Range{})
	require.NoError(t, err)

	require.NotNil(t, perf.Blogs)
	assert.EqualValues(t, 4, perf.Blogs.Total)
	assert.Nil(t, perf.Stories)
}

func TestGeographic_ReturnsAllSections(t *testing.T) {
	f := newFixture()

	dist, err := f.service.Geographic(context.Background(), "", Range{})
	require.NoError(t, err)

	require.Len(t, dist.Appointments, 1)
	assert.Equal(t, "Mumbai", dist.Appointments[0].Name)
}
