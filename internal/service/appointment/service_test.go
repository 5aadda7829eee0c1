package appointment

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

type fakeRepo struct {
	appointments map[primitive.ObjectID]*model.Appointment
	lastFilter   bson.M
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: map[primitive.ObjectID]*model.Appointment{}}
}

func (f *fakeRepo) Create(ctx context.Context, apt *model.Appointment) error {
	apt.ID = primitive.NewObjectID()
	apt.Touch(time.Now())
	f.appointments[apt.ID] = apt
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	copied := *apt
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Appointment, int64, error) {
	f.lastFilter = filter
	out := []model.Appointment{}
	for _, apt := range f.appointments {
		out = append(out, *apt)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	for k, v := range fields {
		switch k {
		case "status":
			apt.Status = v.(model.AppointmentStatus)
		case "paymentStatus":
			apt.PaymentStatus = v.(model.PaymentStatus)
		case "cancellationReason":
			apt.CancellationReason = v.(string)
		case "appointmentNotes":
			apt.AppointmentNotes = v.(string)
		case "confirmedDate":
			d := v.(time.Time)
			apt.ConfirmedDate = &d
		case "confirmedTime":
			apt.ConfirmedTime = v.(string)
		case "preferredDate":
			apt.PreferredDate = v.(time.Time)
		case "preferredTime":
			apt.PreferredTime = v.(string)
		case "consultationFees":
			apt.ConsultationFees = v.(float64)
		}
	}
	apt.UpdatedAt = time.Now()
	copied := *apt
	return &copied, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.appointments[id]; !ok {
		return apperrors.NotFound("appointment", nil)
	}
	delete(f.appointments, id)
	return nil
}

func (f *fakeRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.appointments)), nil
}

func (f *fakeRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, apt := range f.appointments {
		counts[string(apt.Status)]++
	}
	return counts, nil
}

func (f *fakeRepo) MonthlyCounts(ctx context.Context, year int) ([]int64, error) {
	return make([]int64, 12), nil
}

func validCreateRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		PatientName:   "Asha Rao",
		PatientMobile: "9876543210",
		PatientEmail:  "asha@example.com",
		PatientAge:    34,
		PatientGender: "female",
		City:          "Hyderabad",
		TreatmentType: "Cataract Surgery",
		DoctorName:    "Dr. Mehta",
		PreferredDate: "2026-10-01",
		PreferredTime: "10:30 AM",
	}
}

func seed(t *testing.T, svc *Service, status model.AppointmentStatus) *model.Appointment {
	t.Helper()
	apt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	if status != model.AppointmentStatusPending {
		apt.Status = status
	}
	return apt
}

func TestCreate_ForcesPendingAndBookingDate(t *testing.T) {
	svc := NewService(newFakeRepo())

	apt, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, model.PaymentStatusPending, apt.PaymentStatus)
	assert.WithinDuration(t, time.Now(), apt.BookingDate, time.Second)
	assert.False(t, apt.ID.IsZero())
}

func TestCreate_InvalidPreferredDate(t *testing.T) {
	svc := NewService(newFakeRepo())
	req := validCreateRequest()
	req.PreferredDate = "next tuesday"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestCreate_InvalidDoctorID(t *testing.T) {
	svc := NewService(newFakeRepo())
	req := validCreateRequest()
	req.DoctorID = "not-a-hex-id"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestConfirm_RequiresDateAndTime(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	apt := seed(t, svc, model.AppointmentStatusPending)

	_, err := svc.Confirm(context.Background(), apt.ID.Hex(), &model.ConfirmAppointmentRequest{
		ConfirmedDate: "2026-10-02",
	})
	require.Error(t, err)

	// nothing was written
	stored, _ := repo.Get(context.Background(), apt.ID)
	assert.Equal(t, model.AppointmentStatusPending, stored.Status)
}

func TestConfirm_SetsFieldsAndStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	apt := seed(t, svc, model.AppointmentStatusPending)

	fees := 200.0
	updated, err := svc.Confirm(context.Background(), apt.ID.Hex(), &model.ConfirmAppointmentRequest{
		ConfirmedDate:    "2026-10-02",
		ConfirmedTime:    "11:00 AM",
		ConsultationFees: &fees,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)
	require.NotNil(t, updated.ConfirmedDate)
	assert.Equal(t, "11:00 AM", updated.ConfirmedTime)
	assert.Equal(t, 200.0, updated.ConsultationFees)
}

func TestCancel_RequiresReason(t *testing.T) {
	svc := NewService(newFakeRepo())
	apt := seed(t, svc, model.AppointmentStatusPending)

	_, err := svc.Cancel(context.Background(), apt.ID.Hex(), &model.CancelAppointmentRequest{})
	require.Error(t, err)

	updated, err := svc.Cancel(context.Background(), apt.ID.Hex(), &model.CancelAppointmentRequest{
		CancellationReason: "patient request",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)
	assert.Equal(t, "patient request", updated.CancellationReason)
}

func TestUpdateStatus_RejectsIllegalTransition(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	apt := seed(t, svc, model.AppointmentStatusPending)
	repo.appointments[apt.ID].Status = model.AppointmentStatusCompleted

	_, err := svc.UpdateStatus(context.Background(), apt.ID.Hex(), &model.UpdateAppointmentStatusRequest{
		Status: model.AppointmentStatusCancelled,
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)

	// terminal state untouched
	assert.Equal(t, model.AppointmentStatusCompleted, repo.appointments[apt.ID].Status)
}

func TestUpdateStatus_SameStatusIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	apt := seed(t, svc, model.AppointmentStatusPending)
	repo.appointments[apt.ID].Status = model.AppointmentStatusCompleted

	updated, err := svc.UpdateStatus(context.Background(), apt.ID.Hex(), &model.UpdateAppointmentStatusRequest{
		Status: model.AppointmentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, updated.Status)
}

func TestUpdateStatus_ConfirmStampsDate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	apt := seed(t, svc, model.AppointmentStatusPending)

	updated, err := svc.UpdateStatus(context.Background(), apt.ID.Hex(), &model.UpdateAppointmentStatusRequest{
		Status: model.AppointmentStatusConfirmed,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ConfirmedDate)
}

func TestReschedule_OverwritesSlot(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	apt := seed(t, svc, model.AppointmentStatusPending)

	updated, err := svc.Reschedule(context.Background(), apt.ID.Hex(), &model.RescheduleAppointmentRequest{
		PreferredDate: "2026-11-15",
		PreferredTime: "3:00 PM",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusRescheduled, updated.Status)
	assert.Equal(t, "3:00 PM", updated.PreferredTime)
	assert.Equal(t, 2026, updated.PreferredDate.Year())
	assert.Equal(t, time.November, updated.PreferredDate.Month())
}

func TestUpdatePaymentStatus_IndependentOfLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	apt := seed(t, svc, model.AppointmentStatusPending)
	repo.appointments[apt.ID].Status = model.AppointmentStatusCancelled

	updated, err := svc.UpdatePaymentStatus(context.Background(), apt.ID.Hex(), model.PaymentStatusRefunded)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusRefunded, updated.PaymentStatus)
	assert.Equal(t, model.AppointmentStatusCancelled, updated.Status)

	_, err = svc.UpdatePaymentStatus(context.Background(), apt.ID.Hex(), "bartered")
	require.Error(t, err)
}

func TestGet_InvalidID(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Get(context.Background(), "zzz")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestList_UsesQueryBuilder(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	params := url.Values{"status": {"pending"}, "search": {"asha"}}
	_, _, opts, err := svc.List(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "pending", repo.lastFilter["status"])
	assert.Contains(t, repo.lastFilter, "$or")
	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(5), opts.Limit)
}

func TestStats(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	seed(t, svc, model.AppointmentStatusPending)
	seed(t, svc, model.AppointmentStatusPending)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus["pending"])
}
