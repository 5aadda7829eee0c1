package appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/internal/repository"
	"github.com/thelivecure/admin-api/internal/service/appointment"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

var _ repository.AppointmentRepository = (*fakeRepo)(nil)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRepo struct {
	appointments map[primitive.ObjectID]*model.Appointment
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
	if status, ok := fields["status"]; ok {
		apt.Status = status.(model.AppointmentStatus)
	}
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

func setup() (*fakeRepo, *gin.Engine) {
	repo := newFakeRepo()
	h := NewHandler(appointment.NewService(repo))
	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterPublic(api)
	h.RegisterRoutes(api)
	return repo, r
}

func TestCreate_ReturnsEnvelope(t *testing.T) {
	_, r := setup()

	body, _ := json.Marshal(gin.H{
		"patientName":   "Asha Verma",
		"patientMobile": "9876543210",
		"patientEmail":  "asha@example.com",
		"preferredDate": "2026-09-15",
		"preferredTime": "10:30",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Message string            `json:"message"`
		Body    model.Appointment `json:"body"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "appointment booked successfully", resp.Message)
	assert.Equal(t, model.AppointmentStatusPending, resp.Body.Status)
}

func TestCreate_MissingFields(t *testing.T) {
	_, r := setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGet_NotFound(t *testing.T) {
	_, r := setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+primitive.NewObjectID().Hex(), nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestList_PaginatedPayload(t *testing.T) {
	repo, r := setup()
	repo.appointments[primitive.NewObjectID()] = &model.Appointment{
		ID:          primitive.NewObjectID(),
		PatientName: "Asha Verma",
		Status:      model.AppointmentStatusPending,
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/appointments?page=1&limit=5", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Body map[string]json.RawMessage `json:"body"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Body, "docs")
	assert.Contains(t, resp.Body, "totalDocs")
	assert.Contains(t, resp.Body, "totalPages")
}

func TestCancel_RequiresReason(t *testing.T) {
	repo, r := setup()
	id := primitive.NewObjectID()
	repo.appointments[id] = &model.Appointment{ID: id, Status: model.AppointmentStatusPending}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id.Hex()+"/cancel", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, model.AppointmentStatusPending, repo.appointments[id].Status)
}
