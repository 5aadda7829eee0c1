package invoice

import (
	"context"
	"regexp"
	"strings"
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

type fakeInvoiceRepo struct {
	invoices map[primitive.ObjectID]*model.Invoice
	inMonth  int64
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: map[primitive.ObjectID]*model.Invoice{}}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	inv.RecalculateTotals()
	inv.ID = primitive.NewObjectID()
	inv.Touch(time.Now())
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, apperrors.NotFound("invoice", nil)
	}
	copied := *inv
	return &copied, nil
}

func (f *fakeInvoiceRepo) GetByNumber(ctx context.Context, number string) (*model.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.InvoiceNumber == number {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("invoice", nil)
}

func (f *fakeInvoiceRepo) GetByAppointment(ctx context.Context, appointmentID primitive.ObjectID) (*model.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.AppointmentID != nil && *inv.AppointmentID == appointmentID {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("invoice", nil)
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Invoice, int64, error) {
	out := []model.Invoice{}
	for _, inv := range f.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) Update(ctx context.Context, inv *model.Invoice) error {
	inv.RecalculateTotals()
	f.invoices[inv.ID] = inv
	return nil
}

func (f *fakeInvoiceRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, apperrors.NotFound("invoice", nil)
	}
	for k, v := range fields {
		switch k {
		case "status":
			inv.Status = v.(model.InvoiceStatus)
		case "paymentMethod":
			inv.PaymentMethod = v.(model.PaymentMethod)
		case "paymentDate":
			d := v.(time.Time)
			inv.PaymentDate = &d
		case "emailSent":
			inv.EmailSent = v.(bool)
		case "emailSentAt":
			d := v.(time.Time)
			inv.EmailSentAt = &d
		case "consultationFee":
			inv.ConsultationFee = v.(float64)
		case "discount":
			inv.Discount = v.(float64)
		case "notes":
			inv.Notes = v.(string)
		}
	}
	inv.RecalculateTotals()
	copied := *inv
	return &copied, nil
}

func (f *fakeInvoiceRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.invoices[id]; !ok {
		return apperrors.NotFound("invoice", nil)
	}
	delete(f.invoices, id)
	return nil
}

func (f *fakeInvoiceRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.invoices)), nil
}

func (f *fakeInvoiceRepo) CountInMonth(ctx context.Context, year int, month time.Month) (int64, error) {
	return f.inMonth, nil
}

func (f *fakeInvoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, inv := range f.invoices {
		if inv.Status == model.InvoiceStatusPending && inv.DueDate.Before(asOf) {
			inv.Status = model.InvoiceStatusOverdue
			n++
		}
	}
	return n, nil
}

func (f *fakeInvoiceRepo) Stats(ctx context.Context) (*model.InvoiceStats, error) {
	return &model.InvoiceStats{Total: int64(len(f.invoices))}, nil
}

type fakeAppointmentRepo struct {
	appointments map[primitive.ObjectID]*model.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Appointment, error) {
	apt, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", nil)
	}
	copied := *apt
	return &copied, nil
}
func (f *fakeAppointmentRepo) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Appointment, int64, error) {
	return nil, 0, nil
}
func (f *fakeAppointmentRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }
func (f *fakeAppointmentRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return 0, nil
}
func (f *fakeAppointmentRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) MonthlyCounts(ctx context.Context, year int) ([]int64, error) {
	return nil, nil
}

type recordingMailer struct {
	to      string
	subject string
	html    string
	err     error
	sends   int
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, html string) error {
	if m.err != nil {
		return m.err
	}
	m.sends++
	m.to = to
	m.subject = subject
	m.html = html
	return nil
}

func fixture() (*Service, *fakeInvoiceRepo, *fakeAppointmentRepo, *recordingMailer, primitive.ObjectID) {
	invoices := newFakeInvoiceRepo()
	mailer := &recordingMailer{}
	aptID := primitive.NewObjectID()
	appts := &fakeAppointmentRepo{appointments: map[primitive.ObjectID]*model.Appointment{
		aptID: {
			ID:               aptID,
			PatientName:      "Asha Rao",
			PatientEmail:     "asha@example.com",
			PatientMobile:    "9876543210",
			DoctorName:       "Dr. Mehta",
			TreatmentType:    "Cataract Surgery",
			City:             "Hyderabad",
			PreferredDate:    time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			PreferredTime:    "10:30 AM",
			ConsultationFees: 150,
		},
	}}
	return NewService(invoices, appts, mailer), invoices, appts, mailer, aptID
}

func TestGenerateFromAppointment_Arithmetic(t *testing.T) {
	svc, _, _, _, aptID := fixture()

	inv, err := svc.GenerateFromAppointment(context.Background(), aptID.Hex())
	require.NoError(t, err)

	assert.Equal(t, 150.0, inv.ConsultationFee)
	assert.Equal(t, 15.0, inv.PlatformFee)
	assert.Equal(t, 18.0, inv.Tax)
	assert.Equal(t, 0.0, inv.Discount)
	assert.Equal(t, 165.0, inv.Subtotal)
	assert.Equal(t, 183.0, inv.Total)
	assert.Equal(t, model.InvoiceStatusPending, inv.Status)
	assert.Equal(t, model.PaymentMethodPending, inv.PaymentMethod)
}

func TestGenerateFromAppointment_DefaultFee(t *testing.T) {
	svc, _, appts, _, aptID := fixture()
	appts.appointments[aptID].ConsultationFees = 0

	inv, err := svc.GenerateFromAppointment(context.Background(), aptID.Hex())
	require.NoError(t, err)
	assert.Equal(t, DefaultConsultationFee, inv.ConsultationFee)
}

func TestGenerateFromAppointment_DueDateAndNumber(t *testing.T) {
	svc, invoices, _, _, aptID := fixture()
	invoices.inMonth = 41

	inv, err := svc.GenerateFromAppointment(context.Background(), aptID.Hex())
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), inv.DueDate, time.Minute)

	now := time.Now()
	want := regexp.MustCompile(`^INV-\d{4}-\d{2}-0042$`)
	assert.Regexp(t, want, inv.InvoiceNumber)
	assert.Contains(t, inv.InvoiceNumber, now.Format("2006"))
}

func TestGenerateFromAppointment_MissingAppointment(t *testing.T) {
	svc, _, _, _, _ := fixture()

	_, err := svc.GenerateFromAppointment(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSendEmail_MarksSent(t *testing.T) {
	svc, invoices, _, mailer, aptID := fixture()
	inv, err := svc.GenerateFromAppointment(context.Background(), aptID.Hex())
	require.NoError(t, err)

	updated, err := svc.SendEmail(context.Background(), inv.ID.Hex())
	require.NoError(t, err)

	assert.Equal(t, 1, mailer.sends)
	assert.Equal(t, "asha@example.com", mailer.to)
	assert.Contains(t, mailer.subject, inv.InvoiceNumber)
	assert.Contains(t, mailer.html, "183.00")
	assert.True(t, updated.EmailSent)
	require.NotNil(t, updated.EmailSentAt)
	assert.True(t, invoices.invoices[inv.ID].EmailSent)
}

func TestSendEmail_FailureLeavesFlagUnset(t *testing.T) {
	svc, invoices, _, mailer, aptID := fixture()
	inv, err := svc.GenerateFromAppointment(context.Background(), aptID.Hex())
	require.NoError(t, err)
	mailer.err = assert.AnError

	_, err = svc.SendEmail(context.Background(), inv.ID.Hex())
	require.Error(t, err)
	assert.False(t, invoices.invoices[inv.ID].EmailSent)
}

func TestSendDirectEmail_NotPersisted(t *testing.T) {
	svc, invoices, _, mailer, aptID := fixture()

	inv, err := svc.SendDirectEmail(context.Background(), aptID.Hex())
	require.NoError(t, err)

	assert.Equal(t, 1, mailer.sends)
	assert.Empty(t, invoices.invoices)
	assert.Regexp(t, regexp.MustCompile(`^INV-\d{8}-\d{3}$`), inv.InvoiceNumber)
	assert.Equal(t, 183.0, inv.Total)
}

func TestMarkAsPaid(t *testing.T) {
	svc, _, _, _, aptID := fixture()
	inv, err := svc.GenerateFromAppointment(context.Background(), aptID.Hex())
	require.NoError(t, err)

	updated, err := svc.MarkAsPaid(context.Background(), inv.ID.Hex(), model.PaymentMethodCard)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPaid, updated.Status)
	assert.Equal(t, model.PaymentMethodCard, updated.PaymentMethod)
	require.NotNil(t, updated.PaymentDate)

	_, err = svc.MarkAsPaid(context.Background(), inv.ID.Hex(), "barter")
	require.Error(t, err)
}

func TestUpdateStatus_PaidStampsDate(t *testing.T) {
	svc, _, _, _, aptID := fixture()
	inv, err := svc.GenerateFromAppointment(context.Background(), aptID.Hex())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), inv.ID.Hex(), model.InvoiceStatusPaid)
	require.NoError(t, err)
	require.NotNil(t, updated.PaymentDate)

	_, err = svc.UpdateStatus(context.Background(), inv.ID.Hex(), "shredded")
	require.Error(t, err)
}

func TestMarkOverdue(t *testing.T) {
	svc, invoices, _, _, aptID := fixture()
	inv, err := svc.GenerateFromAppointment(context.Background(), aptID.Hex())
	require.NoError(t, err)
	invoices.invoices[inv.ID].DueDate = time.Now().AddDate(0, 0, -1)

	n, err := svc.MarkOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, model.InvoiceStatusOverdue, invoices.invoices[inv.ID].Status)
}

func TestRenderInvoiceHTML_EscapesContent(t *testing.T) {
	inv := &model.Invoice{
		InvoiceNumber:   "INV-2026-09-0001",
		PatientName:     "<script>alert(1)</script>",
		PatientEmail:    "x@example.com",
		DoctorName:      "Dr. Mehta",
		TreatmentType:   "LASIK",
		ConsultationFee: 150,
		IssueDate:       time.Now(),
		DueDate:         time.Now().AddDate(0, 0, 30),
	}
	inv.DeriveCharges()

	html, err := renderInvoiceHTML(inv)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.True(t, strings.Contains(html, "INV-2026-09-0001"))
}

func TestInvoiceRoundingTable(t *testing.T) {
	tests := []struct {
		fee      float64
		platform float64
		tax      float64
		subtotal float64
		total    float64
	}{
		{150, 15, 18, 165, 183},
		{100, 10, 12, 110, 122},
		{99, 10, 12, 109, 121},
		{175, 18, 21, 193, 214},
	}
	for _, tt := range tests {
		inv := &model.Invoice{ConsultationFee: tt.fee}
		inv.DeriveCharges()
		assert.Equal(t, tt.platform, inv.PlatformFee, "fee %v", tt.fee)
		assert.Equal(t, tt.tax, inv.Tax, "fee %v", tt.fee)
		assert.Equal(t, tt.subtotal, inv.Subtotal, "fee %v", tt.fee)
		assert.Equal(t, tt.total, inv.Total, "fee %v", tt.fee)
	}
}
