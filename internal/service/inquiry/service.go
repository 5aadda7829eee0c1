package inquiry

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

var searchFields = []string{"name", "email", "subject", "message"}

type Service struct {
	repo repository.ContactInquiryRepository
}

func NewService(repo repository.ContactInquiryRepository) *Service {
	return &Service{repo: repo}
}

// Create accepts a public inquiry. New inquiries start unassigned with
// medium priority.
func (s *Service) Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.ContactInquiry, error) {
	inquiryType := req.Type
	if inquiryType == "" {
		inquiryType = model.InquiryTypeGeneral
	}
	if !inquiryType.Valid() {
		return nil, apperrors.Validationf("invalid inquiry type: %s", inquiryType)
	}

	inq := &model.ContactInquiry{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		Type:     inquiryType,
		Status:   model.InquiryStatusNew,
		Priority: model.InquiryPriorityMedium,
	}
	if err := s.repo.Create(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.ContactInquiry, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) List(ctx context.Context, params url.Values) ([]model.ContactInquiry, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) ByStatus(ctx context.Context, status model.InquiryStatus, opts query.Options) ([]model.ContactInquiry, int64, error) {
	if !status.Valid() {
		return nil, 0, apperrors.Validationf("invalid status: %s", status)
	}
	return s.repo.List(ctx, bson.M{"status": status}, opts)
}

func (s *Service) ByType(ctx context.Context, inquiryType model.InquiryType, opts query.Options) ([]model.ContactInquiry, int64, error) {
	if !inquiryType.Valid() {
		return nil, 0, apperrors.Validationf("invalid inquiry type: %s", inquiryType)
	}
	return s.repo.List(ctx, bson.M{"type": inquiryType}, opts)
}

func (s *Service) ByPriority(ctx context.Context, priority model.InquiryPriority, opts query.Options) ([]model.ContactInquiry, int64, error) {
	if !priority.Valid() {
		return nil, 0, apperrors.Validationf("invalid priority: %s", priority)
	}
	return s.repo.List(ctx, bson.M{"priority": priority}, opts)
}

func (s *Service) New(ctx context.Context, opts query.Options) ([]model.ContactInquiry, int64, error) {
	return s.repo.List(ctx, bson.M{"status": model.InquiryStatusNew}, opts)
}

func (s *Service) Urgent(ctx context.Context, opts query.Options) ([]model.ContactInquiry, int64, error) {
	return s.repo.List(ctx, bson.M{
		"priority": model.InquiryPriorityUrgent,
		"status": bson.M{"$in": []model.InquiryStatus{
			model.InquiryStatusNew,
			model.InquiryStatusInProgress,
		}},
	}, opts)
}

func (s *Service) Assign(ctx context.Context, id, assigneeID string) (*model.ContactInquiry, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	aid, err := parseID(assigneeID)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{
		"assignedTo": aid,
		"status":     model.InquiryStatusInProgress,
	})
}

// Respond records the reply and resolves the inquiry.
func (s *Service) Respond(ctx context.Context, id, responderID, response string) (*model.ContactInquiry, error) {
	if response == "" {
		return nil, apperrors.Validationf("response is required")
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	fields := bson.M{
		"response":    response,
		"respondedAt": time.Now(),
		"status":      model.InquiryStatusResolved,
	}
	if responderID != "" {
		rid, err := parseID(responderID)
		if err != nil {
			return nil, err
		}
		fields["respondedBy"] = rid
	}
	return s.repo.UpdateFields(ctx, oid, fields)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status model.InquiryStatus) (*model.ContactInquiry, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", status)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{"status": status})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

func (s *Service) Recent(ctx context.Context, limit int64) ([]model.ContactInquiry, error) {
	docs, _, err := s.repo.List(ctx, bson.M{}, query.Options{
		Page: 1, Limit: limit, Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	return docs, err
}

func (s *Service) Stats(ctx context.Context) (*model.InquiryStats, error) {
	byStatus, err := s.repo.GroupBy(ctx, "status", nil)
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.GroupBy(ctx, "type", nil)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.GroupBy(ctx, "priority", nil)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}
	unresolved := byStatus[string(model.InquiryStatusNew)] + byStatus[string(model.InquiryStatusInProgress)]

	return &model.InquiryStats{
		Total:      total,
		ByStatus:   byStatus,
		ByType:     byType,
		ByPriority: byPriority,
		Unresolved: unresolved,
	}, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, ok := model.ObjectIDFromHex(id)
	if !ok {
		return primitive.NilObjectID, apperrors.Validationf("invalid id: %s", id)
	}
	return oid, nil
}
