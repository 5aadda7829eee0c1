package treatment

import (
	"context"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

var searchFields = []string{"title", "description", "url"}

type Service struct {
	repo repository.TreatmentRepository
}

func NewService(repo repository.TreatmentRepository) *Service {
	return &Service{repo: repo}
}

// Create registers a treatment page; the url slug must be unique.
func (s *Service) Create(ctx context.Context, req *model.CreateTreatmentRequest) (*model.Treatment, error) {
	status := req.Status
	if status == "" {
		status = model.PublishStatusDraft
	}
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", status)
	}

	if existing, err := s.repo.GetByURL(ctx, req.URL); err == nil && existing != nil {
		return nil, apperrors.Conflict("treatment url already exists", nil)
	} else if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}

	tr := &model.Treatment{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Diagnosis:   req.Diagnosis,
		Treatment:   req.Treatment,
		WhyChooseUs: req.WhyChooseUs,
		FAQ:         req.FAQ,
		Status:      status,
	}
	if err := s.repo.Create(ctx, tr); err != nil {
		return nil, err
	}
	return tr, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Treatment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) GetByURL(ctx context.Context, url string) (*model.Treatment, error) {
	return s.repo.GetByURL(ctx, url)
}

func (s *Service) List(ctx context.Context, params url.Values) ([]model.Treatment, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) Published(ctx context.Context, opts query.Options) ([]model.Treatment, int64, error) {
	return s.repo.List(ctx, bson.M{"status": model.PublishStatusPublished}, opts)
}

func (s *Service) Update(ctx context.Context, id string, fields bson.M) (*model.Treatment, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	if len(fields) == 0 {
		return nil, apperrors.Validationf("no fields to update")
	}
	if rawStatus, ok := fields["status"].(string); ok {
		if !model.PublishStatus(rawStatus).Valid() {
			return nil, apperrors.Validationf("invalid status: %s", rawStatus)
		}
	}
	return s.repo.UpdateFields(ctx, oid, fields)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, oid)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, ok := model.ObjectIDFromHex(id)
	if !ok {
		return primitive.NilObjectID, apperrors.Validationf("invalid id: %s", id)
	}
	return oid, nil
}
