package story

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

var searchFields = []string{"name", "condition", "treatment", "doctor", "story"}

type Service struct {
	repo repository.PatientStoryRepository
}

func NewService(repo repository.PatientStoryRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePatientStoryRequest) (*model.PatientStory, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.Validationf("rating must be between 1 and 5")
	}
	status := req.Status
	if status == "" {
		status = model.PublishStatusDraft
	}
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", status)
	}

	st := &model.PatientStory{
		Name:      req.Name,
		Age:       req.Age,
		Location:  req.Location,
		Condition: req.Condition,
		Treatment: req.Treatment,
		Surgery:   req.Surgery,
		Doctor:    req.Doctor,
		Rating:    req.Rating,
		Date:      time.Now(),
		Story:     req.Story,
		Outcome:   req.Outcome,
		Category:  req.Category,
		Image:     req.Image,
		Featured:  req.Featured,
		Status:    status,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.PatientStory, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) List(ctx context.Context, params url.Values) ([]model.PatientStory, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) Update(ctx context.Context, id string, fields bson.M) (*model.PatientStory, error) {
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

// Featured returns stories that are published, verified and flagged.
func (s *Service) Featured(ctx context.Context, opts query.Options) ([]model.PatientStory, int64, error) {
	return s.repo.List(ctx, bson.M{
		"featured": true,
		"verified": true,
		"status":   model.PublishStatusPublished,
	}, opts)
}

func (s *Service) ByCategory(ctx context.Context, category string, opts query.Options) ([]model.PatientStory, int64, error) {
	return s.repo.List(ctx, bson.M{
		"category": primitive.Regex{Pattern: category, Options: "i"},
		"status":   model.PublishStatusPublished,
	}, opts)
}

func (s *Service) ByCondition(ctx context.Context, condition string, opts query.Options) ([]model.PatientStory, int64, error) {
	return s.repo.List(ctx, bson.M{
		"condition": primitive.Regex{Pattern: condition, Options: "i"},
		"status":    model.PublishStatusPublished,
	}, opts)
}

func (s *Service) ByMinRating(ctx context.Context, minRating int, opts query.Options) ([]model.PatientStory, int64, error) {
	if minRating < 1 || minRating > 5 {
		return nil, 0, apperrors.Validationf("rating must be between 1 and 5")
	}
	return s.repo.List(ctx, bson.M{
		"rating": bson.M{"$gte": minRating},
		"status": model.PublishStatusPublished,
	}, opts)
}

func (s *Service) Verify(ctx context.Context, id string) (*model.PatientStory, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{"verified": true})
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "category", bson.M{"status": model.PublishStatusPublished})
}

func (s *Service) Conditions(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "condition", bson.M{"status": model.PublishStatusPublished})
}

func (s *Service) Recent(ctx context.Context, limit int64) ([]model.PatientStory, error) {
	docs, _, err := s.repo.List(ctx, bson.M{"status": model.PublishStatusPublished}, query.Options{
		Page: 1, Limit: limit, Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	return docs, err
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, ok := model.ObjectIDFromHex(id)
	if !ok {
		return primitive.NilObjectID, apperrors.Validationf("invalid id: %s", id)
	}
	return oid, nil
}
