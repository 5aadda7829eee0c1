package blog

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

var searchFields = []string{"title", "subtitle", "content", "author", "tags"}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a url slug from a title.
func Slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

type Service struct {
	repo repository.BlogRepository
}

func NewService(repo repository.BlogRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateBlogRequest) (*model.Blog, error) {
	status := req.Status
	if status == "" {
		status = model.PublishStatusDraft
	}
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", status)
	}

	blog := &model.Blog{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Date:     time.Now(),
		ReadTime: req.ReadTime,
		Category: req.Category,
		Image:    req.Image,
		Tags:     req.Tags,
		Featured: req.Featured,
		Status:   status,
		Slug:     Slugify(req.Title),
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}

	if err := s.repo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

// GetBySlug resolves a published post and counts the view.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	blog, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, blog.ID); err != nil {
		return nil, err
	}
	blog.Views++
	return blog, nil
}

func (s *Service) List(ctx context.Context, params url.Values) ([]model.Blog, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

// Published lists only publicly visible posts.
func (s *Service) Published(ctx context.Context, params url.Values) ([]model.Blog, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
		CustomFilters: func(f bson.M, p url.Values) {
			f["status"] = model.PublishStatusPublished
		},
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

// Update rewrites the given fields; a title change re-derives the slug.
func (s *Service) Update(ctx context.Context, id string, fields bson.M) (*model.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	delete(fields, "views")
	if len(fields) == 0 {
		return nil, apperrors.Validationf("no fields to update")
	}
	if title, ok := fields["title"].(string); ok {
		fields["slug"] = Slugify(title)
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

func (s *Service) Featured(ctx context.Context, opts query.Options) ([]model.Blog, int64, error) {
	return s.repo.List(ctx, bson.M{
		"featured": true,
		"status":   model.PublishStatusPublished,
	}, opts)
}

func (s *Service) ByCategory(ctx context.Context, category string, opts query.Options) ([]model.Blog, int64, error) {
	return s.repo.List(ctx, bson.M{
		"category": primitive.Regex{Pattern: category, Options: "i"},
		"status":   model.PublishStatusPublished,
	}, opts)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "category", bson.M{"status": model.PublishStatusPublished})
}

func (s *Service) Recent(ctx context.Context, limit int64) ([]model.Blog, error) {
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
