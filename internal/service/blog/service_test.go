package blog

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
	blogs      map[primitive.ObjectID]*model.Blog
	lastFilter bson.M
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{blogs: map[primitive.ObjectID]*model.Blog{}}
}

func (f *fakeRepo) Create(ctx context.Context, b *model.Blog) error {
	b.ID = primitive.NewObjectID()
	b.Touch(time.Now())
	f.blogs[b.ID] = b
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Blog, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, apperrors.NotFound("blog", nil)
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*model.Blog, error) {
	for _, b := range f.blogs {
		if b.Slug == slug {
			copied := *b
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("blog", nil)
}

func (f *fakeRepo) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Blog, int64, error) {
	f.lastFilter = filter
	out := []model.Blog{}
	for _, b := range f.blogs {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Blog, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, apperrors.NotFound("blog", nil)
	}
	for k, v := range fields {
		switch k {
		case "title":
			b.Title = v.(string)
		case "slug":
			b.Slug = v.(string)
		case "status":
			b.Status = model.PublishStatus(v.(string))
		}
	}
	copied := *b
	return &copied, nil
}

func (f *fakeRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	if b, ok := f.blogs[id]; ok {
		b.Views++
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(f.blogs, id)
	return nil
}

func (f *fakeRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	return int64(len(f.blogs)), nil
}

func (f *fakeRepo) Distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	return []string{}, nil
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Understanding Cataract Surgery", "understanding-cataract-surgery"},
		{"  LASIK: What to Expect?  ", "lasik-what-to-expect"},
		{"Eye Care 101!", "eye-care-101"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title))
	}
}

func TestCreate_DerivesSlugAndDefaultsDraft(t *testing.T) {
	svc := NewService(newFakeRepo())

	b, err := svc.Create(context.Background(), &model.CreateBlogRequest{
		Title:   "Understanding Cataract Surgery",
		Content: "...",
		Author:  "Dr. Mehta",
	})
	require.NoError(t, err)
	assert.Equal(t, "understanding-cataract-surgery", b.Slug)
	assert.Equal(t, model.PublishStatusDraft, b.Status)
}

func TestUpdate_TitleChangeRederivesSlug(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	b, err := svc.Create(context.Background(), &model.CreateBlogRequest{
		Title: "Old Title", Content: "...", Author: "A",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), b.ID.Hex(), bson.M{"title": "Brand New Title"})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-title", updated.Slug)
}

func TestGetBySlug_CountsView(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	b, err := svc.Create(context.Background(), &model.CreateBlogRequest{
		Title: "Eye Care 101", Content: "...", Author: "A",
	})
	require.NoError(t, err)

	got, err := svc.GetBySlug(context.Background(), "eye-care-101")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
	assert.Equal(t, int64(1), repo.blogs[b.ID].Views)
}

func TestPublished_ForcesStatusFilter(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	// the status override wins even against a pass-through attempt
	_, _, _, err := svc.Published(context.Background(), url.Values{"status": {"draft"}})
	require.NoError(t, err)
	assert.Equal(t, model.PublishStatusPublished, repo.lastFilter["status"])
}

func TestFeatured_PublishedOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, _, err := svc.Featured(context.Background(), query.Options{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, true, repo.lastFilter["featured"])
	assert.Equal(t, model.PublishStatusPublished, repo.lastFilter["status"])
}
