package search

import (
	"context"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/query"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

const defaultPerTypeLimit = 5

// Result groups global search hits per entity type.
type Result struct {
	Doctors    []model.Doctor       `json:"doctors,omitempty"`
	Clinics    []model.Clinic       `json:"clinics,omitempty"`
	Blogs      []model.Blog         `json:"blogs,omitempty"`
	Treatments []model.Treatment    `json:"treatments,omitempty"`
	Stories    []model.PatientStory `json:"stories,omitempty"`
	Total      int64                `json:"total"`
}

// Suggestion is a lightweight name match for typeahead.
type Suggestion struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Service struct {
	doctors      repository.DoctorRepository
	clinics      repository.ClinicRepository
	blogs        repository.BlogRepository
	treatments   repository.TreatmentRepository
	stories      repository.PatientStoryRepository
	appointments repository.AppointmentRepository
}

func NewService(
	doctors repository.DoctorRepository,
	clinics repository.ClinicRepository,
	blogs repository.BlogRepository,
	treatments repository.TreatmentRepository,
	stories repository.PatientStoryRepository,
	appointments repository.AppointmentRepository,
) *Service {
	return &Service{
		doctors:      doctors,
		clinics:      clinics,
		blogs:        blogs,
		treatments:   treatments,
		stories:      stories,
		appointments: appointments,
	}
}

func iRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: term, Options: "i"}
}

func orFilter(term string, fields ...string) bson.M {
	clauses := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		clauses = append(clauses, bson.M{f: iRegex(term)})
	}
	return bson.M{"$or": clauses}
}

func limitOpts(limit int64) query.Options {
	if limit <= 0 {
		limit = defaultPerTypeLimit
	}
	return query.Options{Page: 1, Limit: limit, Sort: bson.D{{Key: "createdAt", Value: -1}}}
}

// Global fans a term out across all entity types concurrently. An empty
// types slice searches everything; a failing branch fails the whole search.
func (s *Service) Global(ctx context.Context, term string, types []string, perTypeLimit int64) (*Result, error) {
	if term == "" {
		return nil, apperrors.Validationf("search term is required")
	}

	wanted := map[string]bool{}
	for _, t := range types {
		wanted[t] = true
	}
	all := len(wanted) == 0
	opts := limitOpts(perTypeLimit)

	result := &Result{}
	var totals [5]int64

	g, gctx := errgroup.WithContext(ctx)

	if all || wanted["doctors"] {
		g.Go(func() error {
			docs, total, err := s.doctors.List(gctx, orFilter(term, "fullName", "specialty", "mainCategory"), opts)
			if err != nil {
				return err
			}
			result.Doctors = docs
			totals[0] = total
			return nil
		})
	}
	if all || wanted["clinics"] {
		g.Go(func() error {
			docs, total, err := s.clinics.List(gctx, orFilter(term, "name", "city", "specialties"), opts)
			if err != nil {
				return err
			}
			result.Clinics = docs
			totals[1] = total
			return nil
		})
	}
	if all || wanted["blogs"] {
		g.Go(func() error {
			filter := orFilter(term, "title", "content", "tags")
			filter["status"] = model.PublishStatusPublished
			docs, total, err := s.blogs.List(gctx, filter, opts)
			if err != nil {
				return err
			}
			result.Blogs = docs
			totals[2] = total
			return nil
		})
	}
	if all || wanted["treatments"] {
		g.Go(func() error {
			filter := orFilter(term, "title", "description")
			filter["status"] = model.PublishStatusPublished
			docs, total, err := s.treatments.List(gctx, filter, opts)
			if err != nil {
				return err
			}
			result.Treatments = docs
			totals[3] = total
			return nil
		})
	}
	if all || wanted["stories"] {
		g.Go(func() error {
			filter := orFilter(term, "name", "condition", "story")
			filter["status"] = model.PublishStatusPublished
			docs, total, err := s.stories.List(gctx, filter, opts)
			if err != nil {
				return err
			}
			result.Stories = docs
			totals[4] = total
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, t := range totals {
		result.Total += t
	}
	return result, nil
}

// entityParams maps the public q parameter onto the builder's search key
// without mutating the caller's values.
func entityParams(params url.Values) url.Values {
	copied := url.Values{}
	for k, v := range params {
		copied[k] = v
	}
	if q := copied.Get("q"); q != "" && copied.Get("search") == "" {
		copied.Set("search", q)
	}
	return copied
}

// Doctors searches doctors by name, specialty and category; the shared
// filter parameters (city, rating, fees bounds) apply on top.
func (s *Service) Doctors(ctx context.Context, params url.Values) ([]model.Doctor, int64, query.Options, error) {
	filter, opts := query.Build(entityParams(params), query.Config{
		SearchFields:  []string{"fullName", "specialty", "mainCategory"},
		DefaultFilter: query.NoDefaultFilter,
		UnFilter:      []string{"q", "types"},
	})
	docs, total, err := s.doctors.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) Clinics(ctx context.Context, params url.Values) ([]model.Clinic, int64, query.Options, error) {
	filter, opts := query.Build(entityParams(params), query.Config{
		SearchFields:  []string{"name", "city", "specialties"},
		DefaultFilter: query.NoDefaultFilter,
		UnFilter:      []string{"q", "types"},
	})
	docs, total, err := s.clinics.List(ctx, filter, opts)
	return docs, total, opts, err
}

// Blogs searches published posts only.
func (s *Service) Blogs(ctx context.Context, params url.Values) ([]model.Blog, int64, query.Options, error) {
	filter, opts := query.Build(entityParams(params), query.Config{
		SearchFields:  []string{"title", "content", "tags"},
		DefaultFilter: bson.M{"status": model.PublishStatusPublished},
		UnFilter:      []string{"q", "types"},
	})
	docs, total, err := s.blogs.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) Treatments(ctx context.Context, params url.Values) ([]model.Treatment, int64, query.Options, error) {
	filter, opts := query.Build(entityParams(params), query.Config{
		SearchFields:  []string{"title", "description"},
		DefaultFilter: bson.M{"status": model.PublishStatusPublished},
		UnFilter:      []string{"q", "types"},
	})
	docs, total, err := s.treatments.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) Stories(ctx context.Context, params url.Values) ([]model.PatientStory, int64, query.Options, error) {
	filter, opts := query.Build(entityParams(params), query.Config{
		SearchFields:  []string{"name", "condition", "story"},
		DefaultFilter: bson.M{"status": model.PublishStatusPublished},
		UnFilter:      []string{"q", "types"},
	})
	docs, total, err := s.stories.List(ctx, filter, opts)
	return docs, total, opts, err
}

// Appointments searches by patient and doctor names; admin only, mounted
// behind authentication.
func (s *Service) Appointments(ctx context.Context, params url.Values) ([]model.Appointment, int64, query.Options, error) {
	filter, opts := query.Build(entityParams(params), query.Config{
		SearchFields:  []string{"patientName", "patientEmail", "doctorName"},
		DefaultFilter: query.NoDefaultFilter,
		UnFilter:      []string{"q", "types"},
	})
	docs, total, err := s.appointments.List(ctx, filter, opts)
	return docs, total, opts, err
}

// Suggestions merges doctor, clinic and treatment name matches, capped at
// limit across all types.
func (s *Service) Suggestions(ctx context.Context, term string, limit int64) ([]Suggestion, error) {
	if term == "" {
		return nil, apperrors.Validationf("search term is required")
	}
	if limit <= 0 {
		limit = 10
	}
	opts := limitOpts(limit)

	suggestions := []Suggestion{}

	doctors, _, err := s.doctors.List(ctx, bson.M{"fullName": iRegex(term)}, opts)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		suggestions = append(suggestions, Suggestion{Type: "doctor", ID: d.ID.Hex(), Text: d.FullName})
	}

	clinics, _, err := s.clinics.List(ctx, bson.M{"name": iRegex(term)}, opts)
	if err != nil {
		return nil, err
	}
	for _, c := range clinics {
		suggestions = append(suggestions, Suggestion{Type: "clinic", ID: c.ID.Hex(), Text: c.Name})
	}

	treatments, _, err := s.treatments.List(ctx, bson.M{"title": iRegex(term)}, opts)
	if err != nil {
		return nil, err
	}
	for _, tr := range treatments {
		suggestions = append(suggestions, Suggestion{Type: "treatment", ID: tr.ID.Hex(), Text: tr.Title})
	}

	if int64(len(suggestions)) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions, nil
}
