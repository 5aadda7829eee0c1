package doctor

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
	doctors    map[primitive.ObjectID]*model.Doctor
	lastFilter bson.M
	lastUpdate bson.M
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{doctors: map[primitive.ObjectID]*model.Doctor{}}
}

func (f *fakeRepo) Create(ctx context.Context, doc *model.Doctor) error {
	doc.ID = primitive.NewObjectID()
	doc.Touch(time.Now())
	f.doctors[doc.ID] = doc
	return nil
}

func (f *fakeRepo) Get(ctx context.Context, id primitive.ObjectID) (*model.Doctor, error) {
	doc, ok := f.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeRepo) List(ctx context.Context, filter bson.M, opts query.Options) ([]model.Doctor, int64, error) {
	f.lastFilter = filter
	out := []model.Doctor{}
	for _, doc := range f.doctors {
		out = append(out, *doc)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*model.Doctor, error) {
	doc, ok := f.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", nil)
	}
	for k, v := range fields {
		switch k {
		case "status":
			doc.Status = v.(model.DoctorStatus)
		case "rating":
			doc.Rating = v.(float64)
		case "reviewCount":
			doc.ReviewCount = v.(int)
		case "consultationFees":
			doc.ConsultationFees = v.(float64)
		}
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeRepo) UpdateOne(ctx context.Context, filter, update bson.M) (int64, error) {
	f.lastUpdate = update
	id, _ := filter["_id"].(primitive.ObjectID)
	doc, ok := f.doctors[id]
	if !ok {
		return 0, nil
	}
	if push, ok := update["$push"]; ok {
		if q, ok := push.(bson.M)["qualifications"].(model.Qualification); ok {
			doc.Qualifications = append(doc.Qualifications, q)
		}
	}
	if add, ok := update["$addToSet"]; ok {
		for field, v := range add.(bson.M) {
			switch field {
			case "cities":
				doc.Cities = append(doc.Cities, v.(string))
			case "diseasesTreated":
				doc.DiseasesTreated = append(doc.DiseasesTreated, v.(string))
			}
		}
	}
	if qfilter, ok := filter["qualifications._id"].(primitive.ObjectID); ok {
		found := false
		for i := range doc.Qualifications {
			if doc.Qualifications[i].ID == qfilter {
				found = true
				if set, ok := update["$set"].(bson.M); ok {
					doc.Qualifications[i].Degree = set["qualifications.$.degree"].(string)
					doc.Qualifications[i].Institute = set["qualifications.$.institute"].(string)
					doc.Qualifications[i].Year = set["qualifications.$.year"].(string)
				}
			}
		}
		if !found {
			return 0, nil
		}
	}
	return 1, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.doctors[id]; !ok {
		return apperrors.NotFound("doctor", nil)
	}
	delete(f.doctors, id)
	return nil
}

func (f *fakeRepo) Count(ctx context.Context, filter bson.M) (int64, error) {
	if status, ok := filter["status"]; ok {
		var n int64
		for _, doc := range f.doctors {
			if doc.Status == status.(model.DoctorStatus) {
				n++
			}
		}
		return n, nil
	}
	return int64(len(f.doctors)), nil
}

func (f *fakeRepo) Distinct(ctx context.Context, field string, filter bson.M) ([]string, error) {
	seen := map[string]struct{}{}
	for _, doc := range f.doctors {
		switch field {
		case "specialty":
			seen[doc.Specialty] = struct{}{}
		case "mainCategory":
			seen[doc.MainCategory] = struct{}{}
		}
	}
	out := []string{}
	for v := range seen {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeRepo) GroupBy(ctx context.Context, field string, filter bson.M) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, doc := range f.doctors {
		switch field {
		case "specialty":
			counts[doc.Specialty]++
		case "mainCategory":
			counts[doc.MainCategory]++
		}
	}
	return counts, nil
}

func createRequest() *model.CreateDoctorRequest {
	return &model.CreateDoctorRequest{
		FullName:          "Ravi Mehta",
		ProfessionalTitle: "Dr.",
		Specialty:         "Ophthalmology",
		MainCategory:      "Eye Care",
		Rating:            4.5,
		ConsultationFees:  150,
	}
}

func TestCreate_DefaultsActive(t *testing.T) {
	svc := NewService(newFakeRepo())

	doc, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, model.DoctorStatusActive, doc.Status)
	assert.NotNil(t, doc.Qualifications)
	assert.NotNil(t, doc.Cities)
}

func TestCreate_InvalidTitle(t *testing.T) {
	svc := NewService(newFakeRepo())
	req := createRequest()
	req.ProfessionalTitle = "Captain"

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestList_SearchBuildsOrClause(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	_, _, _, err := svc.List(context.Background(), url.Values{"search": {"mehta"}})
	require.NoError(t, err)
	assert.Contains(t, repo.lastFilter, "$or")
}

func TestQualificationLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	doc, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	updated, err := svc.AddQualification(context.Background(), doc.ID.Hex(), &model.QualificationRequest{
		Degree:    "MBBS",
		Institute: "AIIMS",
		Year:      "2010",
	})
	require.NoError(t, err)
	require.Len(t, updated.Qualifications, 1)
	qid := updated.Qualifications[0].ID
	assert.False(t, qid.IsZero())

	updated, err = svc.UpdateQualification(context.Background(), doc.ID.Hex(), qid.Hex(), &model.QualificationRequest{
		Degree:    "MS Ophthalmology",
		Institute: "AIIMS",
		Year:      "2014",
	})
	require.NoError(t, err)
	assert.Equal(t, "MS Ophthalmology", updated.Qualifications[0].Degree)

	_, err = svc.UpdateQualification(context.Background(), doc.ID.Hex(), primitive.NewObjectID().Hex(), &model.QualificationRequest{
		Degree: "X", Institute: "Y",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateRating_Bounds(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	doc, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.UpdateRating(context.Background(), doc.ID.Hex(), &model.UpdateDoctorRatingRequest{Rating: 5.5})
	require.Error(t, err)

	updated, err := svc.UpdateRating(context.Background(), doc.ID.Hex(), &model.UpdateDoctorRatingRequest{Rating: 4.8})
	require.NoError(t, err)
	assert.Equal(t, 4.8, updated.Rating)
}

func TestAddCity_UsesAddToSet(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	doc, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	updated, err := svc.AddCity(context.Background(), doc.ID.Hex(), "Pune")
	require.NoError(t, err)
	assert.Contains(t, updated.Cities, "Pune")
	assert.Contains(t, repo.lastUpdate, "$addToSet")

	_, err = svc.AddCity(context.Background(), doc.ID.Hex(), "")
	require.Error(t, err)
}

func TestStats(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Active)
	assert.Equal(t, int64(1), stats.BySpecialty["Ophthalmology"])
}
