package doctor

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

var searchFields = []string{"fullName", "specialty", "mainCategory", "cities"}

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	title := model.ProfessionalTitle(req.ProfessionalTitle)
	if !title.Valid() {
		return nil, apperrors.Validationf("invalid professionalTitle: %s", req.ProfessionalTitle)
	}

	doc := &model.Doctor{
		FullName:          req.FullName,
		ProfessionalTitle: title,
		Specialty:         req.Specialty,
		MainCategory:      req.MainCategory,
		Rating:            req.Rating,
		ConsultationFees:  req.ConsultationFees,
		Experience:        req.Experience,
		About:             req.About,
		ProfileImageURL:   req.ProfileImageURL,
		ContactNumber:     req.ContactNumber,
		Qualifications:    req.Qualifications,
		Cities:            req.Cities,
		DiseasesTreated:   req.DiseasesTreated,
		Address:           req.Address,
		MapCoordinates:    req.MapCoordinates,
		MapLink:           req.MapLink,
		EmployeeCode:      req.EmployeeCode,
		Status:            model.DoctorStatusActive,
		IsVisitingDoctor:  req.IsVisitingDoctor,
		IsHospitalDoctor:  req.IsHospitalDoctor,
	}
	for i := range doc.Qualifications {
		if doc.Qualifications[i].ID.IsZero() {
			doc.Qualifications[i].ID = primitive.NewObjectID()
		}
	}
	if doc.Qualifications == nil {
		doc.Qualifications = []model.Qualification{}
	}
	if doc.Cities == nil {
		doc.Cities = []string{}
	}
	if doc.DiseasesTreated == nil {
		doc.DiseasesTreated = []string{}
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) List(ctx context.Context, params url.Values) ([]model.Doctor, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) Update(ctx context.Context, id string, fields bson.M) (*model.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	if len(fields) == 0 {
		return nil, apperrors.Validationf("no fields to update")
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

func (s *Service) BySpecialty(ctx context.Context, specialty string, opts query.Options) ([]model.Doctor, int64, error) {
	return s.repo.List(ctx, bson.M{
		"specialty": primitive.Regex{Pattern: specialty, Options: "i"},
	}, opts)
}

func (s *Service) ByCity(ctx context.Context, city string, opts query.Options) ([]model.Doctor, int64, error) {
	return s.repo.List(ctx, bson.M{
		"cities": primitive.Regex{Pattern: city, Options: "i"},
	}, opts)
}

func (s *Service) ByCategory(ctx context.Context, category string, opts query.Options) ([]model.Doctor, int64, error) {
	return s.repo.List(ctx, bson.M{
		"mainCategory": primitive.Regex{Pattern: category, Options: "i"},
	}, opts)
}

func (s *Service) Active(ctx context.Context, opts query.Options) ([]model.Doctor, int64, error) {
	return s.repo.List(ctx, bson.M{"status": model.DoctorStatusActive}, opts)
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status model.DoctorStatus) (*model.Doctor, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", status)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{"status": status})
}

func (s *Service) UpdateRating(ctx context.Context, id string, req *model.UpdateDoctorRatingRequest) (*model.Doctor, error) {
	if req.Rating < 0 || req.Rating > 5 {
		return nil, apperrors.Validationf("rating must be between 0 and 5")
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	fields := bson.M{"rating": req.Rating}
	if req.ReviewCount != nil {
		fields["reviewCount"] = *req.ReviewCount
	}
	return s.repo.UpdateFields(ctx, oid, fields)
}

func (s *Service) UpdateFees(ctx context.Context, id string, fees float64) (*model.Doctor, error) {
	if fees < 0 {
		return nil, apperrors.Validationf("consultationFees must not be negative")
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{"consultationFees": fees})
}

// AddQualification appends a degree with a fresh sub-record id.
func (s *Service) AddQualification(ctx context.Context, id string, req *model.QualificationRequest) (*model.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	q := model.Qualification{
		ID:        primitive.NewObjectID(),
		Degree:    req.Degree,
		Institute: req.Institute,
		Year:      req.Year,
	}
	matched, err := s.repo.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"qualifications": q}},
	)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return s.repo.Get(ctx, oid)
}

// UpdateQualification rewrites a single degree addressed by its sub-id.
func (s *Service) UpdateQualification(ctx context.Context, id, qualificationID string, req *model.QualificationRequest) (*model.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	qid, err := parseID(qualificationID)
	if err != nil {
		return nil, err
	}
	matched, err := s.repo.UpdateOne(ctx,
		bson.M{"_id": oid, "qualifications._id": qid},
		bson.M{"$set": bson.M{
			"qualifications.$.degree":    req.Degree,
			"qualifications.$.institute": req.Institute,
			"qualifications.$.year":      req.Year,
		}},
	)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperrors.NotFound("qualification", nil)
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) RemoveQualification(ctx context.Context, id, qualificationID string) (*model.Doctor, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	qid, err := parseID(qualificationID)
	if err != nil {
		return nil, err
	}
	matched, err := s.repo.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"qualifications": bson.M{"_id": qid}}},
	)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) AddCity(ctx context.Context, id, city string) (*model.Doctor, error) {
	return s.addToSet(ctx, id, "cities", city)
}

func (s *Service) RemoveCity(ctx context.Context, id, city string) (*model.Doctor, error) {
	return s.pull(ctx, id, "cities", city)
}

func (s *Service) AddDisease(ctx context.Context, id, disease string) (*model.Doctor, error) {
	return s.addToSet(ctx, id, "diseasesTreated", disease)
}

func (s *Service) RemoveDisease(ctx context.Context, id, disease string) (*model.Doctor, error) {
	return s.pull(ctx, id, "diseasesTreated", disease)
}

func (s *Service) addToSet(ctx context.Context, id, field, value string) (*model.Doctor, error) {
	if value == "" {
		return nil, apperrors.Validationf("%s value is required", field)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	matched, err := s.repo.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{field: value}},
	)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) pull(ctx context.Context, id, field, value string) (*model.Doctor, error) {
	if value == "" {
		return nil, apperrors.Validationf("%s value is required", field)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	matched, err := s.repo.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{field: value}},
	)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperrors.NotFound("doctor", nil)
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) Specialties(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "specialty", nil)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "mainCategory", nil)
}

func (s *Service) Cities(ctx context.Context) ([]string, error) {
	return s.repo.Distinct(ctx, "cities", nil)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, nil)
}

func (s *Service) Stats(ctx context.Context) (*model.DoctorStats, error) {
	total, err := s.repo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.Count(ctx, bson.M{"status": model.DoctorStatusActive})
	if err != nil {
		return nil, err
	}
	bySpecialty, err := s.repo.GroupBy(ctx, "specialty", nil)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.repo.GroupBy(ctx, "mainCategory", nil)
	if err != nil {
		return nil, err
	}
	return &model.DoctorStats{
		Total:       total,
		Active:      active,
		Inactive:    total - active,
		BySpecialty: bySpecialty,
		ByCategory:  byCategory,
	}, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, ok := model.ObjectIDFromHex(id)
	if !ok {
		return primitive.NilObjectID, apperrors.Validationf("invalid id: %s", id)
	}
	return oid, nil
}
