package clinic

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

var searchFields = []string{"name", "city", "state", "specialties", "type"}

const topValuesLimit = 10

type Service struct {
	repo repository.ClinicRepository
}

func NewService(repo repository.ClinicRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateClinicRequest) (*model.Clinic, error) {
	if !req.Type.Valid() {
		return nil, apperrors.Validationf("invalid clinic type: %s", req.Type)
	}

	clinic := &model.Clinic{
		Name:                req.Name,
		Type:                req.Type,
		Address:             req.Address,
		City:                req.City,
		State:               req.State,
		Pincode:             req.Pincode,
		Phone:               req.Phone,
		Email:               req.Email,
		Website:             req.Website,
		Status:              model.ClinicStatusActive,
		Specialties:         req.Specialties,
		Facilities:          req.Facilities,
		Amenities:           req.Amenities,
		WorkingHours:        req.WorkingHours,
		Description:         req.Description,
		EmergencyContact:    req.EmergencyContact,
		IsEmergencyCenter:   req.IsEmergencyCenter,
		Is24Hours:           req.Is24Hours,
		HasParking:          req.HasParking,
		HasWheelchairAccess: req.HasWheelchairAccess,
	}
	if clinic.Specialties == nil {
		clinic.Specialties = []string{}
	}
	if clinic.Facilities == nil {
		clinic.Facilities = []string{}
	}
	if clinic.Amenities == nil {
		clinic.Amenities = []string{}
	}

	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Clinic, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) List(ctx context.Context, params url.Values) ([]model.Clinic, int64, query.Options, error) {
	filter, opts := query.Build(params, query.Config{
		SearchFields:  searchFields,
		DefaultFilter: query.NoDefaultFilter,
	})
	docs, total, err := s.repo.List(ctx, filter, opts)
	return docs, total, opts, err
}

func (s *Service) Update(ctx context.Context, id string, fields bson.M) (*model.Clinic, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	delete(fields, "_id")
	if len(fields) == 0 {
		return nil, apperrors.Validationf("no fields to update")
	}
	if rawType, ok := fields["type"].(string); ok {
		if !model.ClinicType(rawType).Valid() {
			return nil, apperrors.Validationf("invalid clinic type: %s", rawType)
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

func (s *Service) ByCity(ctx context.Context, city string, opts query.Options) ([]model.Clinic, int64, error) {
	return s.repo.List(ctx, bson.M{
		"city": primitive.Regex{Pattern: city, Options: "i"},
	}, opts)
}

func (s *Service) ByType(ctx context.Context, clinicType model.ClinicType, opts query.Options) ([]model.Clinic, int64, error) {
	if !clinicType.Valid() {
		return nil, 0, apperrors.Validationf("invalid clinic type: %s", clinicType)
	}
	return s.repo.List(ctx, bson.M{"type": clinicType}, opts)
}

func (s *Service) BySpecialty(ctx context.Context, specialty string, opts query.Options) ([]model.Clinic, int64, error) {
	return s.repo.List(ctx, bson.M{
		"specialties": primitive.Regex{Pattern: specialty, Options: "i"},
	}, opts)
}

func (s *Service) EmergencyCenters(ctx context.Context, opts query.Options) ([]model.Clinic, int64, error) {
	return s.repo.List(ctx, bson.M{"isEmergencyCenter": true}, opts)
}

func (s *Service) OpenAllDay(ctx context.Context, opts query.Options) ([]model.Clinic, int64, error) {
	return s.repo.List(ctx, bson.M{"is24Hours": true}, opts)
}

func (s *Service) WithAmenities(ctx context.Context, amenities []string, opts query.Options) ([]model.Clinic, int64, error) {
	if len(amenities) == 0 {
		return nil, 0, apperrors.Validationf("at least one amenity is required")
	}
	return s.repo.List(ctx, bson.M{"amenities": bson.M{"$all": amenities}}, opts)
}

func (s *Service) UpdateWorkingHours(ctx context.Context, id string, hours model.WorkingHours) (*model.Clinic, error) {
	if len(hours) == 0 {
		return nil, apperrors.Validationf("workingHours is required")
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{"workingHours": hours})
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status model.ClinicStatus) (*model.Clinic, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("invalid status: %s", status)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateFields(ctx, oid, bson.M{"status": status})
}

func (s *Service) AddSpecialty(ctx context.Context, id, specialty string) (*model.Clinic, error) {
	return s.addToSet(ctx, id, "specialties", specialty)
}

func (s *Service) RemoveSpecialty(ctx context.Context, id, specialty string) (*model.Clinic, error) {
	return s.pull(ctx, id, "specialties", specialty)
}

func (s *Service) AddFacility(ctx context.Context, id, facility string) (*model.Clinic, error) {
	return s.addToSet(ctx, id, "facilities", facility)
}

func (s *Service) RemoveFacility(ctx context.Context, id, facility string) (*model.Clinic, error) {
	return s.pull(ctx, id, "facilities", facility)
}

func (s *Service) addToSet(ctx context.Context, id, field, value string) (*model.Clinic, error) {
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
		return nil, apperrors.NotFound("clinic", nil)
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) pull(ctx context.Context, id, field, value string) (*model.Clinic, error) {
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
		return nil, apperrors.NotFound("clinic", nil)
	}
	return s.repo.Get(ctx, oid)
}

func (s *Service) Stats(ctx context.Context) (*model.ClinicStats, error) {
	total, err := s.repo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	active, err := s.repo.Count(ctx, bson.M{"status": model.ClinicStatusActive})
	if err != nil {
		return nil, err
	}
	byType, err := s.repo.GroupBy(ctx, "type", nil)
	if err != nil {
		return nil, err
	}
	byCity, err := s.repo.GroupBy(ctx, "city", nil)
	if err != nil {
		return nil, err
	}
	byState, err := s.repo.GroupBy(ctx, "state", nil)
	if err != nil {
		return nil, err
	}
	emergency, err := s.repo.Count(ctx, bson.M{"isEmergencyCenter": true})
	if err != nil {
		return nil, err
	}
	allDay, err := s.repo.Count(ctx, bson.M{"is24Hours": true})
	if err != nil {
		return nil, err
	}
	parking, err := s.repo.Count(ctx, bson.M{"hasParking": true})
	if err != nil {
		return nil, err
	}
	wheelchair, err := s.repo.Count(ctx, bson.M{"hasWheelchairAccess": true})
	if err != nil {
		return nil, err
	}
	topSpecialties, err := s.repo.TopArrayValues(ctx, "specialties", topValuesLimit)
	if err != nil {
		return nil, err
	}
	topFacilities, err := s.repo.TopArrayValues(ctx, "facilities", topValuesLimit)
	if err != nil {
		return nil, err
	}
	recent, _, err := s.repo.List(ctx, bson.M{}, query.Options{
		Page: 1, Limit: 5, Sort: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return nil, err
	}

	return &model.ClinicStats{
		Total:            total,
		Active:           active,
		Inactive:         total - active,
		ByType:           byType,
		ByCity:           byCity,
		ByState:          byState,
		EmergencyCenters: emergency,
		OpenAllDay:       allDay,
		WithParking:      parking,
		WheelchairAccess: wheelchair,
		TopSpecialties:   topSpecialties,
		TopFacilities:    topFacilities,
		RecentlyAdded:    recent,
	}, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, ok := model.ObjectIDFromHex(id)
	if !ok {
		return primitive.NilObjectID, apperrors.Validationf("invalid id: %s", id)
	}
	return oid, nil
}
