package settings

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/repository"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
)

type Service struct {
	repo repository.SettingsRepository
}

func NewService(repo repository.SettingsRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, settingsType model.SettingsType) (*model.Settings, error) {
	if !settingsType.Valid() {
		return nil, apperrors.Validationf("invalid settings type: %s", settingsType)
	}
	return s.repo.GetByType(ctx, settingsType)
}

// Upsert writes the singleton document for the type, creating it on first
// use.
func (s *Service) Upsert(ctx context.Context, settingsType model.SettingsType, data bson.M, updatedBy string) (*model.Settings, error) {
	if !settingsType.Valid() {
		return nil, apperrors.Validationf("invalid settings type: %s", settingsType)
	}
	if len(data) == 0 {
		return nil, apperrors.Validationf("data is required")
	}
	return s.repo.UpsertByType(ctx, settingsType, data, updatedBy)
}

func (s *Service) ListAll(ctx context.Context) ([]model.Settings, error) {
	return s.repo.ListAll(ctx)
}
