package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/thelivecure/admin-api/internal/model"
	"github.com/thelivecure/admin-api/internal/repository"
	pkgauth "github.com/thelivecure/admin-api/pkg/auth"
	apperrors "github.com/thelivecure/admin-api/pkg/errors"
	"github.com/thelivecure/admin-api/pkg/security"
)

type Service struct {
	users  repository.UserRepository
	tokens *pkgauth.TokenService
	hasher security.PasswordHasher
}

func NewService(users repository.UserRepository, tokens *pkgauth.TokenService, hasher security.PasswordHasher) *Service {
	return &Service{users: users, tokens: tokens, hasher: hasher}
}

// Login exchanges credentials for a signed access token. Bad email and bad
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, err
	}
	if user.Deactivated {
		return nil, apperrors.Unauthorized(nil)
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: token, User: user}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (*model.User, error) {
	oid, ok := model.ObjectIDFromHex(userID)
	if !ok {
		return nil, apperrors.Validationf("invalid id: %s", userID)
	}
	return s.users.Get(ctx, oid)
}

// SeedAdmin creates the first admin account when no users exist yet.
func (s *Service) SeedAdmin(ctx context.Context, name, email, password string) (*model.User, error) {
	count, err := s.users.Count(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Conflict("users already exist", nil)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.UserRoleAdmin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
