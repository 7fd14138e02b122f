package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/app/models/dto"
	"github.com/ozank/stationhub/internal/app/repositories"
	"github.com/ozank/stationhub/internal/pkg/apperrors"
	"github.com/ozank/stationhub/internal/pkg/auth"
)

// authService implements AuthService
type authService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login verifies the credentials and issues a fresh session key. A new
// login overwrites any previous key, so at most one session per user is
// active. lastLogin is stamped for every role except admin.
func (s *authService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	key := auth.NewSessionKey()
	fields := bson.M{"authKey": key}

	var lastLogin *time.Time
	if user.Role != models.RoleAdmin {
		now := time.Now().UTC()
		lastLogin = &now
		fields["lastLogin"] = now
	}

	matched, err := s.userRepo.UpdateFields(ctx, user.ID, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		// The user vanished between lookup and update
		return nil, apperrors.ErrUserNotFound
	}

	s.logger.Info().Str("email", email).Str("role", string(user.Role)).Msg("User logged in")

	return &dto.LoginResponse{
		AuthKey:   key,
		LastLogin: lastLogin,
	}, nil
}

// Logout clears the session key held by its owner. A second logout with the
// same key fails with not-found, since nobody holds it anymore.
func (s *authService) Logout(ctx context.Context, authKey string) error {
	user, err := s.userRepo.GetByAuthKey(ctx, authKey)
	if err != nil {
		return err
	}

	matched, err := s.userRepo.UpdateFields(ctx, user.ID, bson.M{"authKey": nil})
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperrors.ErrUserNotFound
	}

	s.logger.Info().Str("email", user.Email).Msg("User logged out")
	return nil
}

// Resolve looks up the user holding a session key. Absence surfaces as
// ErrUserNotFound, a 404-style outcome for callers, never a 500.
func (s *authService) Resolve(ctx context.Context, authKey string) (*models.User, error) {
	return s.userRepo.GetByAuthKey(ctx, authKey)
}

// Authorize resolves the key and enforces role membership. An unknown key
// is an authentication failure; a known key with the wrong role is a
// permission failure, never collapsed into the former.
func (s *authService) Authorize(ctx context.Context, authKey string, allowedRoles ...models.Role) (*models.User, error) {
	user, err := s.userRepo.GetByAuthKey(ctx, authKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, err
	}

	if !user.Role.In(allowedRoles...) {
		return nil, apperrors.ErrPermissionDenied
	}

	return user, nil
}
