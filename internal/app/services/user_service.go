package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/app/models/dto"
	"github.com/ozank/stationhub/internal/app/repositories"
	"github.com/ozank/stationhub/internal/pkg/apperrors"
	"github.com/ozank/stationhub/internal/pkg/auth"
)

// userService implements UserService
type userService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Create persists a new account with a null session key and null lastLogin.
// The password is hashed unless the request carries a pre-hashed credential.
func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	password, err := resolvePassword(req.Password, req.PasswordHashed)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		StudentNumber: *req.StudentNumber,
		Email:         req.Email,
		Password:      password,
		Role:          models.Role(req.Role),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// Update replaces every account field except the id. The session key is
// cleared, so an updated account has to log in again.
func (s *userService) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateUserRequest) (*models.User, error) {
	password, err := resolvePassword(req.Password, req.PasswordHashed)
	if err != nil {
		return nil, err
	}

	fields := bson.M{
		"studentNumber": *req.StudentNumber,
		"email":         req.Email,
		"password":      password,
		"role":          models.Role(req.Role),
		"authKey":       nil,
	}

	matched, err := s.userRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	return s.userRepo.GetByID(ctx, id)
}

// Delete removes an account by id
func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.ErrUserNotFound
	}

	s.logger.Info().Str("id", id.Hex()).Msg("User deleted")
	return nil
}

// ReassignRole sets the role on every user whose lastLogin falls within the
// inclusive window. Zero matches is reported as a distinct outcome from a
// storage failure.
func (s *userService) ReassignRole(ctx context.Context, start, end time.Time, role models.Role) (int64, error) {
	affected, err := s.userRepo.ReassignRoleByLastLogin(ctx, start, end, role)
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, apperrors.ErrNoUsersMatched
	}

	s.logger.Info().Int64("affected", affected).Str("role", string(role)).Msg("Roles reassigned")
	return affected, nil
}

// DeleteInactive removes every user whose lastLogin is at or before the
// cutoff. Never-logged-in accounts are excluded by the repository filter.
func (s *userService) DeleteInactive(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := s.userRepo.DeleteInactive(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, apperrors.ErrNoUsersMatched
	}

	s.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Inactive users deleted")
	return deleted, nil
}

// resolvePassword hashes a plaintext credential; a pre-hashed credential is
// stored as-is. The flag is explicit, nothing is inferred from the value.
func resolvePassword(password string, preHashed bool) (string, error) {
	if preHashed {
		return password, nil
	}
	return auth.HashPassword(password)
}
