package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/pkg/apperrors"
	"github.com/ozank/stationhub/internal/pkg/auth"
)

// MockUserRepository is a mock implementation of IUserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByAuthKey(ctx context.Context, key string) (*models.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	args := m.Called(ctx, id, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) ReassignRoleByLastLogin(ctx context.Context, start, end time.Time, role models.Role) (int64, error) {
	args := m.Called(ctx, start, end, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) DeleteInactive(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestUser(t *testing.T, role models.Role, password string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:            primitive.NewObjectID(),
		StudentNumber: 12345678,
		Email:         "user@server.com",
		Password:      hashed,
		Role:          role,
	}
}

func TestLogin_StampsLastLoginForNonAdmin(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	user := newTestUser(t, models.RoleStudent, "abc123xyz")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("UpdateFields", mock.Anything, user.ID, mock.MatchedBy(func(fields bson.M) bool {
		_, hasKey := fields["authKey"]
		_, hasLogin := fields["lastLogin"]
		return hasKey && hasLogin
	})).Return(int64(1), nil)

	resp, err := svc.Login(context.Background(), user.Email, "abc123xyz")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AuthKey)
	require.NotNil(t, resp.LastLogin)
	assert.WithinDuration(t, time.Now().UTC(), *resp.LastLogin, 5*time.Second)
	repo.AssertExpectations(t)
}

func TestLogin_AdminLoginIsNotStamped(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	user := newTestUser(t, models.RoleAdmin, "abc123xyz")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	repo.On("UpdateFields", mock.Anything, user.ID, mock.MatchedBy(func(fields bson.M) bool {
		_, hasLogin := fields["lastLogin"]
		return !hasLogin
	})).Return(int64(1), nil)

	resp, err := svc.Login(context.Background(), user.Email, "abc123xyz")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AuthKey)
	assert.Nil(t, resp.LastLogin)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	user := newTestUser(t, models.RoleStudent, "abc123xyz")
	repo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	_, err := svc.Login(context.Background(), user.Email, "wrong-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	repo.On("GetByEmail", mock.Anything, "nobody@server.com").Return(nil, apperrors.ErrUserNotFound)

	_, err := svc.Login(context.Background(), "nobody@server.com", "whatever1")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestLogout_ClearsSessionKey(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	key := auth.NewSessionKey()
	user := newTestUser(t, models.RoleStudent, "abc123xyz")
	user.AuthKey = &key

	repo.On("GetByAuthKey", mock.Anything, key).Return(user, nil)
	repo.On("UpdateFields", mock.Anything, user.ID, bson.M{"authKey": nil}).Return(int64(1), nil)

	err := svc.Logout(context.Background(), key)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLogout_UnknownKeyFails(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	repo.On("GetByAuthKey", mock.Anything, "stale-key").Return(nil, apperrors.ErrUserNotFound)

	err := svc.Logout(context.Background(), "stale-key")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestResolve_ReturnsHolder(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	key := auth.NewSessionKey()
	user := newTestUser(t, models.RoleStudent, "abc123xyz")
	user.AuthKey = &key

	repo.On("GetByAuthKey", mock.Anything, key).Return(user, nil)

	resolved, err := svc.Resolve(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestAuthorize_ForbiddenIsNotUnauthenticated(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	key := auth.NewSessionKey()
	user := newTestUser(t, models.RoleStudent, "abc123xyz")
	user.AuthKey = &key

	repo.On("GetByAuthKey", mock.Anything, key).Return(user, nil)

	_, err := svc.Authorize(context.Background(), key, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.NotErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthorize_UnknownKeyIsUnauthenticated(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	repo.On("GetByAuthKey", mock.Anything, "bogus").Return(nil, apperrors.ErrUserNotFound)

	_, err := svc.Authorize(context.Background(), "bogus", models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthorize_AllowsMemberRole(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, zerolog.Nop())

	key := auth.NewSessionKey()
	user := newTestUser(t, models.RoleStation, "abc123xyz")
	user.AuthKey = &key

	repo.On("GetByAuthKey", mock.Anything, key).Return(user, nil)

	resolved, err := svc.Authorize(context.Background(), key, models.RoleAdmin, models.RoleStation)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStation, resolved.Role)
}
