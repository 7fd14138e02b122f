// Package services contains the application logic between the HTTP
// controllers and the data store gateway. Every operation surfaces a typed
// outcome: a value, a sentinel from apperrors, or an unexpected storage
// error that the middleware turns into a generic 500.
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/app/models/dto"
)

// AuthService validates credentials and manages opaque-key sessions
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	Logout(ctx context.Context, authKey string) error
	Resolve(ctx context.Context, authKey string) (*models.User, error)
	Authorize(ctx context.Context, authKey string, allowedRoles ...models.Role) (*models.User, error)
}

// UserService manages the account lifecycle
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ReassignRole(ctx context.Context, start, end time.Time, role models.Role) (int64, error)
	DeleteInactive(ctx context.Context, cutoff time.Time) (int64, error)
}

// ReadingService ingests sensor readings and answers range and aggregate
// queries
type ReadingService interface {
	Ingest(ctx context.Context, readings []*models.Reading) (int, error)
	GetByDeviceAndTime(ctx context.Context, deviceName string, t time.Time) (*models.Reading, error)
	GetWithinHour(ctx context.Context, deviceName string, t time.Time) ([]dto.HourlyReading, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]models.Reading, error)
	MaxTemperaturePerDevice(ctx context.Context, start, end time.Time) ([]dto.MaxTemperatureRow, error)
	MaxPrecipitation(ctx context.Context, deviceName string) (*models.Reading, error)
	UpdatePrecipitation(ctx context.Context, id primitive.ObjectID, precipitation float64) (*models.Reading, error)
}
