package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/pkg/apperrors"
)

// MockReadingRepository is a mock implementation of IReadingRepository.
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) InsertMany(ctx context.Context, readings []*models.Reading) (int, error) {
	args := m.Called(ctx, readings)
	return args.Int(0), args.Error(1)
}

func (m *MockReadingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reading, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reading), args.Error(1)
}

func (m *MockReadingRepository) GetByDeviceAndTime(ctx context.Context, deviceName string, t time.Time) (*models.Reading, error) {
	args := m.Called(ctx, deviceName, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reading), args.Error(1)
}

func (m *MockReadingRepository) FindByTimeRange(ctx context.Context, start, end time.Time) ([]models.Reading, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reading), args.Error(1)
}

func (m *MockReadingRepository) FindByDeviceAndTimeRange(ctx context.Context, deviceName string, start, end time.Time) ([]models.Reading, error) {
	args := m.Called(ctx, deviceName, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reading), args.Error(1)
}

func (m *MockReadingRepository) GetTopPrecipitationSince(ctx context.Context, deviceName string, since time.Time) (*models.Reading, error) {
	args := m.Called(ctx, deviceName, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reading), args.Error(1)
}

func (m *MockReadingRepository) UpdatePrecipitation(ctx context.Context, id primitive.ObjectID, precipitation float64) (int64, error) {
	args := m.Called(ctx, id, precipitation)
	return args.Get(0).(int64), args.Error(1)
}

func floatPtr(v float64) *float64 { return &v }

func reading(device string, t time.Time, temp *float64) models.Reading {
	return models.Reading{
		ID:          primitive.NewObjectID(),
		DeviceName:  device,
		Time:        t,
		Temperature: temp,
	}
}

func TestIngest_EmptyBatchIsInvalid(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	_, err := svc.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	repo.AssertNotCalled(t, "InsertMany", mock.Anything, mock.Anything)
}

func TestIngest_ReturnsInsertedCount(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	batch := []*models.Reading{
		{DeviceName: "A", Time: time.Now().UTC()},
		{DeviceName: "B", Time: time.Now().UTC()},
	}
	repo.On("InsertMany", mock.Anything, batch).Return(2, nil)

	count, err := svc.Ingest(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMaxTemperaturePerDevice_ReducesToOneRowPerDevice(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	ten := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	eleven := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	halfTen := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)

	repo.On("FindByTimeRange", mock.Anything, start, end).Return([]models.Reading{
		reading("A", ten, floatPtr(20)),
		reading("B", halfTen, floatPtr(18)),
		reading("A", eleven, floatPtr(25)),
	}, nil)

	rows, err := svc.MaxTemperaturePerDevice(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A", rows[0].DeviceName)
	assert.Equal(t, 25.0, rows[0].Temperature)
	assert.Equal(t, eleven, rows[0].Time)

	assert.Equal(t, "B", rows[1].DeviceName)
	assert.Equal(t, 18.0, rows[1].Temperature)
	assert.Equal(t, halfTen, rows[1].Time)
}

func TestMaxTemperaturePerDevice_TieKeepsFirstOccurrence(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	second := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)

	repo.On("FindByTimeRange", mock.Anything, start, end).Return([]models.Reading{
		reading("A", first, floatPtr(25)),
		reading("A", second, floatPtr(25)),
	}, nil)

	rows, err := svc.MaxTemperaturePerDevice(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, first, rows[0].Time)
}

func TestMaxTemperaturePerDevice_EmptyRangeIsNotFound(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	repo.On("FindByTimeRange", mock.Anything, start, end).Return([]models.Reading{}, nil)

	_, err := svc.MaxTemperaturePerDevice(context.Background(), start, end)
	assert.ErrorIs(t, err, apperrors.ErrReadingNotFound)
}

func TestGetWithinHour_QueriesContainingClockHour(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	instant := time.Date(2024, 1, 1, 10, 45, 0, 0, time.UTC)
	hourStart := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	hourEnd := time.Date(2024, 1, 1, 10, 59, 59, 0, time.UTC)

	early := reading("A", time.Date(2024, 1, 1, 10, 5, 0, 0, time.UTC), floatPtr(21))
	late := reading("A", time.Date(2024, 1, 1, 10, 55, 0, 0, time.UTC), floatPtr(22))
	late.Precipitation = floatPtr(0.4)

	repo.On("FindByDeviceAndTimeRange", mock.Anything, "A", hourStart, hourEnd).
		Return([]models.Reading{early, late}, nil)

	rows, err := svc.GetWithinHour(context.Background(), "A", instant)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "A", rows[0].DeviceName)
	assert.Equal(t, floatPtr(21), rows[0].Temperature)
	assert.Equal(t, floatPtr(0.4), rows[1].Precipitation)
}

func TestGetWithinHour_EmptyWindowIsNotFound(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	repo.On("FindByDeviceAndTimeRange", mock.Anything, "A", mock.Anything, mock.Anything).
		Return([]models.Reading{}, nil)

	_, err := svc.GetWithinHour(context.Background(), "A", time.Now().UTC())
	assert.ErrorIs(t, err, apperrors.ErrReadingNotFound)
}

func TestMaxPrecipitation_UsesTrailingFiveMonthWindow(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop()).(*readingService)

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	top := reading("A", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), nil)
	top.Precipitation = floatPtr(14.2)

	repo.On("GetTopPrecipitationSince", mock.Anything, "A", now.AddDate(0, -5, 0)).
		Return(&top, nil)

	result, err := svc.MaxPrecipitation(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, floatPtr(14.2), result.Precipitation)
}

func TestUpdatePrecipitation_NotFoundOnZeroMatch(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	id := primitive.NewObjectID()
	repo.On("UpdatePrecipitation", mock.Anything, id, 3.5).Return(int64(0), nil)

	_, err := svc.UpdatePrecipitation(context.Background(), id, 3.5)
	assert.ErrorIs(t, err, apperrors.ErrReadingNotFound)
}

func TestUpdatePrecipitation_ReturnsUpdatedReading(t *testing.T) {
	repo := new(MockReadingRepository)
	svc := NewReadingService(repo, zerolog.Nop())

	id := primitive.NewObjectID()
	updated := &models.Reading{ID: id, DeviceName: "A", Precipitation: floatPtr(3.5)}

	repo.On("UpdatePrecipitation", mock.Anything, id, 3.5).Return(int64(1), nil)
	repo.On("GetByID", mock.Anything, id).Return(updated, nil)

	result, err := svc.UpdatePrecipitation(context.Background(), id, 3.5)
	require.NoError(t, err)
	assert.Equal(t, updated, result)
}
