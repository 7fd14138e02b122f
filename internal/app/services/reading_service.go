package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/app/models/dto"
	"github.com/ozank/stationhub/internal/app/repositories"
	"github.com/ozank/stationhub/internal/pkg/apperrors"
)

// precipitationWindowMonths is the trailing window searched for the
// maximum precipitation of a device.
const precipitationWindowMonths = 5

// readingService implements ReadingService
type readingService struct {
	readingRepo repositories.IReadingRepository
	logger      zerolog.Logger
	now         func() time.Time
}

// NewReadingService creates a new ReadingService
func NewReadingService(readingRepo repositories.IReadingRepository, logger zerolog.Logger) ReadingService {
	return &readingService{
		readingRepo: readingRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Ingest bulk-inserts a batch of readings. The batch must be non-empty;
// individual measurements are stored as supplied, including absent ones,
// and no duplicate detection is performed.
func (s *readingService) Ingest(ctx context.Context, readings []*models.Reading) (int, error) {
	if len(readings) == 0 {
		return 0, apperrors.NewValidationError("reading batch cannot be empty")
	}

	count, err := s.readingRepo.InsertMany(ctx, readings)
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("count", count).Msg("Readings ingested")
	return count, nil
}

// GetByDeviceAndTime returns the reading matching the device and exact
// instant
func (s *readingService) GetByDeviceAndTime(ctx context.Context, deviceName string, t time.Time) (*models.Reading, error) {
	return s.readingRepo.GetByDeviceAndTime(ctx, deviceName, t.UTC())
}

// GetWithinHour returns the device's readings within the clock hour
// containing t, i.e. [HH:00:00, HH:59:59], projected to the reduced field
// set. An empty window is reported as not-found, the contract for this
// endpoint.
func (s *readingService) GetWithinHour(ctx context.Context, deviceName string, t time.Time) ([]dto.HourlyReading, error) {
	hourStart := t.UTC().Truncate(time.Hour)
	hourEnd := hourStart.Add(59*time.Minute + 59*time.Second)

	readings, err := s.readingRepo.FindByDeviceAndTimeRange(ctx, deviceName, hourStart, hourEnd)
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, apperrors.ErrReadingNotFound
	}

	rows := make([]dto.HourlyReading, 0, len(readings))
	for _, r := range readings {
		rows = append(rows, dto.HourlyReading{
			DeviceName:          r.DeviceName,
			Time:                r.Time,
			Temperature:         r.Temperature,
			AtmosphericPressure: r.AtmosphericPressure,
			SolarRadiation:      r.SolarRadiation,
			Precipitation:       r.Precipitation,
		})
	}
	return rows, nil
}

// GetByDateRange returns all readings with time in the inclusive range.
// An empty range is reported as not-found, matching the endpoint contract.
func (s *readingService) GetByDateRange(ctx context.Context, start, end time.Time) ([]models.Reading, error) {
	readings, err := s.readingRepo.FindByTimeRange(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, apperrors.ErrReadingNotFound
	}
	return readings, nil
}

// MaxTemperaturePerDevice reduces the readings in the range to one row per
// device carrying the maximum temperature. Ties keep the earliest
// occurrence; readings without a temperature are skipped.
func (s *readingService) MaxTemperaturePerDevice(ctx context.Context, start, end time.Time) ([]dto.MaxTemperatureRow, error) {
	readings, err := s.readingRepo.FindByTimeRange(ctx, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}

	best := make(map[string]dto.MaxTemperatureRow)
	order := make([]string, 0)

	for _, r := range readings {
		if r.Temperature == nil {
			continue
		}
		row, seen := best[r.DeviceName]
		if !seen {
			best[r.DeviceName] = dto.MaxTemperatureRow{
				DeviceName:  r.DeviceName,
				Time:        r.Time,
				Temperature: *r.Temperature,
			}
			order = append(order, r.DeviceName)
			continue
		}
		// Strictly greater: an equal later temperature does not replace
		// the recorded row.
		if *r.Temperature > row.Temperature {
			best[r.DeviceName] = dto.MaxTemperatureRow{
				DeviceName:  r.DeviceName,
				Time:        r.Time,
				Temperature: *r.Temperature,
			}
		}
	}

	if len(order) == 0 {
		return nil, apperrors.ErrReadingNotFound
	}

	rows := make([]dto.MaxTemperatureRow, 0, len(order))
	for _, device := range order {
		rows = append(rows, best[device])
	}
	return rows, nil
}

// MaxPrecipitation returns the reading with the highest precipitation for
// the device over the trailing five months
func (s *readingService) MaxPrecipitation(ctx context.Context, deviceName string) (*models.Reading, error) {
	since := s.now().UTC().AddDate(0, -precipitationWindowMonths, 0)
	return s.readingRepo.GetTopPrecipitationSince(ctx, deviceName, since)
}

// UpdatePrecipitation overwrites the precipitation of a single reading and
// returns the updated document
func (s *readingService) UpdatePrecipitation(ctx context.Context, id primitive.ObjectID, precipitation float64) (*models.Reading, error) {
	matched, err := s.readingRepo.UpdatePrecipitation(ctx, id, precipitation)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, apperrors.ErrReadingNotFound
	}

	return s.readingRepo.GetByID(ctx, id)
}
