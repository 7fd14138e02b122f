package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/pkg/apperrors"
)

// IReadingRepository defines the storage contract for reading documents.
// Range queries yield an empty slice on no match; single-document lookups
// return apperrors.ErrReadingNotFound.
type IReadingRepository interface {
	InsertMany(ctx context.Context, readings []*models.Reading) (int, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reading, error)
	GetByDeviceAndTime(ctx context.Context, deviceName string, t time.Time) (*models.Reading, error)
	FindByTimeRange(ctx context.Context, start, end time.Time) ([]models.Reading, error)
	FindByDeviceAndTimeRange(ctx context.Context, deviceName string, start, end time.Time) ([]models.Reading, error)
	GetTopPrecipitationSince(ctx context.Context, deviceName string, since time.Time) (*models.Reading, error)
	UpdatePrecipitation(ctx context.Context, id primitive.ObjectID, precipitation float64) (int64, error)
}

// ReadingRepository implements IReadingRepository over the readings collection
type ReadingRepository struct {
	coll *mongo.Collection
}

// NewReadingRepository creates a new ReadingRepository
func NewReadingRepository(coll *mongo.Collection) *ReadingRepository {
	return &ReadingRepository{coll: coll}
}

// InsertMany performs an unordered bulk insert and returns the inserted
// count. Generated ids are written back onto the batch.
func (r *ReadingRepository) InsertMany(ctx context.Context, readings []*models.Reading) (int, error) {
	docs := make([]interface{}, len(readings))
	for i, reading := range readings {
		docs[i] = reading
	}

	res, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return 0, err
	}

	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(readings) {
			readings[i].ID = oid
		}
	}
	return len(res.InsertedIDs), nil
}

// GetByID retrieves a reading by id
func (r *ReadingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Reading, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

// GetByDeviceAndTime retrieves the reading matching the device and instant
func (r *ReadingRepository) GetByDeviceAndTime(ctx context.Context, deviceName string, t time.Time) (*models.Reading, error) {
	return r.findOne(ctx, bson.M{"deviceName": deviceName, "time": t}, nil)
}

// FindByTimeRange returns all readings with time in [start, end], ordered
// by time ascending
func (r *ReadingRepository) FindByTimeRange(ctx context.Context, start, end time.Time) ([]models.Reading, error) {
	filter := bson.M{"time": bson.M{"$gte": start, "$lte": end}}
	return r.find(ctx, filter)
}

// FindByDeviceAndTimeRange returns all readings for a device with time in
// [start, end], ordered by time ascending
func (r *ReadingRepository) FindByDeviceAndTimeRange(ctx context.Context, deviceName string, start, end time.Time) ([]models.Reading, error) {
	filter := bson.M{
		"deviceName": deviceName,
		"time":       bson.M{"$gte": start, "$lte": end},
	}
	return r.find(ctx, filter)
}

// GetTopPrecipitationSince returns the single reading with the highest
// precipitation for a device since the given instant
func (r *ReadingRepository) GetTopPrecipitationSince(ctx context.Context, deviceName string, since time.Time) (*models.Reading, error) {
	filter := bson.M{
		"deviceName": deviceName,
		"time":       bson.M{"$gte": since},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "precipitation", Value: -1}})
	return r.findOne(ctx, filter, opts)
}

// UpdatePrecipitation overwrites only the precipitation field and returns
// the matched count
func (r *ReadingRepository) UpdatePrecipitation(ctx context.Context, id primitive.ObjectID, precipitation float64) (int64, error) {
	update := bson.M{"$set": bson.M{"precipitation": precipitation}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *ReadingRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*models.Reading, error) {
	var reading models.Reading
	var err error
	if opts != nil {
		err = r.coll.FindOne(ctx, filter, opts).Decode(&reading)
	} else {
		err = r.coll.FindOne(ctx, filter).Decode(&reading)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrReadingNotFound
		}
		return nil, err
	}
	return &reading, nil
}

func (r *ReadingRepository) find(ctx context.Context, filter bson.M) ([]models.Reading, error) {
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	readings := make([]models.Reading, 0)
	if err := cursor.All(ctx, &readings); err != nil {
		return nil, err
	}
	return readings, nil
}
