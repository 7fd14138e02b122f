package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ozank/stationhub/internal/app/models"
	"github.com/ozank/stationhub/internal/pkg/apperrors"
)

// IUserRepository defines the storage contract for user documents.
// Lookups that miss return apperrors.ErrUserNotFound; update and delete
// operations report affected counts and leave the 200-vs-404 decision to
// the caller.
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByAuthKey(ctx context.Context, key string) (*models.User, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	ReassignRoleByLastLogin(ctx context.Context, start, end time.Time, role models.Role) (int64, error)
	DeleteInactive(ctx context.Context, cutoff time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// UserRepository implements IUserRepository over the users collection
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(coll *mongo.Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

// Create inserts a new user document and assigns the generated id
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByAuthKey retrieves a user holding the given session key
func (r *UserRepository) GetByAuthKey(ctx context.Context, key string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"authKey": key})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.coll.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateFields applies a partial $set update to the user with the given id
// and returns the matched count
func (r *UserRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, err
	}
	return res.MatchedCount, nil
}

// Delete removes the user with the given id and returns the deleted count
func (r *UserRepository) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ReassignRoleByLastLogin sets the role on every user whose lastLogin falls
// within the inclusive window and returns the matched count
func (r *UserRepository) ReassignRoleByLastLogin(ctx context.Context, start, end time.Time, role models.Role) (int64, error) {
	filter := bson.M{
		"lastLogin": bson.M{"$gte": start, "$lte": end},
	}
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// DeleteInactive removes every user whose lastLogin is at or before the
// cutoff. Users who never logged in hold a null lastLogin and are kept.
func (r *UserRepository) DeleteInactive(ctx context.Context, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"lastLogin": bson.M{"$ne": nil, "$lte": cutoff},
	}
	res, err := r.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Count returns the number of user documents
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
