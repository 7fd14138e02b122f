package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines an account document in the 'users' collection.
// Email is unique across all users; AuthKey is unique across active
// sessions and is null whenever the user is logged out.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StudentNumber int                `bson:"studentNumber" json:"studentNumber"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Role          Role               `bson:"role" json:"role"`
	AuthKey       *string            `bson:"authKey" json:"authKey,omitempty"`
	LastLogin     *time.Time         `bson:"lastLogin" json:"lastLogin,omitempty"`
}
