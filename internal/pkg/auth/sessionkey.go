package auth

import (
	"github.com/google/uuid"
)

// NewSessionKey generates a fresh opaque session key. Keys are random
// UUIDv4 strings and carry no decodable structure; a session stays valid
// until logout or until a later login overwrites it.
func NewSessionKey() string {
	return uuid.NewString()
}
