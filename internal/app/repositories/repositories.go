// Package repositories contains the data store gateway. Each repository is
// a narrow contract over one document collection; services never touch the
// driver directly.
package repositories

import (
	"github.com/ozank/stationhub/internal/db"
)

// Repositories aggregates all repositories for dependency injection
type Repositories struct {
	User    *UserRepository
	Reading *ReadingRepository
}

// NewRepositories creates all repositories from the shared database handle
func NewRepositories(database *db.MongoDB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(database.Users()),
		Reading: NewReadingRepository(database.Readings()),
	}
}
