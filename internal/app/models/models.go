// Package models defines the documents stored by the application.
package models

// Role gates which operations a session's owner may invoke
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
	RoleStation Role = "station"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleAdmin, RoleStation:
		return true
	}
	return false
}

// In reports whether the role is contained in the allowed set
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
