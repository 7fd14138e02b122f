package dto

import "time"

// LoginRequest carries user login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued session key. LastLogin is present for
// every role except admin, whose logins are not stamped.
type LoginResponse struct {
	AuthKey   string     `json:"authKey"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// LogoutRequest carries the session key to invalidate
type LogoutRequest struct {
	AuthKey string `json:"authKey" binding:"required"`
}
