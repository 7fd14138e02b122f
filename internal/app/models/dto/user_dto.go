package dto

// CreateUserRequest carries the fields for an admin-invoked user creation.
// PasswordHashed signals that Password already holds a bcrypt hash and must
// not be re-hashed; there is no prefix sniffing.
type CreateUserRequest struct {
	StudentNumber  *int   `json:"studentNumber" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=student admin station"`
	PasswordHashed bool   `json:"passwordHashed"`
}

// UpdateUserRequest carries a full-field replace for an existing user
type UpdateUserRequest struct {
	StudentNumber  *int   `json:"studentNumber" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required"`
	Role           string `json:"role" binding:"required,oneof=student admin station"`
	PasswordHashed bool   `json:"passwordHashed"`
}

// ReassignRoleRequest reassigns a role to every user whose last login falls
// within the inclusive window
type ReassignRoleRequest struct {
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Role      string `json:"role" binding:"required,oneof=student admin station"`
}

// ReassignRoleResponse reports how many users were updated
type ReassignRoleResponse struct {
	AffectedCount int64 `json:"affectedCount"`
}

// DeleteInactiveRequest optionally overrides the inactivity window in days
type DeleteInactiveRequest struct {
	Days *int `json:"days" binding:"omitempty,gt=0"`
}

// DeleteInactiveResponse reports how many users were removed
type DeleteInactiveResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}
