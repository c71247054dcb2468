package models

import "time"

const (
	RoleSupervisor = "sup"
	RoleAdmin      = "admin"
	RoleAdminSup   = "admin-sup"
)

// ValidRole reports whether role is one of the dashboard roles
func ValidRole(role string) bool {
	switch role {
	case RoleSupervisor, RoleAdmin, RoleAdminSup:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SignupRequest represents the request body for signup
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=sup admin admin-sup"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	UserID  int64  `json:"userId" validate:"required"`
	NewRole string `json:"newRole" validate:"required,oneof=sup admin admin-sup"`
}
