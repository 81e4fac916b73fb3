package dto

import "time"

// LoginRequest body for POST /api/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse public view of a user (no password hash).
type UserResponse struct {
	ID       string `json:"user_id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginResponse body for a successful login. The token key matches the
// cookie name the frontend stores it under.
type LoginResponse struct {
	Token string       `json:"jwt_token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest body for POST /api/users (Admin only).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// UserRow listing item for GET /api/users.
type UserRow struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
