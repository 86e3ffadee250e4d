package dto

import (
	"time"

	"github.com/google/uuid"
)

type SignUpRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Birthdate string `json:"birthdate" binding:"required"` // YYYY-MM-DD
	RoleID    uint   `json:"role_id" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Birthdate *string `json:"birthdate"` // YYYY-MM-DD
	RoleID    *uint   `json:"role_id"`
}

type ClassSummary struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	StartTime    time.Time `json:"start_time"`
	Duration     int       `json:"duration"`
	CategoryName string    `json:"category_name,omitempty"`
}

type UserResponse struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Birthdate      string         `json:"birthdate"`
	Role           string         `json:"role"`
	TaughtClasses  []ClassSummary `json:"taught_classes"`
	StudentClasses []ClassSummary `json:"student_classes"`
}
