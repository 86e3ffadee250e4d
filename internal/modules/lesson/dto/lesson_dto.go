package dto

import "github.com/google/uuid"

type EnrollmentRequest struct {
	UserID     uuid.UUID `json:"user_id" binding:"required"`
	GymClassID uuid.UUID `json:"gym_class_id" binding:"required"`
}
