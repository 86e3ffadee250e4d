package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/fitlife/gymsched/internal/entity"
	commonDto "github.com/fitlife/gymsched/pkg/dto"
)

// Domain-validated fields deliberately carry no "required" binding tags: the
// entity validator owns those rules and reports them with their proper kinds.
type CreateGymClassRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time"`
	Duration    int        `json:"duration"`
	TeacherID   uuid.UUID  `json:"teacher_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

type UpdateGymClassRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"start_time"`
	Duration    *int       `json:"duration"`
	TeacherID   *uuid.UUID `json:"teacher_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
}

type PaginatedGymClasses struct {
	Data []*entity.GymClass       `json:"data"`
	Meta commonDto.PaginationMeta `json:"meta"`
}
