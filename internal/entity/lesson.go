package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson is an enrollment record linking one student to one gym class. The
// composite unique index is the race-safe backstop for the validator's
// duplicate-enrollment check.
type Lesson struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lessons_user_gym_class" json:"user_id"`
	GymClassID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_lessons_user_gym_class" json:"gym_class_id"`
	User       *User     `json:"user,omitempty"`
	GymClass   *GymClass `json:"gym_class,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
