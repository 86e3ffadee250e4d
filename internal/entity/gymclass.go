package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GymClass is a scheduled class instance with a single owning teacher and an
// optional category. TeacherID is required at validation time but nullable in
// the schema: deleting a teacher clears the reference instead of destroying
// the class.
type GymClass struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	StartTime   time.Time  `gorm:"not null" json:"start_time"`
	Duration    int        `gorm:"not null" json:"duration"` // minutes
	TeacherID   *uuid.UUID `gorm:"type:uuid;index" json:"teacher_id"`
	Teacher     *User      `gorm:"foreignKey:TeacherID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"teacher,omitempty"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category    *Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	Lessons     []Lesson   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (g *GymClass) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID, err = uuid.NewV7()
	}
	return
}
