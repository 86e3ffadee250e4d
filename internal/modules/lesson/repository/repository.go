package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/entity"
)

// LessonRepository stores enrollment records. The (user, class) pair is the
// natural key; the unique index on it is the race-safe duplicate guard.
type LessonRepository interface {
	Create(ctx context.Context, lesson *entity.Lesson) error
	Delete(ctx context.Context, lesson *entity.Lesson) error

	LessonByPair(ctx context.Context, userID, gymClassID uuid.UUID) (*entity.Lesson, error)
	EnrollmentExists(ctx context.Context, userID, gymClassID uuid.UUID) (bool, error)
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *entity.Lesson) error {
	return r.db.WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepository) Delete(ctx context.Context, lesson *entity.Lesson) error {
	return r.db.WithContext(ctx).Delete(lesson).Error
}

func (r *lessonRepository) LessonByPair(ctx context.Context, userID, gymClassID uuid.UUID) (*entity.Lesson, error) {
	var lesson entity.Lesson
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("GymClass").
		Where("user_id = ? AND gym_class_id = ?", userID, gymClassID).
		First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) EnrollmentExists(ctx context.Context, userID, gymClassID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Lesson{}).
		Where("user_id = ? AND gym_class_id = ?", userID, gymClassID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
