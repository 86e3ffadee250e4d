package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	gymClassRepo "github.com/fitlife/gymsched/internal/modules/gymclass/repository"
	"github.com/fitlife/gymsched/internal/modules/lesson/repository"
	userRepo "github.com/fitlife/gymsched/internal/modules/user/repository"
	"github.com/fitlife/gymsched/internal/validation"
	"github.com/fitlife/gymsched/pkg/apperror"
)

// LessonService coordinates enrollment: authorization first, then reference
// resolution, then the lesson validator, then persistence. A user may always
// enroll or unenroll themself; acting on another user requires admin or
// teacher.
type LessonService interface {
	Enroll(ctx context.Context, caller authz.Caller, userID, gymClassID uuid.UUID) (string, error)
	Unenroll(ctx context.Context, caller authz.Caller, userID, gymClassID uuid.UUID) (string, error)
}

type lessonService struct {
	lessons repository.LessonRepository
	users   userRepo.UserRepository
	classes gymClassRepo.GymClassRepository
}

func NewLessonService(lessons repository.LessonRepository, users userRepo.UserRepository, classes gymClassRepo.GymClassRepository) LessonService {
	return &lessonService{lessons: lessons, users: users, classes: classes}
}

func (s *lessonService) Enroll(ctx context.Context, caller authz.Caller, userID, gymClassID uuid.UUID) (string, error) {
	if err := authz.ErrForVerdict(authz.RequireSelfOrPrivileged(caller, userID)); err != nil {
		return "", err
	}

	user, err := s.users.UserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", apperror.ReferenceNotFound("user not found")
	}

	class, err := s.classes.GymClassByID(ctx, gymClassID)
	if err != nil {
		return "", err
	}
	if class == nil {
		return "", apperror.ReferenceNotFound("gym class not found")
	}

	candidate := &entity.Lesson{UserID: userID, GymClassID: gymClassID}

	res, err := validation.ValidateLesson(ctx, candidate, enrollmentResolver{users: s.users, lessons: s.lessons})
	if err != nil {
		return "", err
	}
	if verr := res.Err(); verr != nil {
		return "", verr
	}

	if err := s.lessons.Create(ctx, candidate); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", apperror.Validation(apperror.KindDuplicateEnrollment, "user_id", "user is already enrolled in this class")
		}
		return "", err
	}

	return fmt.Sprintf("Student %s enrolled in class %s", user.Name, class.Name), nil
}

func (s *lessonService) Unenroll(ctx context.Context, caller authz.Caller, userID, gymClassID uuid.UUID) (string, error) {
	if err := authz.ErrForVerdict(authz.RequireSelfOrPrivileged(caller, userID)); err != nil {
		return "", err
	}

	lesson, err := s.lessons.LessonByPair(ctx, userID, gymClassID)
	if err != nil {
		return "", err
	}
	if lesson == nil {
		return "", apperror.ReferenceNotFound("enrollment not found")
	}

	if err := s.lessons.Delete(ctx, lesson); err != nil {
		return "", err
	}

	userName := userID.String()
	if lesson.User != nil {
		userName = lesson.User.Name
	}
	className := gymClassID.String()
	if lesson.GymClass != nil {
		className = lesson.GymClass.Name
	}

	return fmt.Sprintf("Student %s unenrolled from class %s", userName, className), nil
}

// enrollmentResolver adapts the user and lesson repositories to the lesson
// validator's lookup capability.
type enrollmentResolver struct {
	users   userRepo.UserRepository
	lessons repository.LessonRepository
}

func (r enrollmentResolver) UserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.users.UserByID(ctx, id)
}

func (r enrollmentResolver) EnrollmentExists(ctx context.Context, userID, gymClassID uuid.UUID) (bool, error) {
	return r.lessons.EnrollmentExists(ctx, userID, gymClassID)
}
