package gymclass

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/internal/modules/gymclass/dto"
	"github.com/fitlife/gymsched/internal/modules/gymclass/repository"
	search "github.com/fitlife/gymsched/internal/modules/search/service"
	userRepo "github.com/fitlife/gymsched/internal/modules/user/repository"
	"github.com/fitlife/gymsched/internal/validation"
	"github.com/fitlife/gymsched/pkg/apperror"
	commonDto "github.com/fitlife/gymsched/pkg/dto"
)

// GymClassService gates mutations behind the admin-or-teacher policy; index
// and show are public reads.
type GymClassService interface {
	List(ctx context.Context, query commonDto.PageQuery) (*dto.PaginatedGymClasses, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.GymClass, error)
	Create(ctx context.Context, caller authz.Caller, req dto.CreateGymClassRequest) (*entity.GymClass, error)
	Update(ctx context.Context, caller authz.Caller, id uuid.UUID, req dto.UpdateGymClassRequest) (*entity.GymClass, error)
	Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) (string, error)
}

type gymClassService struct {
	repo    repository.GymClassRepository
	users   userRepo.UserRepository
	indexer search.GymClassIndexer // nil when search is not configured
}

func NewGymClassService(repo repository.GymClassRepository, users userRepo.UserRepository, indexer search.GymClassIndexer) GymClassService {
	return &gymClassService{repo: repo, users: users, indexer: indexer}
}

func (s *gymClassService) List(ctx context.Context, query commonDto.PageQuery) (*dto.PaginatedGymClasses, error) {
	query.Normalize()

	var (
		classes []*entity.GymClass
		total   int64
		err     error
	)

	if query.Search != "" && s.indexer != nil {
		var ids []uuid.UUID
		ids, total, err = s.indexer.SearchGymClasses(ctx, query.Search, query.ItemsPerPage, query.Offset())
		if err != nil {
			return nil, err
		}
		classes, err = s.repo.GymClassesByIDs(ctx, ids)
	} else {
		classes, total, err = s.repo.FindPage(ctx, query.Search, query.ItemsPerPage, query.Offset())
	}
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / query.ItemsPerPage
	if int(total)%query.ItemsPerPage != 0 {
		totalPages++
	}

	return &dto.PaginatedGymClasses{
		Data: classes,
		Meta: commonDto.PaginationMeta{
			CurrentPage: query.Page,
			TotalPages:  totalPages,
			TotalItems:  total,
			Limit:       query.ItemsPerPage,
		},
	}, nil
}

func (s *gymClassService) Get(ctx context.Context, id uuid.UUID) (*entity.GymClass, error) {
	class, err := s.repo.GymClassByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.NotFound("gym class not found")
	}
	return class, nil
}

func (s *gymClassService) Create(ctx context.Context, caller authz.Caller, req dto.CreateGymClassRequest) (*entity.GymClass, error) {
	if err := authz.ErrForVerdict(authz.RequireAdminOrTeacher(caller)); err != nil {
		return nil, err
	}

	candidate := &entity.GymClass{
		Name:        req.Name,
		Description: req.Description,
		StartTime:   req.StartTime,
		Duration:    req.Duration,
		CategoryID:  req.CategoryID,
	}
	if req.TeacherID != uuid.Nil {
		teacherID := req.TeacherID
		candidate.TeacherID = &teacherID
	}

	res, err := validation.ValidateGymClass(ctx, candidate, s.users)
	if err != nil {
		return nil, err
	}
	if verr := res.Err(); verr != nil {
		return nil, verr
	}

	if err := s.repo.Create(ctx, candidate); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.ReferenceNotFound("category not found")
		}
		return nil, err
	}

	return s.reloadAndIndex(ctx, candidate.ID)
}

func (s *gymClassService) Update(ctx context.Context, caller authz.Caller, id uuid.UUID, req dto.UpdateGymClassRequest) (*entity.GymClass, error) {
	if err := authz.ErrForVerdict(authz.RequireAdminOrTeacher(caller)); err != nil {
		return nil, err
	}

	class, err := s.repo.GymClassByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.ReferenceNotFound("gym class not found")
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.Description != nil {
		class.Description = *req.Description
	}
	if req.StartTime != nil {
		class.StartTime = *req.StartTime
	}
	if req.Duration != nil {
		class.Duration = *req.Duration
	}
	if req.TeacherID != nil {
		teacherID := *req.TeacherID
		class.TeacherID = &teacherID
		class.Teacher = nil
	}
	if req.CategoryID != nil {
		categoryID := *req.CategoryID
		class.CategoryID = &categoryID
		class.Category = nil
	}

	res, err := validation.ValidateGymClass(ctx, class, s.users)
	if err != nil {
		return nil, err
	}
	if verr := res.Err(); verr != nil {
		return nil, verr
	}

	if err := s.repo.Update(ctx, class); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperror.ReferenceNotFound("category not found")
		}
		return nil, err
	}

	return s.reloadAndIndex(ctx, class.ID)
}

func (s *gymClassService) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) (string, error) {
	if err := authz.ErrForVerdict(authz.RequireAdminOrTeacher(caller)); err != nil {
		return "", err
	}

	class, err := s.repo.GymClassByID(ctx, id)
	if err != nil {
		return "", err
	}
	if class == nil {
		return "", apperror.ReferenceNotFound("gym class not found")
	}

	if err := s.repo.Delete(ctx, class); err != nil {
		return "", err
	}

	if s.indexer != nil {
		if err := s.indexer.DeleteGymClass(ctx, class.ID); err != nil {
			log.Printf("failed to remove gym class %s from search index: %v", class.ID, err)
		}
	}

	return fmt.Sprintf("Class %s deleted successfully", class.Name), nil
}

// reloadAndIndex re-reads the class with its associations and pushes it to the
// search index. Index failures are logged, never surfaced: the write already
// succeeded.
func (s *gymClassService) reloadAndIndex(ctx context.Context, id uuid.UUID) (*entity.GymClass, error) {
	class, err := s.repo.GymClassByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class == nil {
		return nil, apperror.ReferenceNotFound("gym class not found")
	}

	if s.indexer != nil {
		if err := s.indexer.IndexGymClass(ctx, class); err != nil {
			log.Printf("failed to index gym class %s: %v", class.ID, err)
		}
	}

	return class, nil
}
