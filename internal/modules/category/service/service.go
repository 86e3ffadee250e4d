package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/internal/modules/category/dto"
	"github.com/fitlife/gymsched/internal/modules/category/repository"
	"github.com/fitlife/gymsched/internal/validation"
	"github.com/fitlife/gymsched/pkg/apperror"
)

// CategoryService gates every mutation behind the admin-or-teacher policy;
// index and show are public reads.
type CategoryService interface {
	List(ctx context.Context, filter string) ([]*entity.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Create(ctx context.Context, caller authz.Caller, req dto.CreateCategoryRequest) (*entity.Category, error)
	Update(ctx context.Context, caller authz.Caller, id uuid.UUID, req dto.UpdateCategoryRequest) (*entity.Category, error)
	Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) (string, error)
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, filter string) ([]*entity.Category, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.repo.CategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NotFound("category not found")
	}
	return category, nil
}

func (s *categoryService) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	category, err := s.repo.CategoryByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NotFound("category not found")
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, caller authz.Caller, req dto.CreateCategoryRequest) (*entity.Category, error) {
	if err := authz.ErrForVerdict(authz.RequireAdminOrTeacher(caller)); err != nil {
		return nil, err
	}

	candidate := &entity.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	res, err := validation.ValidateCategory(ctx, candidate, s.repo)
	if err != nil {
		return nil, err
	}
	if verr := res.Err(); verr != nil {
		return nil, verr
	}

	if err := s.repo.Create(ctx, candidate); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation(apperror.KindDuplicateName, "name", "name has already been taken")
		}
		return nil, err
	}

	return candidate, nil
}

func (s *categoryService) Update(ctx context.Context, caller authz.Caller, id uuid.UUID, req dto.UpdateCategoryRequest) (*entity.Category, error) {
	if err := authz.ErrForVerdict(authz.RequireAdminOrTeacher(caller)); err != nil {
		return nil, err
	}

	category, err := s.repo.CategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.ReferenceNotFound("category not found")
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	res, err := validation.ValidateCategory(ctx, category, s.repo)
	if err != nil {
		return nil, err
	}
	if verr := res.Err(); verr != nil {
		return nil, verr
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Validation(apperror.KindDuplicateName, "name", "name has already been taken")
		}
		return nil, err
	}

	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) (string, error) {
	if err := authz.ErrForVerdict(authz.RequireAdminOrTeacher(caller)); err != nil {
		return "", err
	}

	category, err := s.repo.CategoryByID(ctx, id)
	if err != nil {
		return "", err
	}
	if category == nil {
		return "", apperror.ReferenceNotFound("category not found")
	}

	if err := s.repo.Delete(ctx, category); err != nil {
		return "", err
	}

	return fmt.Sprintf("Category %s deleted successfully", category.Name), nil
}
