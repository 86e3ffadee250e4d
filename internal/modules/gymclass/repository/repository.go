package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/entity"
)

// GymClassRepository lookups return (nil, nil) on a miss; see the user
// repository for the convention.
type GymClassRepository interface {
	Create(ctx context.Context, class *entity.GymClass) error
	Update(ctx context.Context, class *entity.GymClass) error
	Delete(ctx context.Context, class *entity.GymClass) error

	GymClassByID(ctx context.Context, id uuid.UUID) (*entity.GymClass, error)
	GymClassesByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.GymClass, error)
	FindPage(ctx context.Context, search string, limit, offset int) ([]*entity.GymClass, int64, error)
}

type gymClassRepository struct {
	db *gorm.DB
}

func NewGymClassRepository(db *gorm.DB) GymClassRepository {
	return &gymClassRepository{db: db}
}

func (r *gymClassRepository) Create(ctx context.Context, class *entity.GymClass) error {
	return r.db.WithContext(ctx).Create(class).Error
}

func (r *gymClassRepository) Update(ctx context.Context, class *entity.GymClass) error {
	return r.db.WithContext(ctx).Save(class).Error
}

// Delete removes the class; its lessons cascade via the FK constraint.
func (r *gymClassRepository) Delete(ctx context.Context, class *entity.GymClass) error {
	return r.db.WithContext(ctx).Delete(class).Error
}

func (r *gymClassRepository) GymClassByID(ctx context.Context, id uuid.UUID) (*entity.GymClass, error) {
	var class entity.GymClass
	err := r.db.WithContext(ctx).
		Preload("Teacher.Role").
		Preload("Category").
		First(&class, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &class, nil
}

// GymClassesByIDs returns the classes in the order the ids were given, which
// preserves search-engine ranking.
func (r *gymClassRepository) GymClassesByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.GymClass, error) {
	var classes []*entity.GymClass
	err := r.db.WithContext(ctx).
		Preload("Teacher.Role").
		Preload("Category").
		Where("id IN ?", ids).
		Find(&classes).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.GymClass, len(classes))
	for _, class := range classes {
		byID[class.ID] = class
	}

	ordered := make([]*entity.GymClass, 0, len(classes))
	for _, id := range ids {
		if class, ok := byID[id]; ok {
			ordered = append(ordered, class)
		}
	}
	return ordered, nil
}

func (r *gymClassRepository) FindPage(ctx context.Context, search string, limit, offset int) ([]*entity.GymClass, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.GymClass{})

	if search != "" {
		query = query.Where("name ILIKE ? OR description ILIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var classes []*entity.GymClass
	err := query.
		Preload("Teacher.Role").
		Preload("Category").
		Order("start_time").
		Offset(offset).
		Limit(limit).
		Find(&classes).Error
	if err != nil {
		return nil, 0, err
	}

	return classes, total, nil
}
