package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fitlife/gymsched/internal/entity"
)

// UserRepository is the identity store. Lookups return (nil, nil) on a miss so
// validators can treat "not found" as a validation outcome rather than a
// fault.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, user *entity.User) error

	UserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UserByEmail(ctx context.Context, email string) (*entity.User, error)
	UserWithClasses(ctx context.Context, id uuid.UUID) (*entity.User, error)
	UserWithClassesByEmail(ctx context.Context, email string) (*entity.User, error)

	RoleByID(ctx context.Context, id uint) (*entity.Role, error)
	RoleByName(ctx context.Context, name string) (*entity.Role, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user row. Owned lessons cascade and taught classes have
// their teacher reference cleared by the FK constraints set up in migration.
func (r *userRepository) Delete(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Delete(user).Error
}

func (r *userRepository) UserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Preload("Role").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) UserByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) UserWithClasses(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.withClassGraph(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) UserWithClassesByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.withClassGraph(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) withClassGraph(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Role").
		Preload("TaughtClasses.Category").
		Preload("Lessons.GymClass.Category")
}

func (r *userRepository) RoleByID(ctx context.Context, id uint) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).First(&role, "id = ?", id).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &role, nil
}

func (r *userRepository) RoleByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &role, nil
}

func ignoreNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
