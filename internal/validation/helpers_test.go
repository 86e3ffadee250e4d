package validation

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fitlife/gymsched/internal/entity"
)

// =============================================================================
// Mock resolver
// =============================================================================

type mockResolver struct {
	userByIDFunc         func(ctx context.Context, id uuid.UUID) (*entity.User, error)
	userByEmailFunc      func(ctx context.Context, email string) (*entity.User, error)
	roleByIDFunc         func(ctx context.Context, id uint) (*entity.Role, error)
	categoryByNameFunc   func(ctx context.Context, name string) (*entity.Category, error)
	enrollmentExistsFunc func(ctx context.Context, userID, gymClassID uuid.UUID) (bool, error)
}

func (m *mockResolver) UserByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if m.userByIDFunc != nil {
		return m.userByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockResolver) UserByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.userByEmailFunc != nil {
		return m.userByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockResolver) RoleByID(ctx context.Context, id uint) (*entity.Role, error) {
	if m.roleByIDFunc != nil {
		return m.roleByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockResolver) CategoryByName(ctx context.Context, name string) (*entity.Category, error) {
	if m.categoryByNameFunc != nil {
		return m.categoryByNameFunc(ctx, name)
	}
	return nil, errors.New("not implemented")
}

func (m *mockResolver) EnrollmentExists(ctx context.Context, userID, gymClassID uuid.UUID) (bool, error) {
	if m.enrollmentExistsFunc != nil {
		return m.enrollmentExistsFunc(ctx, userID, gymClassID)
	}
	return false, errors.New("not implemented")
}

// =============================================================================
// Fixtures
// =============================================================================

func userWithRole(roleID uint, roleName string) *entity.User {
	return &entity.User{
		ID:     uuid.New(),
		Name:   "Test User",
		RoleID: &roleID,
		Role:   entity.Role{ID: roleID, Name: roleName},
	}
}

func noCategory(ctx context.Context, name string) (*entity.Category, error) {
	return nil, nil
}

func noUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}
