package validation

import (
	"context"

	"github.com/google/uuid"

	"github.com/fitlife/gymsched/internal/entity"
)

// Resolvers are the lookup capabilities validators run against. A miss is
// reported as (nil, nil): "not found" is a validation outcome, not a fault.
// Only infrastructure failures come back as errors.

type UserResolver interface {
	UserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type UserEmailResolver interface {
	UserByEmail(ctx context.Context, email string) (*entity.User, error)
}

type RoleResolver interface {
	RoleByID(ctx context.Context, id uint) (*entity.Role, error)
}

type CategoryResolver interface {
	CategoryByName(ctx context.Context, name string) (*entity.Category, error)
}

type EnrollmentResolver interface {
	UserResolver
	EnrollmentExists(ctx context.Context, userID, gymClassID uuid.UUID) (bool, error)
}

type UserGraphResolver interface {
	UserEmailResolver
	RoleResolver
}
