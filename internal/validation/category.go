package validation

import (
	"context"

	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/pkg/apperror"
)

const minDescriptionLen = 10

// ValidateCategory checks a candidate category against its own fields and the
// existing data graph. The uniqueness check runs last: it is the expensive one
// and the persistence layer's unique index remains the race-safe guard.
func ValidateCategory(ctx context.Context, candidate *entity.Category, resolver CategoryResolver) (Result, error) {
	var res Result

	if candidate.Name == "" {
		res.add(apperror.KindBlankField, "name", "name can't be blank")
	}
	if candidate.Description == "" {
		res.add(apperror.KindBlankField, "description", "description can't be blank")
	} else if len(candidate.Description) < minDescriptionLen {
		res.add(apperror.KindTooShort, "description", "description is too short (minimum is 10 characters)")
	}

	if candidate.Name != "" {
		existing, err := resolver.CategoryByName(ctx, candidate.Name)
		if err != nil {
			return res, err
		}
		if existing != nil && existing.ID != candidate.ID {
			res.add(apperror.KindDuplicateName, "name", "name has already been taken")
		}
	}

	return res, nil
}
