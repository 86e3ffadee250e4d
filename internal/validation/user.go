package validation

import (
	"context"
	"net/mail"
	"time"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/pkg/apperror"
)

// ValidateUser checks a candidate user for sign-up and profile updates. The
// role reference must resolve to one of the three catalog roles.
func ValidateUser(ctx context.Context, candidate *entity.User, resolver UserGraphResolver) (Result, error) {
	var res Result

	if candidate.Name == "" {
		res.add(apperror.KindBlankField, "name", "name can't be blank")
	}
	if candidate.Email == "" {
		res.add(apperror.KindBlankField, "email", "email can't be blank")
	} else if _, err := mail.ParseAddress(candidate.Email); err != nil {
		res.add(apperror.KindInvalidEmailFormat, "email", "email is not a valid address")
	}
	if candidate.Birthdate.IsZero() {
		res.add(apperror.KindBlankField, "birthdate", "birthdate can't be blank")
	} else if startOfDay(candidate.Birthdate.Local()).After(startOfDay(time.Now())) {
		res.add(apperror.KindFutureBirthdate, "birthdate", "birthdate cannot be in the future")
	}

	roleOK := false
	if candidate.RoleID != nil {
		role, err := resolver.RoleByID(ctx, *candidate.RoleID)
		if err != nil {
			return res, err
		}
		if role != nil && authz.IsValidRoleName(role.Name) {
			roleOK = true
		}
	}
	if !roleOK {
		res.add(apperror.KindInvalidRoleReference, "role_id", "role does not resolve to a known role")
	}

	if candidate.Email != "" {
		existing, err := resolver.UserByEmail(ctx, candidate.Email)
		if err != nil {
			return res, err
		}
		if existing != nil && existing.ID != candidate.ID {
			res.add(apperror.KindDuplicateEmail, "email", "email has already been taken")
		}
	}

	return res, nil
}
