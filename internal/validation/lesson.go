package validation

import (
	"context"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/pkg/apperror"
)

// ValidateLesson checks a candidate enrollment: the enrollee must resolve to a
// student, and the (user, class) pair must not already exist.
func ValidateLesson(ctx context.Context, candidate *entity.Lesson, resolver EnrollmentResolver) (Result, error) {
	var res Result

	studentOK := false
	user, err := resolver.UserByID(ctx, candidate.UserID)
	if err != nil {
		return res, err
	}
	if user != nil {
		if role, roleErr := authz.RoleOf(user); roleErr == nil && role == authz.RoleStudent {
			studentOK = true
		}
	}
	if !studentOK {
		res.add(apperror.KindStudentRoleMismatch, "user_id", "user is not a student")
	}

	exists, err := resolver.EnrollmentExists(ctx, candidate.UserID, candidate.GymClassID)
	if err != nil {
		return res, err
	}
	if exists {
		res.add(apperror.KindDuplicateEnrollment, "user_id", "user is already enrolled in this class")
	}

	return res, nil
}
