package validation

import (
	"context"
	"time"

	"github.com/fitlife/gymsched/internal/authz"
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/pkg/apperror"
)

const minClassDuration = 5 // minutes

// ValidateGymClass checks a candidate gym class. The teacher reference is
// re-resolved on every call; an id that resolves to no user at all is treated
// the same as one resolving to a non-teacher.
func ValidateGymClass(ctx context.Context, candidate *entity.GymClass, resolver UserResolver) (Result, error) {
	var res Result

	if candidate.Name == "" {
		res.add(apperror.KindBlankField, "name", "name can't be blank")
	}
	if candidate.Description == "" {
		res.add(apperror.KindBlankField, "description", "description can't be blank")
	} else if len(candidate.Description) < minDescriptionLen {
		res.add(apperror.KindTooShort, "description", "description is too short (minimum is 10 characters)")
	}
	if candidate.StartTime.IsZero() {
		res.add(apperror.KindBlankField, "start_time", "start_time can't be blank")
	}
	if candidate.Duration == 0 {
		res.add(apperror.KindBlankField, "duration", "duration can't be blank")
	} else if candidate.Duration < minClassDuration {
		res.add(apperror.KindInvalidDuration, "duration", "duration must be an integer greater than or equal to 5")
	}

	// Only the calendar date is compared, never the time of day.
	if !candidate.StartTime.IsZero() && startOfDay(candidate.StartTime.Local()).Before(startOfDay(time.Now())) {
		res.add(apperror.KindPastStartTime, "start_time", "class cannot start in the past")
	}

	teacherOK := false
	if candidate.TeacherID != nil {
		teacher, err := resolver.UserByID(ctx, *candidate.TeacherID)
		if err != nil {
			return res, err
		}
		if teacher != nil {
			if role, roleErr := authz.RoleOf(teacher); roleErr == nil && role == authz.RoleTeacher {
				teacherOK = true
			}
		}
	}
	if !teacherOK {
		res.add(apperror.KindTeacherRoleMismatch, "teacher_id", "user is not a teacher")
	}

	return res, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
