package authz

import (
	"github.com/fitlife/gymsched/internal/entity"
	"github.com/fitlife/gymsched/pkg/apperror"
)

// Role is the closed catalog of identity roles. Role names are resolved into
// this enum once at the boundary; nothing downstream compares raw strings.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole maps a stored role name onto the catalog.
func ParseRole(name string) (Role, bool) {
	switch Role(name) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(name), true
	default:
		return "", false
	}
}

func IsValidRoleName(name string) bool {
	_, ok := ParseRole(name)
	return ok
}

// RoleOf resolves a user's role. An unresolved or unknown role reference is a
// validation failure, never a crash: roles can be deleted between reads.
func RoleOf(user *entity.User) (Role, error) {
	if user == nil || user.RoleID == nil {
		return "", apperror.Validation(apperror.KindInvalidRoleReference, "role", "user has no role assigned")
	}
	role, ok := ParseRole(user.Role.Name)
	if !ok {
		return "", apperror.Validation(apperror.KindInvalidRoleReference, "role", "user role does not resolve to a known role")
	}
	return role, nil
}
