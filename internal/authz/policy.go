package authz

import (
	"github.com/google/uuid"

	"github.com/fitlife/gymsched/pkg/apperror"
)

// Verdict is the outcome of an authorization check. Policy functions are total
// and side-effect free; they classify, they never mutate.
type Verdict int

const (
	VerdictAllow Verdict = iota
	VerdictForbid
	VerdictRequireLogin
)

func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictForbid:
		return "forbid"
	case VerdictRequireLogin:
		return "require_login"
	default:
		return "unknown"
	}
}

// Caller is the identity context attached to an incoming action. It is always
// passed explicitly; there is no ambient current-user lookup.
type Caller struct {
	ID            uuid.UUID
	Role          Role
	authenticated bool
}

func Anonymous() Caller {
	return Caller{}
}

func Authenticated(id uuid.UUID, role Role) Caller {
	return Caller{ID: id, Role: role, authenticated: true}
}

func (c Caller) IsAuthenticated() bool {
	return c.authenticated
}

// RequireLogin guards actions any authenticated identity may perform.
func RequireLogin(caller Caller) Verdict {
	if !caller.IsAuthenticated() {
		return VerdictRequireLogin
	}
	return VerdictAllow
}

// RequireAdminOrTeacher guards privileged writes: category and gym-class
// mutations. Students are forbidden, anonymous callers must log in first.
func RequireAdminOrTeacher(caller Caller) Verdict {
	if !caller.IsAuthenticated() {
		return VerdictRequireLogin
	}
	if caller.Role == RoleStudent {
		return VerdictForbid
	}
	return VerdictAllow
}

// RequireSelfOrPrivileged guards enrollment mutations: a user may always act
// on themself; acting on another user requires admin or teacher.
func RequireSelfOrPrivileged(caller Caller, subjectUserID uuid.UUID) Verdict {
	if !caller.IsAuthenticated() {
		return VerdictRequireLogin
	}
	if caller.ID == subjectUserID {
		return VerdictAllow
	}
	return RequireAdminOrTeacher(caller)
}

// RequireNotLoggedIn guards sign-up and login: an authenticated session cannot
// re-authenticate or re-register. The forbid verdict maps outward to a bad
// request, not forbidden.
func RequireNotLoggedIn(caller Caller) Verdict {
	if caller.IsAuthenticated() {
		return VerdictForbid
	}
	return VerdictAllow
}

// ErrForVerdict maps a deny verdict onto the failure taxonomy; nil for allow.
func ErrForVerdict(v Verdict) error {
	switch v {
	case VerdictRequireLogin:
		return apperror.AuthRequired()
	case VerdictForbid:
		return apperror.Forbidden("insufficient role for this action")
	default:
		return nil
	}
}
