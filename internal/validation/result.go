package validation

import "github.com/fitlife/gymsched/pkg/apperror"

// Result collects every violated rule for a candidate entity, in
// first-failure-wins order: blank-field checks before cross-reference checks
// before uniqueness checks.
type Result struct {
	failures []*apperror.AppError
}

func (r *Result) add(kind apperror.Kind, field, message string) {
	r.failures = append(r.failures, apperror.Validation(kind, field, message))
}

func (r Result) OK() bool {
	return len(r.failures) == 0
}

func (r Result) Failures() []*apperror.AppError {
	return r.failures
}

// First returns the highest-priority violation, or nil when the candidate is
// valid. Handlers surface this one; the full list stays available for
// complete error reports.
func (r Result) First() *apperror.AppError {
	if len(r.failures) == 0 {
		return nil
	}
	return r.failures[0]
}

// Err adapts the result to an error return; nil when valid.
func (r Result) Err() error {
	if first := r.First(); first != nil {
		return first
	}
	return nil
}
