package pgerr

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes used by the service
const (
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// Code returns the SQLSTATE of err and whether err is a postgres error
func Code(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}
	return "", false
}

// Constraint returns the violated constraint name, if any
func Constraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsUniqueViolation reports a unique violation; if constraint is not empty
// the violated constraint must match it.
func IsUniqueViolation(err error, constraint string) bool {
	return is(err, CodeUniqueViolation, constraint)
}

// IsExclusionViolation reports an exclusion constraint violation
func IsExclusionViolation(err error, constraint string) bool {
	return is(err, CodeExclusionViolation, constraint)
}

// IsRetryable reports errors after which the whole transaction may be retried
func IsRetryable(err error) bool {
	code, ok := Code(err)
	return ok && (code == CodeSerializationFailure || code == CodeDeadlockDetected)
}

func is(err error, code, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != code {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}
