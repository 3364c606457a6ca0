package db

import "strings"

// IsUniqueViolation reports whether err is a unique-constraint violation.
// Matching is textual so both postgres and sqlite driver errors qualify; a
// non-empty constraintName narrows the check to that constraint.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
