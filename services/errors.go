package services

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the policy and workflow services. Handlers map
// these onto HTTP statuses; nothing here is retried because every failure is
// either a permission fact or an input fact.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrConflict          = errors.New("conflict")
	ErrOwnershipConflict = errors.New("more than one record for owner")
)

func permissionDenied(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, fmt.Sprintf(format, args...))
}

func validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
