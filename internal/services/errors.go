package services

import (
	"errors"
	"fmt"

	"github.com/nimasrn/resto-manager/internal/repository"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrInvalidStatus = errors.New("invalid reservation status")
	ErrInvalidMonth  = errors.New("month must be YYYY-MM")
	ErrConflict      = errors.New("record already exists")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// storeError wraps a repository failure with the operation name.
func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrDuplicateID) {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
