package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrDuplicateID is returned when a record is inserted with an explicit
	// identifier that is already in use.
	ErrDuplicateID = errors.New("record id already exists")
)

func translateError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateID
	}
	return err
}
