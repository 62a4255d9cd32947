package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// IsNotFoundError reports whether err (possibly wrapped) is a record-not-found
// error from the database layer.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateError reports whether err looks like a unique constraint
// violation. GORM surfaces these as ErrDuplicatedKey on supported drivers.
func IsDuplicateError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
