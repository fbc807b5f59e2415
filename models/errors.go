package models

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrTranslationNotFound is returned when a product has no translation in the requested language.
	ErrTranslationNotFound = errors.New("translation not found")
	// ErrConflict is returned when a write hits a unique constraint. It is retryable.
	ErrConflict = errors.New("uniqueness conflict")
	// ErrMissingReference is returned when a write points at a row that does not exist.
	ErrMissingReference = errors.New("referenced record does not exist")
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// normalizeWriteError maps driver unique violations onto ErrConflict.
func normalizeWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Join(ErrConflict, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return errors.Join(ErrMissingReference, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return errors.Join(ErrConflict, err)
		case pqForeignKeyViolation:
			return errors.Join(ErrMissingReference, err)
		}
	}
	return err
}
