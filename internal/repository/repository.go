package repository

import (
	"errors"

	"qrmenu/internal/domain"

	"gorm.io/gorm"
)

// translate maps gorm errors onto the domain taxonomy so services never
// depend on the storage driver. Requires TranslateError on the gorm config
// for duplicate-key detection.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	}
	return err
}
