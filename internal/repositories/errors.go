package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// translate tags constraint violations reported by gorm with the package
// sentinels while keeping the original error in the chain.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", ErrForeignKeyViolated, err)
	default:
		return err
	}
}
