package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/muhajir-foundation/muhajir-api/internal/utils"
)

var (
	// ErrConflict is returned when a write violates a unique constraint.
	ErrConflict = errors.New("conflict with existing record")
	// ErrValidation is returned for input the repository refuses to write,
	// including references to rows that do not exist.
	ErrValidation = utils.ErrValidation
)

// translate maps the errors gorm translates from the driver onto the
// repository's sentinel errors.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: %w: referenced record does not exist", op, ErrValidation)
	}
	return fmt.Errorf("%s: %w", op, err)
}
