package database

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateUsername is returned when creating a user whose username is
// already taken. The unique index on the users table is the final arbiter,
// so a concurrent check-then-insert race still surfaces as this error.
var ErrDuplicateUsername = errors.New("username already exists")

// ValidationError reports malformed or empty input. It is always recoverable
// and safe to show to the caller verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// isDuplicateKey reports whether err is a unique constraint violation.
// Gorm translates these for dialects that support it, but older driver
// versions only expose the raw sqlite message.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
