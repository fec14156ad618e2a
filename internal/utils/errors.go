package utils

import "errors"

// ErrValidation marks input that is rejected before it reaches storage. The
// repository package re-exports it, so errors.Is matches either name.
var ErrValidation = errors.New("validation failed")
