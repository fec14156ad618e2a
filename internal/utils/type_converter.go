package utils

import (
	"errors"
	"fmt"
	"strconv"
)

var errEmptyID = errors.New("empty id")

// ParseID converts a path segment into a positive record id
func ParseID(s string) (uint, error) {
	if s == "" {
		return 0, errEmptyID
	}
	val, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	if val == 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", s)
	}
	return uint(val), nil
}
