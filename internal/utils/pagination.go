package utils

import (
	"fmt"
	"strconv"
)

// DefaultLimit is the page size used when the client sends none.
const DefaultLimit = 100

// ParseSkipLimit parses skip/limit query values. Missing values default to 0
// and DefaultLimit; negative or non-numeric values are rejected.
func ParseSkipLimit(skipStr, limitStr string) (int, int, error) {
	skip, limit := 0, DefaultLimit

	if skipStr != "" {
		v, err := strconv.Atoi(skipStr)
		if err != nil || v < 0 {
			return 0, 0, fmt.Errorf("skip must be a non-negative integer, got %q", skipStr)
		}
		skip = v
	}

	if limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			return 0, 0, fmt.Errorf("limit must be a non-negative integer, got %q", limitStr)
		}
		limit = v
	}

	return skip, limit, nil
}
