package utils

import (
	"fmt"
	"strconv"
)

// SafeIntToUint safely converts int to uint with validation.
// Returns error if value is negative.
func SafeIntToUint(val int) (uint, error) {
	if val < 0 {
		return 0, fmt.Errorf("cannot convert negative int %d to uint", val)
	}
	return uint(val), nil
}

// ParseID parses a path parameter into a positive record id.
func ParseID(param string) (uint, error) {
	id, err := strconv.Atoi(param)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", param, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid id %q: must be positive", param)
	}
	return SafeIntToUint(id)
}
