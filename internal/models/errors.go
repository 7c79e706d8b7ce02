package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for entity lookups.
var ErrProductNotFound = errors.New("product not found")

// Sentinel errors for search.
var (
	ErrEmptyQuery        = errors.New("query is required")
	ErrSearchUnavailable = errors.New("search unavailable")
)

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}
