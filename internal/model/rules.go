package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// notBlank treats a string of only whitespace like a missing one.
func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.ErrRequired
	}
	return nil
}
