package types

import "fmt"

// BlankFieldError is returned by entity validation hooks when a required
// field is blank. Services translate it into a validation failure.
type BlankFieldError struct {
	Entity string
	Field  string
}

func (e *BlankFieldError) Error() string {
	return fmt.Sprintf("%s: %s must not be blank", e.Entity, e.Field)
}

func ErrBlankField(entity, field string) error {
	return &BlankFieldError{Entity: entity, Field: field}
}
