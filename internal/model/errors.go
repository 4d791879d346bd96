package model

import "fmt"

// FieldError is a validation failure scoped to a single input field.
// Handlers render it as {"errors": {"<field>": "<message>"}} with HTTP 400.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
