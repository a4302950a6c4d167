package entity

import "fmt"

// ValidationError rejects a single submitted field, such as the article
// text or url. Handlers surface Field and Message to the caller as a 400.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
