package generator

import (
	"fmt"

	"github.com/abhisek/examforge/internal/bank"
)

// RequestError describes an invalid generation request.
type RequestError struct {
	Field   string
	Message string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s %s", e.Field, e.Message)
}

// Validate checks that the request can be served.
func (r Request) Validate() error {
	if r.Versions < 1 {
		return &RequestError{Field: "versions", Message: "must be at least 1"}
	}
	if r.MCQ < 0 {
		return &RequestError{Field: "mcq", Message: "must not be negative"}
	}
	if r.Essay < 0 {
		return &RequestError{Field: "essay", Message: "must not be negative"}
	}
	for l, n := range r.Levels {
		if bank.ParseLevel(string(l)) != l {
			return &RequestError{Field: "levels", Message: fmt.Sprintf("unknown level %q", l)}
		}
		if n < 0 {
			return &RequestError{Field: "levels." + string(l), Message: "must not be negative"}
		}
	}
	return nil
}
