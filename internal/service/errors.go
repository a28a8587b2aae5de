package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoIngredients is returned by the prompt builder before any model call is
// made, so an empty request never burns an API call.
var ErrNoIngredients = errors.New("no ingredients provided")

// ErrMalformedResponse is returned when the model output is not valid JSON
// even after fence stripping. The message is shown to the user verbatim.
var ErrMalformedResponse = errors.New("Failed to parse recipe data. Please try again.")

// ErrRecipeNotFound is returned when a vote targets a recipe id that does not
// resolve to an existing row.
var ErrRecipeNotFound = errors.New("recipe not found")

// ErrUserExists is returned when registration collides with an existing
// account, whether caught by the lookup or by the unique constraint.
var ErrUserExists = errors.New("user already exists")

// ValidationError reports every schema problem in a decoded model response at
// once, rather than failing on the first field encountered.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Missing "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Invalid...)
	return "Invalid recipe data: " + strings.Join(parts, "; ")
}

// PersistenceError wraps a storage-layer failure so callers can distinguish
// it from generation failures. It is surfaced to the caller and never retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
