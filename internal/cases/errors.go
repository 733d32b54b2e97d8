package cases

import (
	"errors"

	"github.com/JustJay7/nyaya-mitra/internal/database"
)

var (
	// ErrNotFound is returned for an unknown case id.
	ErrNotFound = database.ErrCaseNotFound

	// ErrAlreadyJudged is returned when the judgment guard is on and the case
	// has left the Submitted state.
	ErrAlreadyJudged = errors.New("judgment has already been generated for this case")
)

// ValidationError is returned by Create for a missing required field.
type ValidationError = database.ValidationError

// GenerationError wraps a failure from the judgment provider.
type GenerationError struct {
	CaseID string
	Err    error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
