package domain

import "errors"

var (
	// ErrNotFound indicates an unknown category, subcategory or history entry.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates user input that cannot be accepted, such as an
	// empty answer to a required question.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidOperation indicates an operation that is not allowed in the
	// current questionnaire state.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrAtFirstStep is returned by Back when there is nothing to go back to.
	ErrAtFirstStep = errors.New("already at the first step")

	// ErrAmbiguous indicates an id prefix that matches more than one entry.
	ErrAmbiguous = errors.New("ambiguous id")

	// ErrTemplate indicates a malformed template found while assembling a prompt.
	ErrTemplate = errors.New("template error")

	// ErrDataIntegrity indicates malformed catalog data found at load time.
	ErrDataIntegrity = errors.New("catalog data integrity")
)
