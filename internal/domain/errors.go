package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrOutOfRange signals a page outside the servable result window.
	ErrOutOfRange = errors.New("request out of range")
	// ErrUnknownField signals a field name absent from the catalog.
	ErrUnknownField = errors.New("unknown field")
	// ErrLogic signals a catalog or schema misconfiguration, never a user input problem.
	ErrLogic = errors.New("logic error")
)
