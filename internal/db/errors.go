package db

import "errors"

// Sentinel errors for backend operations.
var (
	ErrKeyNotFound      = errors.New("db: key not found")
	ErrDocumentNotFound = errors.New("db: document not found")
	ErrBadResponse      = errors.New("db: unexpected response")
	ErrBadRequest       = errors.New("db: unsupported request")
)

// Op constants name the backend operation for error context.
const (
	OpPing        = "PING"
	OpGet         = "GET"
	OpSet         = "SET"
	OpSearch      = "_search"
	OpTermVectors = "_termvectors"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
