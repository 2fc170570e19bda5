package service

import "errors"

// Error kinds.  Every error returned by this package matches exactly one of
// them with errors.Is; handlers map the kind to a status code and show
// Error() to the client.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrAuth       = errors.New("authentication failed")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage failure")
)

// Error is a client-safe message tagged with its kind.  Cause keeps the
// underlying error for logging and errors.Is/As.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func invalid(msg string) error              { return &Error{Kind: ErrValidation, Msg: msg} }
func notFound(msg string) error             { return &Error{Kind: ErrNotFound, Msg: msg} }
func conflict(msg string, cause error) error { return &Error{Kind: ErrConflict, Msg: msg, Cause: cause} }
func storage(msg string, cause error) error  { return &Error{Kind: ErrStorage, Msg: msg, Cause: cause} }
