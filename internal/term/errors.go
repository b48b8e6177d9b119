package term

import "errors"

var (
	// ErrNotInitialized is returned by operations called before Init.
	ErrNotInitialized = errors.New("term: driver not initialized")

	// ErrClosed is returned by operations called after Fini.
	ErrClosed = errors.New("term: driver closed")
)

// Error wraps a terminal failure with the operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "term: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with op unless it already carries one. Nil stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	return &Error{Op: op, Err: err}
}
