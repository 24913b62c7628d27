package common

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Error classes shared by the loaders and the generator. Call sites wrap these
// with context; callers branch on them with errors.Is.
var (
	// ErrFatalConfiguration reports a missing or malformed specification or
	// dataset: absent root element, absent attribute, empty raw table.
	ErrFatalConfiguration = errors.New("fatal configuration error")

	// ErrLookup reports a raw-table pair or a position that is not present.
	ErrLookup = errors.New("lookup error")

	// ErrSampling reports a draw that no cumulative interval covers.
	ErrSampling = errors.New("sampling error")

	// ErrInvalidSize reports a requested instance size the pool cannot serve.
	ErrInvalidSize = errors.New("invalid size")

	// ErrInvalidSpecification reports a specification the generator cannot
	// compute with, e.g. no demand category with a positive value.
	ErrInvalidSpecification = errors.New("invalid specification")
)

// classified ties an underlying cause to one of the error classes above.
// errors.Is matches the class, errors.As reaches the cause.
type classified struct {
	class error
	cause error
}

func (e *classified) Error() string { return e.cause.Error() + ": " + e.class.Error() }

func (e *classified) Unwrap() error { return e.cause }

func (e *classified) Is(target error) bool { return target == e.class }

// Classify annotates cause with a message and files it under class. It
// returns nil when cause is nil.
func Classify(class, cause error, format string, args ...interface{}) error {
	if cause == nil {
		return nil
	}
	return &classified{class: class, cause: pkgerrors.WithMessagef(cause, format, args...)}
}
