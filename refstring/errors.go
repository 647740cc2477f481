package refstring

import (
	"errors"
	"fmt"
)

// Kinds of input acquisition failures. Every error returned by this package
// wraps exactly one of them.
var (
	// ErrResourceUnavailable means the input source could not be opened,
	// read, or written.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrMalformedInput means a parameter is out of range, the number of
	// references does not match the declared length, or a reference names a
	// page outside [0, PageCount).
	ErrMalformedInput = errors.New("malformed input")

	// ErrAllocationFailure means the storage for the reference string could
	// not be obtained. Validated lengths are small, and the runtime aborts
	// on a real out-of-memory condition rather than panicking, so this is
	// reachable only in principle, through a length make rejects.
	ErrAllocationFailure = errors.New("allocation failure")
)

func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
}

// allocate reserves the storage of a reference string of length n. A length
// make rejects is reported as ErrAllocationFailure. Running out of memory is
// fatal and cannot be reported.
func allocate(n int) (refs ReferenceString, err error) {
	defer func() {
		if r := recover(); r != nil {
			refs = nil
			err = fmt.Errorf("%w: cannot allocate %d references: %v",
				ErrAllocationFailure, n, r)
		}
	}()

	return make(ReferenceString, n), nil
}
