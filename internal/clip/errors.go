package clip

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	// ErrBusy means another process or thread holds the clipboard.
	ErrBusy = errors.New("clipboard busy")
	// ErrSyscall is a generic OS-call failure. The OS error code is
	// available through errors.As with an Errno target.
	ErrSyscall = errors.New("system call failed")
	// ErrAlloc means the OS could not allocate a shared memory block.
	ErrAlloc = errors.New("shared memory allocation failed")
	// ErrLock means the OS could not lock a shared memory block.
	ErrLock = errors.New("shared memory lock failed")
	// ErrNotFound means the clipboard holds no data in the requested format.
	ErrNotFound = errors.New("clipboard format not available")

	ErrSessionClosed = errors.New("clipboard session closed")
	ErrNotLocked     = errors.New("shared memory block not locked")
)

// OpError records a failed clipboard or shared-memory operation.
type OpError struct {
	Op     string // e.g. "open clipboard", "lock"
	Kind   error  // one of the Err* kinds above
	Handle Handle // block involved, 0 if none
	Err    error  // underlying OS error, usually an Errno; may be nil
}

func (e *OpError) Error() string {
	msg := "clip: " + e.Op
	if e.Handle != 0 {
		msg += fmt.Sprintf(" %#x", uintptr(e.Handle))
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the OS error so that errors.Is(err,
// ErrBusy) and errors.As(err, &errno) both work.
func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opError(op string, kind error, h Handle, err error) *OpError {
	return &OpError{Op: op, Kind: kind, Handle: h, Err: err}
}
