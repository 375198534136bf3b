package errs

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Kind categorizes why an operation failed
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAccessDenied
	KindMalformed
	KindInvalidArgument
)

// String returns a human-readable kind
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAccessDenied:
		return "access denied"
	case KindMalformed:
		return "malformed data"
	case KindInvalidArgument:
		return "invalid argument"
	case KindUnknown:
		return "unknown error"
	default:
		return "unspecified error"
	}
}

// Error carries the failing operation, the path involved, and the
// categorized reason alongside the original cause.
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s (%v)", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes the original cause to errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns a user-friendly error message
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("Not found: %s", e.Path)
	case KindAccessDenied:
		return fmt.Sprintf("Permission denied: %s", e.Path)
	case KindMalformed:
		return fmt.Sprintf("Unreadable data in %s (%v)", e.Path, e.Err)
	case KindInvalidArgument:
		if e.Err != nil {
			return fmt.Sprintf("%s: %v", e.Path, e.Err)
		}
		return fmt.Sprintf("Invalid argument: %s", e.Path)
	default:
		return fmt.Sprintf("Error during %s of %s: %v", e.Op, e.Path, e.Err)
	}
}

// New builds an Error with an explicit kind.
func New(op, path string, kind Kind, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// Classify analyzes a filesystem error and returns a categorized Error
func Classify(op, path string, err error) *Error {
	if err == nil {
		return nil
	}

	classified := &Error{
		Op:   op,
		Path: path,
		Kind: KindUnknown,
		Err:  err,
	}

	if os.IsNotExist(err) {
		classified.Kind = KindNotFound
		return classified
	}

	if os.IsPermission(err) {
		classified.Kind = KindAccessDenied
		return classified
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			classified.Kind = KindAccessDenied
		case syscall.ENOENT:
			classified.Kind = KindNotFound
		case syscall.ENOTDIR:
			classified.Kind = KindInvalidArgument
		}
	}

	return classified
}

// KindOf extracts the kind from an error chain, KindUnknown when the
// chain carries no categorized error.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnknown
}

// UserMessageFor renders the friendliest message available for err.
func UserMessageFor(err error) string {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.UserMessage()
	}
	return err.Error()
}
