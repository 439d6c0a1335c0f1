package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidPathEncoding is wrapped in a FileReadError when a relative path
// is not valid UTF-8. Such names cannot be written as distinct manifest keys.
var ErrInvalidPathEncoding = errors.New("path is not valid UTF-8")

// InputNotFoundError is returned when the input directory is missing,
// unreadable, or not a directory. Nothing has been written when it occurs.
type InputNotFoundError struct {
	Path string
	Err  error
}

func (e *InputNotFoundError) Error() string {
	return fmt.Sprintf("input directory %s: %v", e.Path, e.Err)
}

func (e *InputNotFoundError) Unwrap() error { return e.Err }

// FileReadError is returned when a discovered file cannot be opened or read
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// OutputWriteError is returned when the destination file cannot be created,
// written, or committed
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// ErrorKind names the failure category for user-facing diagnostics
func ErrorKind(err error) string {
	switch {
	case asType[*InputNotFoundError](err):
		return "InputNotFoundError"
	case asType[*FileReadError](err):
		return "FileReadError"
	case asType[*OutputWriteError](err):
		return "OutputWriteError"
	default:
		return "Error"
	}
}

func asType[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}
