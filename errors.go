package framekit

import (
	"errors"
	"fmt"
	"os"
)

// Common errors
var (
	ErrNotExist         = errors.New("file does not exist")
	ErrExist            = errors.New("file already exists")
	ErrPermission       = errors.New("permission denied")
	ErrClosed           = errors.New("watcher already closed")
	ErrNotDir           = errors.New("not a directory")
	ErrIsDir            = errors.New("is a directory")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrMalformedPattern = errors.New("malformed pattern")
	ErrVerification     = errors.New("checksum verification failed")
	ErrNameCollision    = errors.New("version name collision")
	ErrNotSupported     = errors.New("operation not supported")
)

// PathError records an error and the operation and file path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// underlying maps operating system errors onto the package sentinels so
// callers can test with errors.Is regardless of platform error text.
func underlying(err error) error {
	switch {
	case os.IsNotExist(err):
		return ErrNotExist
	case os.IsExist(err):
		return ErrExist
	case os.IsPermission(err):
		return ErrPermission
	default:
		return err
	}
}

// IsNotExist reports whether an error indicates that a file or directory
// does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsPermission reports whether an error indicates that permission is denied
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsMalformedPattern reports whether an error indicates that a sequence
// pattern or frame range could not be parsed
func IsMalformedPattern(err error) bool {
	return errors.Is(err, ErrMalformedPattern)
}

// IsVerification reports whether an error indicates that a copied file
// failed its post-copy checksum comparison
func IsVerification(err error) bool {
	return errors.Is(err, ErrVerification)
}

// IsNameCollision reports whether an error indicates that no free versioned
// name could be allocated in a store directory
func IsNameCollision(err error) bool {
	return errors.Is(err, ErrNameCollision)
}
