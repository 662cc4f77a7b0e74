package detect

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownApplication is returned by Check for an application that is
	// not in the system's catalog. No package database query is made.
	ErrUnknownApplication = errors.New("unknown application")

	// ErrBackend marks failures of the package database itself: a binding
	// that could not be opened, a query that failed, output that could not
	// be parsed. It is never converted into a negative result.
	ErrBackend = errors.New("package database failure")

	// ErrUnsupportedPlatform is returned by Select for hosts without a
	// detection system.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrUnknownBinding is returned when configuration names a binding that
	// does not exist for the platform.
	ErrUnknownBinding = errors.New("unknown binding")
)

func backendError(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrBackend)
}
