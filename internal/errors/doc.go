// Package errors carries the virtual-lunduke CLI's error conventions.
//
// Errors are built with github.com/cockroachdb/errors, whose constructors and
// predicates are re-exported here so command code needs a single import.
// Packages mark failures with sentinels ([ErrNotFound], [ErrInvalidConfig]
// and the detection sentinels) and callers test them with [Is].
//
// At the command boundary an error is wrapped in an [ExitError] that fixes
// the process exit code and an optional one-line suggestion:
//
//   - [ExitUser] (1): the invocation is wrong, e.g. an unknown application
//     name, a bad flag or an invalid config file
//   - [ExitSystem] (2): the host is wrong, e.g. an unsupported platform or an
//     unreadable package database
//
// [Code] extracts the exit code from any error chain:
//
//	if err := commands.Execute(); err != nil {
//		commands.PrintError(os.Stderr, err)
//		os.Exit(errors.Code(err))
//	}
package errors
