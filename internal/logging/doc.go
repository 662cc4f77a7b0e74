// Package logging provides structured logging for the virtual-lunduke CLI using slog.
//
// The package supports both text and JSON output formats, configurable log
// levels, and helpers for testing. All loggers are based on the standard
// library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("starting", "version", "1.0.0")
//
// # Verbosity
//
// The CLI maps its -v count to a level with [LevelFromVerbosity]. The lowest
// level, [LevelTrace], records every individual package query.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
//
// # Output
//
// Text output is colored per [ColorMode]. A [Fanout] sends each record to
// several handlers, such as the terminal handler and a [FileSink] opened for
// --log-file.
package logging
