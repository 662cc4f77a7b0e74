package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nexussfan/virtual-lunduke/internal/detect"
	"github.com/nexussfan/virtual-lunduke/internal/report"
)

// Validation errors for configuration fields.
var (
	// ErrUnsupportedVersion indicates a schema version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrInvalidJobs indicates a job count below one.
	ErrInvalidJobs = errors.New("jobs must be >= 1")

	// ErrInvalidOutput indicates an unknown report format.
	ErrInvalidOutput = errors.New("invalid output format")

	// ErrInvalidBinding indicates a binding name that is not registered.
	ErrInvalidBinding = errors.New("invalid binding")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version != CurrentVersion {
		errs = append(errs, errors.Mark(errors.Newf("unsupported config version: %d", cfg.Version), ErrUnsupportedVersion))
	}

	if cfg.Jobs < 1 {
		errs = append(errs, ErrInvalidJobs)
	}

	if _, err := report.ParseFormat(cfg.Output); err != nil {
		errs = append(errs, errors.Mark(errors.Newf("invalid output format: %s", cfg.Output), ErrInvalidOutput))
	}

	errs = append(errs, validateBindings(detect.TagApt, cfg.Apt.Bindings)...)
	errs = append(errs, validateBindings(detect.TagPkg, cfg.Pkg.Bindings)...)

	for _, p := range []struct{ field, path string }{
		{"data_dir", cfg.DataDir},
		{"apt.status_file", cfg.Apt.StatusFile},
		{"pkg.database", cfg.Pkg.Database},
	} {
		if err := validatePath(p.path); err != nil {
			errs = append(errs, &PathError{Field: p.field, Path: p.path, Err: err})
		}
	}

	return errs
}

func validateBindings(tag detect.Tag, names []string) []error {
	known := detect.DefaultRegistry.Names(tag)
	var errs []error
	for _, name := range names {
		if !slices.Contains(known, name) {
			errs = append(errs, &BindingError{
				Tag:     string(tag),
				Binding: name,
				Known:   known,
				Err:     ErrInvalidBinding,
			})
		}
	}
	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths are valid (they mean "use default")
	if path == "" {
		return nil
	}

	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// BindingError represents an unknown binding in a binding list.
type BindingError struct {
	Tag     string
	Binding string
	Known   []string
	Err     error
}

func (e *BindingError) Error() string {
	return e.Err.Error() + " for " + e.Tag + ": " + e.Binding + " (valid: " + strings.Join(e.Known, ", ") + ")"
}

func (e *BindingError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
