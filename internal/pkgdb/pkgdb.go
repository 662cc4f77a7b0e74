package pkgdb

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNoBinding is returned by First when none of the candidate bindings is
// available on the host.
var ErrNoBinding = errors.New("no package database binding available")

// Package describes an installed package as reported by a binding.
type Package struct {
	// Name is the package name exactly as queried.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Version is the installed version string, in the package manager's own format.
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`

	// Origin is the port origin (pkg) or source package (dpkg), when known.
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty" toml:"origin,omitempty"`
}

// Binding answers installed-package queries against one native package database.
type Binding interface {
	// Name returns a short identifier such as "status-file" or "pkg-cli".
	Name() string

	// Available returns nil when the binding can run on this host, or an
	// error describing why it cannot (missing database file, missing tool).
	Available() error

	// Lookup reports the installed package with exactly this name.
	// It returns (nil, nil) when the package is not installed and a non-nil
	// error only when the query mechanism itself failed.
	Lookup(ctx context.Context, name string) (*Package, error)
}

// First returns the first binding in bindings whose Available reports nil.
// When none is available the returned error wraps ErrNoBinding and lists the
// reason each candidate was rejected.
func First(bindings ...Binding) (Binding, error) {
	reasons := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if b == nil {
			continue
		}
		err := b.Available()
		if err == nil {
			return b, nil
		}
		reasons = append(reasons, b.Name()+": "+err.Error())
	}

	if len(reasons) == 0 {
		return nil, errors.Wrap(ErrNoBinding, "no candidates")
	}
	return nil, errors.Wrap(ErrNoBinding, strings.Join(reasons, "; "))
}

// Close releases resources held by b if it implements io.Closer.
func Close(b Binding) error {
	if c, ok := b.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
