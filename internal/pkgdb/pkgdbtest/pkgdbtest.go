// Package pkgdbtest provides in-memory pkgdb bindings and runners for tests.
package pkgdbtest

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
)

// Binding is an in-memory pkgdb.Binding that counts lookups.
type Binding struct {
	// BindingName is returned from Name. Defaults to "fake".
	BindingName string

	// Installed maps package names to their installed version.
	Installed map[string]string

	// Unavailable, when set, is returned from Available.
	Unavailable error

	// Errors maps package names to an error returned by Lookup.
	Errors map[string]error

	lookups atomic.Int64
	closed  atomic.Bool

	mu      sync.Mutex
	queried []string
}

var _ pkgdb.Binding = (*Binding)(nil)

// Name implements pkgdb.Binding.
func (b *Binding) Name() string {
	if b.BindingName == "" {
		return "fake"
	}
	return b.BindingName
}

// Available implements pkgdb.Binding.
func (b *Binding) Available() error {
	return b.Unavailable
}

// Lookup implements pkgdb.Binding.
func (b *Binding) Lookup(_ context.Context, name string) (*pkgdb.Package, error) {
	b.lookups.Add(1)
	b.mu.Lock()
	b.queried = append(b.queried, name)
	b.mu.Unlock()

	if err, ok := b.Errors[name]; ok {
		return nil, err
	}
	version, ok := b.Installed[name]
	if !ok {
		return nil, nil
	}
	return &pkgdb.Package{Name: name, Version: version}, nil
}

// Close records that the binding was closed.
func (b *Binding) Close() error {
	b.closed.Store(true)
	return nil
}

// Lookups returns the number of Lookup calls made so far.
func (b *Binding) Lookups() int {
	return int(b.lookups.Load())
}

// Queried returns the package names passed to Lookup, in call order.
func (b *Binding) Queried() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queried...)
}

// Closed reports whether Close was called.
func (b *Binding) Closed() bool {
	return b.closed.Load()
}

// Response is a scripted Runner result.
type Response struct {
	Stdout string
	Err    error
}

// Runner is a pkgdb.Runner that replays scripted responses keyed by the
// full command line ("name arg1 arg2 ...").
type Runner struct {
	// Responses maps a command line to its scripted result.
	Responses map[string]Response

	// Paths maps executable names to the path LookPath returns. Executables
	// missing from the map are reported as not found.
	Paths map[string]string

	mu    sync.Mutex
	calls []string
}

var _ pkgdb.Runner = (*Runner)(nil)

// Run implements pkgdb.Runner.
func (r *Runner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")

	r.mu.Lock()
	r.calls = append(r.calls, line)
	r.mu.Unlock()

	resp, ok := r.Responses[line]
	if !ok {
		return nil, &pkgdb.ExitError{Command: name, Code: 127, Stderr: []byte("unscripted command: " + line)}
	}
	return []byte(resp.Stdout), resp.Err
}

// LookPath implements pkgdb.Runner.
func (r *Runner) LookPath(file string) (string, error) {
	if p, ok := r.Paths[file]; ok {
		return p, nil
	}
	return "", &pkgdb.ExitError{Command: "which " + file, Code: 1}
}

// Calls returns the command lines run so far.
func (r *Runner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}
