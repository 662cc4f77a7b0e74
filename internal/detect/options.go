package detect

import (
	"log/slog"

	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
)

// BindingConfig carries the settings binding factories need.
// Empty fields select the package manager's standard locations.
type BindingConfig struct {
	// StatusFile is the dpkg status database path.
	StatusFile string

	// Database is the pkg(8) SQLite database path.
	Database string

	// Runner executes package manager tools. Nil means pkgdb.DefaultRunner.
	Runner pkgdb.Runner
}

// Option configures a System.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	bindings []pkgdb.Binding
	names    []string
	config   BindingConfig
	registry *Registry
}

func newOptions(opts []Option) *options {
	o := &options{registry: DefaultRegistry}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// WithLogger sets the logger used for selection and per-query tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithBindings replaces the registered candidate bindings with bindings,
// in order of preference.
func WithBindings(bindings ...pkgdb.Binding) Option {
	return func(o *options) {
		o.bindings = bindings
	}
}

// WithBindingNames restricts and orders the registered candidates by name.
// An empty list keeps the registered order.
func WithBindingNames(names ...string) Option {
	return func(o *options) {
		o.names = names
	}
}

// WithBindingConfig sets the paths and runner passed to binding factories.
func WithBindingConfig(cfg BindingConfig) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithRegistry builds candidates from r instead of DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// Candidates returns the candidate bindings a System for tag would choose
// from, in order of preference, without selecting one.
func Candidates(tag Tag, opts ...Option) ([]pkgdb.Binding, error) {
	return newOptions(opts).candidates(tag)
}

func (o *options) candidates(tag Tag) ([]pkgdb.Binding, error) {
	if o.bindings != nil {
		return o.bindings, nil
	}
	return o.registry.Build(tag, o.names, o.config)
}
