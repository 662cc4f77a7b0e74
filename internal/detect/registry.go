package detect

import (
	"slices"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
	"github.com/nexussfan/virtual-lunduke/internal/pkgdb/dpkg"
	"github.com/nexussfan/virtual-lunduke/internal/pkgdb/pkgng"
)

// ErrBindingAlreadyRegistered is returned when a binding name is registered
// twice for the same tag.
var ErrBindingAlreadyRegistered = errors.New("binding already registered")

// Factory creates a binding from cfg.
type Factory func(cfg BindingConfig) pkgdb.Binding

type registration struct {
	name    string
	factory Factory
}

// Registry holds the candidate binding factories of each platform tag in
// order of preference. It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	tags map[Tag][]registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tags: make(map[Tag][]registration)}
}

// DefaultRegistry lists the built-in bindings: the in-process database
// readers first, then the command-line fallbacks.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	must(r.Register(TagApt, dpkg.StatusFileName, func(cfg BindingConfig) pkgdb.Binding {
		path := cfg.StatusFile
		if path == "" {
			path = dpkg.DefaultStatusPath
		}
		return dpkg.NewStatusFile(path)
	}))
	must(r.Register(TagApt, dpkg.QueryName, func(cfg BindingConfig) pkgdb.Binding {
		return dpkg.NewQuery(cfg.Runner)
	}))

	must(r.Register(TagPkg, pkgng.SQLiteName, func(cfg BindingConfig) pkgdb.Binding {
		path := cfg.Database
		if path == "" {
			path = pkgng.DefaultDatabasePath
		}
		return pkgng.NewSQLite(path)
	}))
	must(r.Register(TagPkg, pkgng.CLIName, func(cfg BindingConfig) pkgdb.Binding {
		return pkgng.NewCLI(cfg.Runner)
	}))

	return r
}

// Register appends a binding factory to the candidates of tag.
func (r *Registry) Register(tag Tag, name string, f Factory) error {
	if name == "" || f == nil {
		return errors.Newf("invalid binding registration for %s", tag)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, reg := range r.tags[tag] {
		if reg.name == name {
			return errors.Wrapf(ErrBindingAlreadyRegistered, "%s/%s", tag, name)
		}
	}
	r.tags[tag] = append(r.tags[tag], registration{name: name, factory: f})
	return nil
}

// Names returns the binding names registered for tag, in order of preference.
func (r *Registry) Names(tag Tag) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tags[tag]))
	for _, reg := range r.tags[tag] {
		names = append(names, reg.name)
	}
	return names
}

// Build instantiates the bindings named in names, in that order. An empty
// names list builds every registered binding of tag. Unknown names yield
// ErrUnknownBinding.
func (r *Registry) Build(tag Tag, names []string, cfg BindingConfig) ([]pkgdb.Binding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := r.tags[tag]
	if len(names) == 0 {
		out := make([]pkgdb.Binding, 0, len(regs))
		for _, reg := range regs {
			out = append(out, reg.factory(cfg))
		}
		return out, nil
	}

	out := make([]pkgdb.Binding, 0, len(names))
	for _, name := range names {
		i := slices.IndexFunc(regs, func(reg registration) bool { return reg.name == name })
		if i < 0 {
			return nil, errors.Wrapf(ErrUnknownBinding, "%q for %s", name, tag)
		}
		out = append(out, regs[i].factory(cfg))
	}
	return out, nil
}
