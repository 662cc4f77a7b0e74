package detect

import (
	"context"
	"log/slog"
	"maps"

	"github.com/cockroachdb/errors"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/logging"
	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
)

// System checks applications of one catalog against one package database.
// Implementations are safe for concurrent use.
type System interface {
	// Check reports which candidate packages of app are installed.
	// An app missing from the catalog fails with ErrUnknownApplication;
	// a failing package database fails with an error marked ErrBackend.
	Check(ctx context.Context, app string) (Result, error)

	// Tag returns the platform tag of the catalog the system was built with.
	Tag() Tag

	// Binding returns the name of the selected package database binding.
	Binding() string

	// Close releases the binding.
	Close() error
}

// base carries the state and match algorithm shared by every variant.
type base struct {
	tag     Tag
	catalog catalog.Catalog
	binding pkgdb.Binding
	logger  *slog.Logger
}

func newBase(tag Tag, cat catalog.Catalog, opts []Option) (*base, error) {
	o := newOptions(opts)

	candidates, err := o.candidates(tag)
	if err != nil {
		return nil, err
	}

	binding, err := pkgdb.First(candidates...)
	if err != nil {
		return nil, backendError(err, "%s detection system", tag)
	}
	for _, c := range candidates {
		if c != binding && c != nil {
			_ = pkgdb.Close(c)
		}
	}

	o.logger.Debug("detection system selected", "system", tag, "binding", binding.Name())

	return &base{
		tag:     tag,
		catalog: maps.Clone(cat),
		binding: binding,
		logger:  o.logger,
	}, nil
}

// lookup returns the candidate packages of app, or ErrUnknownApplication.
func (b *base) lookup(app string) ([]string, error) {
	pkgs, ok := b.catalog.Packages(app)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownApplication, "%q is not in the %s catalog", app, b.tag)
	}
	return pkgs, nil
}

func (b *base) check(ctx context.Context, app string) (Result, error) {
	pkgs, err := b.lookup(app)
	if err != nil {
		return NotFound, err
	}

	b.logger.DebugContext(ctx, "checking application", "app", app)

	var matches []string
	for _, name := range pkgs {
		pkg, err := b.binding.Lookup(ctx, name)
		if err != nil {
			return NotFound, backendError(err, "checking %s package %s via %s", app, name, b.binding.Name())
		}
		b.logger.Log(ctx, logging.LevelTrace, "package queried", "app", app, "package", name, "installed", pkg != nil)
		if pkg != nil {
			matches = append(matches, name)
		}
	}
	return NewResult(matches), nil
}

func (b *base) Tag() Tag { return b.tag }

func (b *base) Binding() string { return b.binding.Name() }

func (b *base) Close() error { return pkgdb.Close(b.binding) }
