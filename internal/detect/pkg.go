package detect

import (
	"context"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
)

// PkgSystem detects applications on FreeBSD and DragonFly BSD through the
// pkg(8) database. It prefers the local SQLite database and falls back to
// pkg query.
type PkgSystem struct {
	*base
}

var _ System = (*PkgSystem)(nil)

// NewPkg binds cat to the first available pkg binding. It fails with an
// error marked ErrBackend when no binding is available.
func NewPkg(cat catalog.Catalog, opts ...Option) (*PkgSystem, error) {
	b, err := newBase(TagPkg, cat, opts)
	if err != nil {
		return nil, err
	}
	return &PkgSystem{base: b}, nil
}

// Check implements System.
func (s *PkgSystem) Check(ctx context.Context, app string) (Result, error) {
	return s.check(ctx, app)
}
