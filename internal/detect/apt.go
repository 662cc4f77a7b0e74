package detect

import (
	"context"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
)

// AptSystem detects applications on Debian-family hosts through the dpkg
// database. It prefers reading the status file in process and falls back
// to dpkg-query.
type AptSystem struct {
	*base
}

var _ System = (*AptSystem)(nil)

// NewApt binds cat to the first available dpkg binding. It fails with an
// error marked ErrBackend when no binding is available.
func NewApt(cat catalog.Catalog, opts ...Option) (*AptSystem, error) {
	b, err := newBase(TagApt, cat, opts)
	if err != nil {
		return nil, err
	}
	return &AptSystem{base: b}, nil
}

// Check implements System.
func (s *AptSystem) Check(ctx context.Context, app string) (Result, error) {
	return s.check(ctx, app)
}
