package dpkg

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
)

const (
	// QueryName is the binding name of the dpkg-query fallback.
	QueryName = "dpkg-query"

	// QueryFormat is the dpkg-query --showformat argument used for lookups.
	QueryFormat = "-f=${Package}\t${db:Status-Status}\t${Version}\t${source:Package}\n"
)

// Query asks dpkg-query about one package per Lookup.
type Query struct {
	runner pkgdb.Runner
}

var _ pkgdb.Binding = (*Query)(nil)

// NewQuery returns a dpkg-query binding. A nil runner uses pkgdb.DefaultRunner.
func NewQuery(runner pkgdb.Runner) *Query {
	if runner == nil {
		runner = pkgdb.DefaultRunner
	}
	return &Query{runner: runner}
}

// Name implements pkgdb.Binding.
func (q *Query) Name() string { return QueryName }

// Available implements pkgdb.Binding.
func (q *Query) Available() error {
	if _, err := q.runner.LookPath("dpkg-query"); err != nil {
		return errors.Wrap(err, "dpkg-query not found in PATH")
	}
	return nil
}

// Lookup implements pkgdb.Binding.
func (q *Query) Lookup(ctx context.Context, name string) (*pkgdb.Package, error) {
	out, err := q.runner.Run(ctx, "dpkg-query", "-W", QueryFormat, "--", name)
	if err != nil {
		var exitErr *pkgdb.ExitError
		// Status 1 means no package matched the pattern
		if errors.As(err, &exitErr) && exitErr.Code == 1 {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "dpkg-query %s", name)
	}

	s := bufio.NewScanner(bytes.NewReader(out))
	for s.Scan() {
		line := s.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, errors.Newf("unexpected dpkg-query output %q", line)
		}
		// A multi-arch name may list several instances; any installed one counts
		if fields[1] != "installed" && fields[1] != "triggers-awaited" && fields[1] != "triggers-pending" {
			continue
		}
		p := &pkgdb.Package{Name: name, Version: fields[2]}
		if len(fields) > 3 && fields[3] != fields[0] {
			p.Origin = fields[3]
		}
		return p, nil
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning dpkg-query output")
	}
	return nil, nil
}
