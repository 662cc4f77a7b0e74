package pkgng

import (
	"bytes"
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
)

const (
	// CLIName is the binding name of the pkg command fallback.
	CLIName = "pkg-cli"

	// QueryFormat is the pkg query format: name, version and origin.
	QueryFormat = "%n\t%v\t%o"
)

// CLI runs `pkg query` once per Lookup.
type CLI struct {
	runner pkgdb.Runner
}

var _ pkgdb.Binding = (*CLI)(nil)

// NewCLI returns a pkg command binding. A nil runner uses pkgdb.DefaultRunner.
func NewCLI(runner pkgdb.Runner) *CLI {
	if runner == nil {
		runner = pkgdb.DefaultRunner
	}
	return &CLI{runner: runner}
}

// Name implements pkgdb.Binding.
func (c *CLI) Name() string { return CLIName }

// Available implements pkgdb.Binding.
func (c *CLI) Available() error {
	if _, err := c.runner.LookPath("pkg"); err != nil {
		return errors.Wrap(err, "pkg not found in PATH")
	}
	return nil
}

// Lookup implements pkgdb.Binding. Output lines naming another package are
// ignored so the result matches the SQLite binding's exact-name query.
func (c *CLI) Lookup(ctx context.Context, name string) (*pkgdb.Package, error) {
	out, err := c.runner.Run(ctx, "pkg", "query", "-C", QueryFormat, name)
	if err != nil {
		var exitErr *pkgdb.ExitError
		// pkg query exits 1 without output when nothing matched
		if errors.As(err, &exitErr) && exitErr.Code == 1 && len(bytes.TrimSpace(exitErr.Stdout)) == 0 && len(bytes.TrimSpace(exitErr.Stderr)) == 0 {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "pkg query %s", name)
	}

	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 {
			return nil, errors.Newf("unexpected pkg query output %q", line)
		}
		if fields[0] == name {
			return &pkgdb.Package{Name: fields[0], Version: fields[1], Origin: fields[2]}, nil
		}
	}
	return nil, nil
}
