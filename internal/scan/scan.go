// Package scan runs a detection system over an ordered list of applications.
package scan

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/detect"
)

// Entry is the result of checking one application.
type Entry struct {
	App    string
	Result detect.Result
}

// Scanner checks applications against a System.
type Scanner struct {
	// System answers the checks.
	System detect.System

	// Catalog, when set, limits the scan to applications it contains.
	// Applications outside it are skipped and logged at debug level.
	Catalog catalog.Catalog

	// Jobs bounds the number of concurrent checks. Values below 2 scan
	// sequentially.
	Jobs int

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Run checks apps and returns one entry per checked application, in the
// order of apps regardless of Jobs. The first failing check aborts the scan
// and its error is returned unchanged.
func (s *Scanner) Run(ctx context.Context, apps []string) ([]Entry, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	targets := make([]string, 0, len(apps))
	for _, app := range apps {
		if s.Catalog != nil {
			if _, ok := s.Catalog.Packages(app); !ok {
				logger.Debug("skipping application without catalog entry", "app", app)
				continue
			}
		}
		targets = append(targets, app)
	}

	entries := make([]Entry, len(targets))

	if s.Jobs < 2 {
		for i, app := range targets {
			res, err := s.check(ctx, logger, app)
			if err != nil {
				return nil, err
			}
			entries[i] = Entry{App: app, Result: res}
		}
		return entries, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Jobs)
	for i, app := range targets {
		g.Go(func() error {
			res, err := s.check(gctx, logger, app)
			if err != nil {
				return err
			}
			entries[i] = Entry{App: app, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Scanner) check(ctx context.Context, logger *slog.Logger, app string) (detect.Result, error) {
	logger.DebugContext(ctx, "checking for application", "app", app)
	res, err := s.System.Check(ctx, app)
	if err != nil {
		return detect.NotFound, err
	}
	if res.Found() {
		logger.DebugContext(ctx, "application installed", "app", app, "packages", res.Packages())
	}
	return res, nil
}

// Found returns the entries whose result matched at least one package.
func Found(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Result.Found() {
			out = append(out, e)
		}
	}
	return out
}
