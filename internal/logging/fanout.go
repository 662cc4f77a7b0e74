package logging

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/cockroachdb/errors"
)

// Fanout is a slog.Handler that passes each record to every member handler
// enabled for its level.
type Fanout []slog.Handler

var _ slog.Handler = Fanout(nil)

// Enabled reports whether any member handles level.
func (f Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(f, func(h slog.Handler) bool {
		return h.Enabled(ctx, level)
	})
}

// Handle sends r to the enabled members and joins their errors.
func (f Fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (f Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

// WithGroup implements slog.Handler.
func (f Fanout) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f Fanout) each(fn func(slog.Handler) slog.Handler) Fanout {
	out := make(Fanout, len(f))
	for i, h := range f {
		out[i] = fn(h)
	}
	return out
}

// FileSink is a JSON handler appending to a log file it owns.
type FileSink struct {
	slog.Handler
	f *os.File
}

// OpenFile opens path for appending, creating it with mode 0600, and
// returns a JSON handler writing to it at level.
func OpenFile(path string, level slog.Leveler) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "opening log file")
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevel,
	})
	return &FileSink{Handler: h, f: f}, nil
}

// Close closes the log file.
func (s *FileSink) Close() error {
	return s.f.Close()
}
