package logging

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"
)

// ColorMode selects when terminal output carries ANSI colors.
type ColorMode string

const (
	// ColorAuto colors terminals unless NO_COLOR is set or TERM is "dumb".
	ColorAuto ColorMode = "auto"
	// ColorAlways colors regardless of the destination.
	ColorAlways ColorMode = "always"
	// ColorNever disables color.
	ColorNever ColorMode = "never"
)

// ParseColorMode parses a --color value. The empty string means ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", errors.Newf("invalid color mode %q (want auto, always or never)", s)
}

// Colorize reports whether output written to w should be colored.
func (m ColorMode) Colorize(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return autoColor(os.LookupEnv, isTerminal(w))
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// autoColor applies the NO_COLOR (https://no-color.org) and TERM=dumb
// conventions on top of terminal detection.
func autoColor(lookup func(string) (string, bool), tty bool) bool {
	if _, ok := lookup("NO_COLOR"); ok {
		return false
	}
	if t, _ := lookup("TERM"); t == "dumb" {
		return false
	}
	return tty
}
