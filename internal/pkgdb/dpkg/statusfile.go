// Package dpkg implements pkgdb bindings for Debian-family hosts: an
// in-process reader of the dpkg status database and a dpkg-query fallback.
package dpkg

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
	"github.com/nexussfan/virtual-lunduke/pkg/fileutil"
)

const (
	// StatusFileName is the binding name of the status file reader.
	StatusFileName = "status-file"

	// DefaultStatusPath is where dpkg keeps its package state.
	DefaultStatusPath = "/var/lib/dpkg/status"

	// maxStatusFileSize caps how much of the database is read into memory.
	maxStatusFileSize = 100 << 20
)

// ErrMalformedStatus indicates a Status field that is not "want flag status".
var ErrMalformedStatus = errors.New("malformed dpkg Status field")

// StatusFile reads installed packages straight from the dpkg status file.
// The file is parsed once, on the first Lookup, and the index is reused for
// the lifetime of the binding.
type StatusFile struct {
	path string

	once  sync.Once
	index map[string]*pkgdb.Package
	err   error
}

var _ pkgdb.Binding = (*StatusFile)(nil)

// NewStatusFile returns a binding reading path, or DefaultStatusPath if path is empty.
func NewStatusFile(path string) *StatusFile {
	if path == "" {
		path = DefaultStatusPath
	}
	return &StatusFile{path: path}
}

// Name implements pkgdb.Binding.
func (s *StatusFile) Name() string { return StatusFileName }

// Path returns the status file location.
func (s *StatusFile) Path() string { return s.path }

// Available implements pkgdb.Binding.
func (s *StatusFile) Available() error {
	info, err := os.Stat(s.path)
	if err != nil {
		return errors.Wrapf(err, "checking %s", s.path)
	}
	if info.IsDir() {
		return errors.Newf("%s is a directory", s.path)
	}
	return nil
}

// Lookup implements pkgdb.Binding.
func (s *StatusFile) Lookup(ctx context.Context, name string) (*pkgdb.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.once.Do(s.load)
	if s.err != nil {
		return nil, s.err
	}

	p, ok := s.index[name]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *StatusFile) load() {
	data, err := fileutil.ReadFileWithLimit(os.DirFS(filepath.Dir(s.path)), filepath.Base(s.path), maxStatusFileSize)
	if err != nil {
		s.err = errors.Wrapf(err, "reading %s", s.path)
		return
	}

	s.index, err = ParseStatus(bytes.NewReader(data))
	if err != nil {
		s.err = errors.Wrapf(err, "parsing %s", s.path)
	}
}

// ParseStatus parses a dpkg status database and returns the installed
// packages keyed by name. Multi-arch packages are additionally keyed as
// "name:arch".
func ParseStatus(r io.Reader) (map[string]*pkgdb.Package, error) {
	rd := textproto.NewReader(bufio.NewReader(r))
	index := make(map[string]*pkgdb.Package)

	for eof := false; !eof; {
		h, err := rd.ReadMIMEHeader()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, errors.Wrap(err, "reading stanza")
			}
			// The last stanza may still carry data
			eof = true
		}

		if len(h) == 0 {
			continue
		}

		name := h.Get("Package")
		if name == "" {
			continue
		}

		installed, err := statusInstalled(h.Get("Status"))
		if err != nil {
			return nil, errors.Wrapf(err, "package %q", name)
		}
		if !installed {
			continue
		}

		p := &pkgdb.Package{
			Name:    name,
			Version: h.Get("Version"),
			Origin:  sourceName(h.Get("Source")),
		}
		if _, seen := index[name]; !seen {
			index[name] = p
		}
		if arch := h.Get("Architecture"); arch != "" && arch != "all" {
			index[name+":"+arch] = p
		}
	}

	return index, nil
}

// statusInstalled reports whether a Status field ("want flag status", e.g.
// "install ok installed") describes an unpacked and configured package.
// Only the third word reflects the current state; the others are intent.
func statusInstalled(status string) (bool, error) {
	if status == "" {
		return false, nil
	}
	parts := strings.Fields(status)
	if len(parts) != 3 {
		return false, errors.Wrapf(ErrMalformedStatus, "%q", status)
	}
	switch parts[2] {
	case "installed", "triggers-awaited", "triggers-pending":
		return true, nil
	default:
		return false, nil
	}
}

// sourceName strips the optional version from a Source field: "glibc (2.36-9)".
func sourceName(source string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(source), " ")
	return name
}
