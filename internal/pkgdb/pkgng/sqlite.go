// Package pkgng implements pkgdb bindings for hosts managed by pkg(8):
// FreeBSD and DragonFly BSD. The preferred binding reads the local package
// database in-process; the fallback asks the pkg command.
package pkgng

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
)

const (
	// SQLiteName is the binding name of the in-process database reader.
	SQLiteName = "pkg-sqlite"

	// DefaultDatabasePath is the pkg(8) local package database.
	DefaultDatabasePath = "/var/db/pkg/local.sqlite"

	lookupQuery = `SELECT name, version, origin FROM packages WHERE name = ? LIMIT 1`
)

// SQLite looks packages up in the pkg(8) SQLite database, opened read-only.
type SQLite struct {
	path string

	once sync.Once
	db   *sql.DB
	err  error
}

var _ pkgdb.Binding = (*SQLite)(nil)

// NewSQLite returns a binding reading path, or DefaultDatabasePath if path is empty.
func NewSQLite(path string) *SQLite {
	if path == "" {
		path = DefaultDatabasePath
	}
	return &SQLite{path: path}
}

// Name implements pkgdb.Binding.
func (s *SQLite) Name() string { return SQLiteName }

// Path returns the database location.
func (s *SQLite) Path() string { return s.path }

// Available implements pkgdb.Binding.
func (s *SQLite) Available() error {
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
func (s *SQLite) Lookup(ctx context.Context, name string) (*pkgdb.Package, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}

	var p pkgdb.Package
	var origin sql.NullString
	err = db.QueryRowContext(ctx, lookupQuery, name).Scan(&p.Name, &p.Version, &origin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s for %q", s.path, name)
	}
	p.Origin = origin.String
	return &p, nil
}

// Close closes the database handle if it was opened.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) open(ctx context.Context) (*sql.DB, error) {
	s.once.Do(func() {
		dsn := (&url.URL{Scheme: "file", Path: s.path, RawQuery: "mode=ro"}).String()
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			s.err = errors.Wrapf(err, "opening %s", s.path)
			return
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			s.err = errors.Wrapf(err, "opening %s", s.path)
			return
		}
		s.db = db
	})
	return s.db, s.err
}
