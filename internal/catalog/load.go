package catalog

import (
	"encoding/json"
	"io/fs"
	"os"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/nexussfan/virtual-lunduke/internal/paths"
	"github.com/nexussfan/virtual-lunduke/pkg/fileutil"
)

// File base names inside a data set.
const (
	AppsFile         = "apps"
	NotesFile        = "notes"
	AlternativesFile = "alternatives"
)

// Extensions lists the accepted file extensions in lookup order.
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

var (
	// ErrNotFound is returned when no source provides a required file.
	ErrNotFound = errors.New("catalog file not found")

	// ErrDataDir is returned by Resolve when an explicit data directory is unusable.
	ErrDataDir = errors.New("data directory not usable")
)

// Source is one place data files are read from.
type Source struct {
	// Name identifies the source in diagnostics: a directory path or "embedded".
	Name string
	FS   fs.FS
}

// DirSource returns a Source reading from the directory dir.
func DirSource(dir string) Source {
	return Source{Name: dir, FS: os.DirFS(dir)}
}

// Loader reads data files from an ordered list of sources.
type Loader struct {
	Sources []Source
}

// NewLoader returns a Loader over sources, consulted in the given order.
func NewLoader(sources ...Source) *Loader {
	return &Loader{Sources: sources}
}

// Resolve builds the standard source chain: dataDir when set, the per-user
// data directory when it exists, then the embedded data set.
// A non-empty dataDir that is not a directory is an error.
func Resolve(dataDir string) (*Loader, error) {
	var sources []Source
	if dataDir != "" {
		if !paths.DirExists(dataDir) {
			return nil, errors.Wrapf(ErrDataDir, "%s is not a directory", dataDir)
		}
		sources = append(sources, DirSource(dataDir))
	}
	if user := paths.DataDir(); user != dataDir && paths.DirExists(user) {
		sources = append(sources, DirSource(user))
	}
	sources = append(sources, Embedded())
	return NewLoader(sources...), nil
}

// Locate returns the source and file name that provides base.
// The returned error wraps ErrNotFound when no source has it.
func (l *Loader) Locate(base string) (Source, string, error) {
	for _, src := range l.Sources {
		for _, ext := range Extensions {
			name := base + ext
			info, err := fs.Stat(src.FS, name)
			if err != nil || info.IsDir() {
				continue
			}
			return src, name, nil
		}
	}
	return Source{}, "", errors.Wrapf(ErrNotFound, "%s", base)
}

// LoadData reads the apps, notes and alternatives files.
// The apps file is required; notes and alternatives default to empty.
func (l *Loader) LoadData() (*Data, error) {
	d := &Data{
		Notes:        Notes{},
		Alternatives: Alternatives{},
	}

	apps, err := l.loadApps()
	if err != nil {
		return nil, err
	}
	d.Apps = apps

	if err := l.loadOptional(NotesFile, &d.Notes); err != nil {
		return nil, err
	}
	if err := l.loadOptional(AlternativesFile, &d.Alternatives); err != nil {
		return nil, err
	}
	return d, nil
}

// LoadPlatform reads and validates the catalog for one platform tag.
func (l *Loader) LoadPlatform(tag string) (Catalog, error) {
	if tag == "" || path.Base(tag) != tag || tag == "." || tag == ".." {
		return nil, errors.Newf("invalid platform tag %q", tag)
	}

	var c Catalog
	if err := l.load(tag, &c); err != nil {
		return nil, errors.Wrapf(err, "loading %s catalog", tag)
	}
	if c == nil {
		c = Catalog{}
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s catalog", tag)
	}
	return c, nil
}

func (l *Loader) loadApps() ([]string, error) {
	src, name, err := l.Locate(AppsFile)
	if err != nil {
		return nil, err
	}
	data, err := fileutil.ReadFileWithLimit(src.FS, name, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s from %s", name, src.Name)
	}

	var apps []string
	if path.Ext(name) == ".toml" {
		var doc struct {
			Apps []string `toml:"apps"`
		}
		err = toml.Unmarshal(data, &doc)
		apps = doc.Apps
	} else {
		err = decode(name, data, &apps)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s from %s", name, src.Name)
	}
	return apps, nil
}

func (l *Loader) loadOptional(base string, v any) error {
	err := l.load(base, v)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (l *Loader) load(base string, v any) error {
	src, name, err := l.Locate(base)
	if err != nil {
		return err
	}
	data, err := fileutil.ReadFileWithLimit(src.FS, name, 0)
	if err != nil {
		return errors.Wrapf(err, "reading %s from %s", name, src.Name)
	}
	if err := decode(name, data, v); err != nil {
		return errors.Wrapf(err, "decoding %s from %s", name, src.Name)
	}
	return nil
}

func decode(name string, data []byte, v any) error {
	switch path.Ext(name) {
	case ".json":
		return json.Unmarshal(data, v)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	case ".toml":
		return toml.Unmarshal(data, v)
	default:
		return errors.Newf("unsupported catalog format %q", path.Ext(name))
	}
}
