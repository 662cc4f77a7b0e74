package detect

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
)

// Tag names a platform family. It selects both the catalog file and the
// detection system variant.
type Tag string

const (
	// TagApt is Debian-family Linux (dpkg database).
	TagApt Tag = "apt"

	// TagPkg is FreeBSD and DragonFly BSD (pkg(8) database).
	TagPkg Tag = "pkg"
)

// Tags returns every supported tag.
func Tags() []Tag {
	return []Tag{TagApt, TagPkg}
}

// Host identifies the running operating system.
type Host struct {
	// OS is the kernel name as reported by Go, e.g. "linux" or "freebsd".
	OS string `json:"os" yaml:"os" toml:"os"`

	// Platform is the distribution, e.g. "ubuntu" or "debian".
	Platform string `json:"platform,omitempty" yaml:"platform,omitempty" toml:"platform,omitempty"`

	// Family groups related distributions, e.g. "debian" for Ubuntu.
	Family string `json:"family,omitempty" yaml:"family,omitempty" toml:"family,omitempty"`

	// Version is the distribution version.
	Version string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`

	// Hostname is the network name of the host.
	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty" toml:"hostname,omitempty"`
}

// WithFamily returns h with Family replaced by family, unless family is empty.
func (h Host) WithFamily(family string) Host {
	if family != "" {
		h.Family = family
	}
	return h
}

func (h Host) String() string {
	s := h.OS
	if h.Platform != "" {
		s += "/" + h.Platform
	}
	if h.Family != "" && h.Family != h.Platform {
		s += fmt.Sprintf(" (%s family)", h.Family)
	}
	return s
}

// Constructor builds a System bound to cat.
type Constructor func(cat catalog.Catalog, opts ...Option) (System, error)

// Select returns the constructor and catalog tag for h. It does no I/O.
//
// Linux hosts of the debian family get the apt system. FreeBSD and
// DragonFly BSD, identified by OS or family, get the pkg system. Every
// other host fails with ErrUnsupportedPlatform.
func Select(h Host) (Constructor, Tag, error) {
	switch {
	case h.OS == "linux" && h.Family == "debian":
		return newAptSystem, TagApt, nil
	case isBSD(h.OS) || isBSD(h.Family):
		return newPkgSystem, TagPkg, nil
	}
	return nil, "", errors.Wrapf(ErrUnsupportedPlatform, "%s", h)
}

// ConstructorFor returns the constructor of tag.
func ConstructorFor(tag Tag) (Constructor, error) {
	switch tag {
	case TagApt:
		return newAptSystem, nil
	case TagPkg:
		return newPkgSystem, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedPlatform, "unknown platform tag %q", tag)
}

func isBSD(name string) bool {
	return name == "freebsd" || name == "dragonfly"
}

func newAptSystem(cat catalog.Catalog, opts ...Option) (System, error) {
	s, err := NewApt(cat, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newPkgSystem(cat catalog.Catalog, opts ...Option) (System, error) {
	s, err := NewPkg(cat, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}
