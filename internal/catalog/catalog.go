package catalog

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidCatalog is returned by Validate when a catalog entry is unusable.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog maps an application name to the ordered list of package names that
// count as that application on one platform family.
//
// A Catalog is not modified after it is loaded.
type Catalog map[string][]string

// Packages returns the candidate packages for app in catalog order and
// whether app is present at all.
func (c Catalog) Packages(app string) ([]string, bool) {
	pkgs, ok := c[app]
	return pkgs, ok
}

// Names returns the application names in lexical order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Validate reports entries with an empty application name, an empty
// candidate list or an empty candidate package name.
func (c Catalog) Validate() error {
	var problems []string
	for _, name := range c.Names() {
		pkgs := c[name]
		switch {
		case strings.TrimSpace(name) == "":
			problems = append(problems, "empty application name")
		case len(pkgs) == 0:
			problems = append(problems, name+": no candidate packages")
		case slices.Contains(pkgs, ""):
			problems = append(problems, name+": empty package name")
		}
	}
	if len(problems) > 0 {
		return errors.Wrap(ErrInvalidCatalog, strings.Join(problems, "; "))
	}
	return nil
}

// Notes maps an application name to a free-text note.
type Notes map[string]string

// Alternatives maps an application name to suggested replacements.
type Alternatives map[string][]string

// Data is the platform-independent part of a data set.
type Data struct {
	// Apps is the ordered list of applications a scan visits.
	Apps []string

	Notes        Notes
	Alternatives Alternatives
}

// Missing returns the entries of apps that have no catalog entry, in order.
func (d *Data) Missing(c Catalog) []string {
	var missing []string
	for _, app := range d.Apps {
		if _, ok := c[app]; !ok {
			missing = append(missing, app)
		}
	}
	return missing
}

// Unannotated returns the applications that lack a note or alternatives.
func (d *Data) Unannotated() []string {
	var out []string
	for _, app := range d.Apps {
		_, hasNote := d.Notes[app]
		_, hasAlts := d.Alternatives[app]
		if !hasNote || !hasAlts {
			out = append(out, app)
		}
	}
	return out
}
