package doctor

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/detect"
)

// CatalogCheck verifies that the data set loads and is consistent.
type CatalogCheck struct {
	loader *catalog.Loader
	tags   []detect.Tag
}

var _ Check = (*CatalogCheck)(nil)

// NewCatalogCheck creates a catalog check for the platform catalogs of tags.
// With no tags every supported platform catalog is checked.
func NewCatalogCheck(loader *catalog.Loader, tags ...detect.Tag) *CatalogCheck {
	if len(tags) == 0 {
		tags = detect.Tags()
	}
	return &CatalogCheck{loader: loader, tags: tags}
}

// Name returns the unique identifier for this check.
func (c *CatalogCheck) Name() string {
	return "catalog"
}

// Category returns the grouping for this check.
func (c *CatalogCheck) Category() string {
	return "catalog"
}

// Run loads the data set and compares it with each platform catalog.
func (c *CatalogCheck) Run(_ context.Context) *CheckResult {
	data, err := c.loader.LoadData()
	if err != nil {
		res := newResult(c, SeverityError, "loading applications: "+err.Error())
		res.FixHint = "fix or remove the file in the data directory"
		return res
	}

	sources := make([]string, 0, len(c.loader.Sources))
	for _, src := range c.loader.Sources {
		sources = append(sources, src.Name)
	}

	details := map[string]any{
		"sources": sources,
		"apps":    len(data.Apps),
	}

	var problems, warnings []string
	for _, tag := range c.tags {
		cat, err := c.loader.LoadPlatform(string(tag))
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		details[string(tag)] = len(cat)
		if missing := data.Missing(cat); len(missing) > 0 {
			details[string(tag)+"_missing"] = missing
		}
		for _, name := range cat.Names() {
			if !slices.Contains(data.Apps, name) {
				warnings = append(warnings, fmt.Sprintf("%s lists %s, which is not in apps", tag, name))
			}
		}
	}
	if un := data.Unannotated(); len(un) > 0 {
		details["unannotated"] = un
	}

	switch {
	case len(problems) > 0:
		res := newResult(c, SeverityError, strings.Join(problems, "; "))
		res.Details = details
		res.FixHint = "each platform catalog maps application names to non-empty package lists"
		return res
	case len(warnings) > 0:
		res := newResult(c, SeverityWarning, strings.Join(warnings, "; "))
		res.Details = details
		res.FixHint = "add the application to apps or remove it from the platform catalog"
		return res
	default:
		res := newResult(c, SeverityPass, fmt.Sprintf("%d applications loaded from %s", len(data.Apps), strings.Join(sources, ", ")))
		res.Details = details
		return res
	}
}
