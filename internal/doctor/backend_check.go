package doctor

import (
	"context"
	"fmt"

	"github.com/nexussfan/virtual-lunduke/internal/detect"
	"github.com/nexussfan/virtual-lunduke/internal/pkgdb"
)

// BackendCheck reports which package database bindings are usable.
type BackendCheck struct {
	tag  detect.Tag
	opts []detect.Option
}

var _ Check = (*BackendCheck)(nil)

// NewBackendCheck creates a check of the bindings a tag's detection system
// would choose from. opts carry the same binding configuration the scan uses.
// An empty tag reports the check as skipped.
func NewBackendCheck(tag detect.Tag, opts ...detect.Option) *BackendCheck {
	return &BackendCheck{tag: tag, opts: opts}
}

// Name returns the unique identifier for this check.
func (c *BackendCheck) Name() string {
	return "package-database"
}

// Category returns the grouping for this check.
func (c *BackendCheck) Category() string {
	return "backend"
}

// Run evaluates every candidate binding in order of preference.
func (c *BackendCheck) Run(_ context.Context) *CheckResult {
	if c.tag == "" {
		return newResult(c, SeverityInfo, "skipped: no detection system for this host")
	}

	candidates, err := detect.Candidates(c.tag, c.opts...)
	if err != nil {
		res := newResult(c, SeverityError, err.Error())
		res.FixHint = fmt.Sprintf("valid %s bindings: %v", c.tag, detect.DefaultRegistry.Names(c.tag))
		return res
	}
	defer func() {
		for _, b := range candidates {
			_ = pkgdb.Close(b)
		}
	}()

	bindings := make(map[string]any, len(candidates))
	var selected string
	var available int
	for _, b := range candidates {
		if err := b.Available(); err != nil {
			bindings[b.Name()] = err.Error()
			continue
		}
		bindings[b.Name()] = "available"
		available++
		if selected == "" {
			selected = b.Name()
		}
	}

	details := map[string]any{
		"tag":       string(c.tag),
		"bindings":  bindings,
		"available": available,
		"total":     len(candidates),
	}

	switch {
	case selected == "":
		res := newResult(c, SeverityError, fmt.Sprintf("no %s package database binding is available", c.tag))
		res.Details = details
		res.FixHint = "check that the package database exists and is readable, or that the package tool is in PATH"
		return res
	case selected != candidates[0].Name():
		details["selected"] = selected
		res := newResult(c, SeverityWarning, fmt.Sprintf("using fallback binding %s", selected))
		res.Details = details
		res.FixHint = fmt.Sprintf("%s is unavailable: %v", candidates[0].Name(), bindings[candidates[0].Name()])
		return res
	default:
		details["selected"] = selected
		res := newResult(c, SeverityPass, fmt.Sprintf("using binding %s", selected))
		res.Details = details
		return res
	}
}
