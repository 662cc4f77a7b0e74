package doctor

import (
	"context"
	"fmt"

	"github.com/nexussfan/virtual-lunduke/internal/detect"
)

// PlatformCheck verifies that the host maps to a detection system.
type PlatformCheck struct {
	probe  detect.HostProber
	family string
}

// Ensure PlatformCheck implements Check interface.
var _ Check = (*PlatformCheck)(nil)

// NewPlatformCheck creates a platform check. A nil probe uses
// detect.ProbeHost; a non-empty family overrides the probed family.
func NewPlatformCheck(probe detect.HostProber, family string) *PlatformCheck {
	if probe == nil {
		probe = detect.ProbeHost
	}
	return &PlatformCheck{probe: probe, family: family}
}

// Name returns the unique identifier for this check.
func (c *PlatformCheck) Name() string {
	return "platform-detection"
}

// Category returns the grouping for this check.
func (c *PlatformCheck) Category() string {
	return "platform"
}

// Run probes the host and selects its detection system.
func (c *PlatformCheck) Run(ctx context.Context) *CheckResult {
	host, err := c.probe(ctx)
	if err != nil {
		res := newResult(c, SeverityError, "could not identify host: "+err.Error())
		res.FixHint = "set platform.family in the config file or pass --platform-family"
		return res
	}
	host = host.WithFamily(c.family)

	_, tag, err := detect.Select(host)

	details := map[string]any{
		"os":       host.OS,
		"platform": host.Platform,
		"family":   host.Family,
		"version":  host.Version,
	}
	if c.family != "" {
		details["family_override"] = c.family
	}

	if err != nil {
		res := newResult(c, SeverityError, fmt.Sprintf("%s is not supported", host))
		res.Details = details
		res.FixHint = "supported hosts are Debian-family Linux, FreeBSD and DragonFly BSD"
		return res
	}

	details["tag"] = string(tag)
	res := newResult(c, SeverityPass, fmt.Sprintf("%s uses the %s detection system", host, tag))
	res.Details = details
	return res
}
