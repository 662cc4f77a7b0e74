package detect

import (
	"context"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v3/host"
)

// HostProber reads the identity of the running host. ProbeHost is the
// production implementation.
type HostProber func(ctx context.Context) (Host, error)

var _ HostProber = ProbeHost

// ProbeHost reads the identity of the running host.
func ProbeHost(ctx context.Context) (Host, error) {
	info, err := host.InfoWithContext(ctx)
	// Partial information comes back alongside warnings; only a nil result is fatal.
	if err != nil && info == nil {
		return Host{}, errors.Wrap(err, "reading host information")
	}

	h := Host{
		OS:       info.OS,
		Platform: info.Platform,
		Family:   info.PlatformFamily,
		Version:  info.PlatformVersion,
		Hostname: info.Hostname,
	}
	if h.OS == "" {
		h.OS = runtime.GOOS
	}
	return h, nil
}
