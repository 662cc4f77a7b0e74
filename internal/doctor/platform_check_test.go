package doctor

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexussfan/virtual-lunduke/internal/detect"
)

func staticHost(h detect.Host) detect.HostProber {
	return func(context.Context) (detect.Host, error) {
		return h, nil
	}
}

func TestPlatformCheck_Identity(t *testing.T) {
	c := NewPlatformCheck(nil, "")
	assert.Equal(t, "platform-detection", c.Name())
	assert.Equal(t, "platform", c.Category())
}

func TestPlatformCheck_Run(t *testing.T) {
	tests := []struct {
		name    string
		host    detect.Host
		family  string
		status  Severity
		wantTag string
	}{
		{
			name:    "ubuntu",
			host:    detect.Host{OS: "linux", Platform: "ubuntu", Family: "debian"},
			status:  SeverityPass,
			wantTag: "apt",
		},
		{
			name:    "freebsd",
			host:    detect.Host{OS: "freebsd", Platform: "freebsd"},
			status:  SeverityPass,
			wantTag: "pkg",
		},
		{
			name:   "fedora",
			host:   detect.Host{OS: "linux", Platform: "fedora", Family: "rhel"},
			status: SeverityError,
		},
		{
			name:    "family override",
			host:    detect.Host{OS: "linux", Platform: "devuan", Family: ""},
			family:  "debian",
			status:  SeverityPass,
			wantTag: "apt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewPlatformCheck(staticHost(tt.host), tt.family)
			res := c.Run(t.Context())
			require.NotNil(t, res)

			assert.Equal(t, "platform-detection", res.Name)
			assert.Equal(t, tt.status, res.Status, res.Message)
			assert.Equal(t, tt.host.OS, res.Details["os"])

			if tt.wantTag != "" {
				assert.Equal(t, tt.wantTag, res.Details["tag"])
			} else {
				assert.NotContains(t, res.Details, "tag")
				assert.NotEmpty(t, res.FixHint)
			}
			if tt.family != "" {
				assert.Equal(t, tt.family, res.Details["family_override"])
				assert.Equal(t, tt.family, res.Details["family"])
			}
		})
	}
}

func TestPlatformCheck_ProbeError(t *testing.T) {
	probe := func(context.Context) (detect.Host, error) {
		return detect.Host{}, errors.New("no host info")
	}
	res := NewPlatformCheck(probe, "").Run(t.Context())

	assert.Equal(t, SeverityError, res.Status)
	assert.Contains(t, res.Message, "no host info")
	assert.NotEmpty(t, res.FixHint)
}

func TestPlatformCheck_RealHost(t *testing.T) {
	res := NewPlatformCheck(nil, "").Run(t.Context())
	require.NotNil(t, res)

	switch res.Status {
	case SeverityPass, SeverityError:
	default:
		t.Errorf("unexpected status %v", res.Status)
	}
}
