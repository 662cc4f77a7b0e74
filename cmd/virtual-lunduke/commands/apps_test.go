package commands

import (
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
)

func setFinder(t *testing.T, fn func(*catalog.Data) (string, error)) {
	t.Helper()
	orig := findApp
	findApp = fn
	t.Cleanup(func() { findApp = orig })
}

func TestApps_Pick(t *testing.T) {
	setupEnv(t)

	var offered []string
	setFinder(t, func(d *catalog.Data) (string, error) {
		offered = d.Apps
		return "firefox", nil
	})

	out, err := execute(t, "apps", "--pick", "-n")
	require.NoError(t, err)
	assert.Equal(t, []string{"firefox", "thunderbird", "gnome"}, offered)
	assert.Contains(t, out, "firefox-esr         Telemetry on by default")
}

func TestApps_PickAborted(t *testing.T) {
	setupEnv(t)
	setFinder(t, func(*catalog.Data) (string, error) {
		return "", fuzzyfinder.ErrAbort
	})

	out, err := execute(t, "apps", "--pick")
	require.NoError(t, err)
	assert.Empty(t, out)
}
