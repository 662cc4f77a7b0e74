package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexussfan/virtual-lunduke/internal/detect"
	"github.com/nexussfan/virtual-lunduke/internal/doctor"
	"github.com/nexussfan/virtual-lunduke/internal/errors"
)

func TestDoctor_Healthy(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "doctor", "--json")
	require.NoError(t, err)

	var report doctor.DoctorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 0, report.Summary.Errors)
	assert.Equal(t, 0, report.Summary.Warnings)

	names := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"config-file", "platform-detection", "package-database", "catalog"}, names)
}

func TestDoctor_Text(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "doctor")
	require.NoError(t, err)
	assert.Equal(t, "Summary: 3 passed, 1 info, 0 warnings, 0 errors\n", out)

	out, err = execute(t, "doctor", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ [platform] platform-detection:")
	assert.Contains(t, out, "ℹ [config] config-file:")
}

func TestDoctor_Errors(t *testing.T) {
	setupEnv(t)
	setHost(t, detect.Host{OS: "linux", Platform: "fedora", Family: "rhel"})

	out, err := execute(t, "doctor")
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.Code(err))
	assert.Contains(t, out, "✗ [platform] platform-detection:")
	assert.Contains(t, out, "hint:")
}

func TestDoctor_RunsWithBrokenConfig(t *testing.T) {
	setupEnv(t)
	t.Setenv("VLUNDUKE_JOBS", "0")

	out, err := execute(t, "doctor", "--quiet")
	require.Error(t, err)
	assert.Equal(t, errors.ExitSystem, errors.Code(err))
	assert.Empty(t, out)
}

func TestDoctor_FlagsMutuallyExclusive(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "doctor", "--json", "--quiet")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.Code(err))
}
