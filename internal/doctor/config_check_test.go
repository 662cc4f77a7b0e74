package doctor

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestConfigCheck_Run(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		loadErr error
		dataDir string
		status  Severity
	}{
		{"defaults", "", nil, "", SeverityInfo},
		{"loaded", "/etc/config.yaml", nil, "", SeverityPass},
		{"load error", "/etc/config.yaml", errors.New("yaml: line 2: bad indentation"), "", SeverityError},
		{"data dir exists", "", nil, dir, SeverityInfo},
		{"data dir missing", "", nil, filepath.Join(dir, "missing"), SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewConfigCheck(tt.path, tt.loadErr, tt.dataDir)
			res := c.Run(t.Context())

			assert.Equal(t, "config-file", res.Name)
			assert.Equal(t, "config", res.Category)
			assert.Equal(t, tt.status, res.Status, res.Message)
			if tt.status == SeverityError {
				assert.NotEmpty(t, res.FixHint)
			}
		})
	}
}
