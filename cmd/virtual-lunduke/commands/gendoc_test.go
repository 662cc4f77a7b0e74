package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexussfan/virtual-lunduke/internal/errors"
)

func TestGenDoc(t *testing.T) {
	setupEnv(t)

	tests := []struct {
		format string
		file   string
		want   string
	}{
		{"markdown", "virtual-lunduke_check.md", `title: "virtual-lunduke check"`},
		{"man", "virtual-lunduke-check.1", ".TH "},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			out, err := execute(t, "gen-doc", "--dir", dir, "--format", tt.format)
			require.NoError(t, err)
			assert.Equal(t, "Documentation generated in "+dir+"\n", out)

			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(data), tt.want), "missing %q in %s", tt.want, tt.file)
		})
	}
}

func TestGenDoc_Errors(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "gen-doc")
	assert.Equal(t, errors.ExitUser, errors.Code(err))

	_, err = execute(t, "gen-doc", "--dir", t.TempDir(), "--format", "pdf")
	assert.Equal(t, errors.ExitUser, errors.Code(err))
}

func TestLinkHandler(t *testing.T) {
	assert.Equal(t, "virtual-lunduke_check.md", linkHandler("virtual-lunduke_check.md"))
}
