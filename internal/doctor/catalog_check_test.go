package doctor

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/detect"
)

func memLoader(files map[string]string) *catalog.Loader {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return catalog.NewLoader(catalog.Source{Name: "memory", FS: fsys})
}

func TestCatalogCheck_Identity(t *testing.T) {
	c := NewCatalogCheck(catalog.NewLoader(catalog.Embedded()))
	assert.Equal(t, "catalog", c.Name())
	assert.Equal(t, "catalog", c.Category())
}

func TestCatalogCheck_Embedded(t *testing.T) {
	res := NewCatalogCheck(catalog.NewLoader(catalog.Embedded())).Run(t.Context())
	require.NotNil(t, res)

	assert.NotEqual(t, SeverityError, res.Status, res.Message)
	assert.Equal(t, []string{catalog.EmbeddedName}, res.Details["sources"])
	for _, tag := range detect.Tags() {
		assert.Contains(t, res.Details, string(tag))
	}
}

func TestCatalogCheck_Run(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		status Severity
	}{
		{
			name: "consistent",
			files: map[string]string{
				"apps.json":  `["firefox"]`,
				"notes.json": `{"firefox": "browser"}`,
				"apt.json":   `{"firefox": ["firefox", "firefox-esr"]}`,
			},
			status: SeverityPass,
		},
		{
			name: "catalog lists unknown app",
			files: map[string]string{
				"apps.json": `["firefox"]`,
				"apt.json":  `{"firefox": ["firefox"], "gnome": ["gnome-shell"]}`,
			},
			status: SeverityWarning,
		},
		{
			name: "missing apps file",
			files: map[string]string{
				"apt.json": `{"firefox": ["firefox"]}`,
			},
			status: SeverityError,
		},
		{
			name: "missing platform catalog",
			files: map[string]string{
				"apps.json": `["firefox"]`,
			},
			status: SeverityError,
		},
		{
			name: "empty candidate list",
			files: map[string]string{
				"apps.json": `["firefox"]`,
				"apt.json":  `{"firefox": []}`,
			},
			status: SeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewCatalogCheck(memLoader(tt.files), detect.TagApt).Run(t.Context())
			require.NotNil(t, res)

			assert.Equal(t, tt.status, res.Status, res.Message)
			if tt.status != SeverityPass {
				assert.NotEmpty(t, res.FixHint)
			}
		})
	}
}

func TestCatalogCheck_Details(t *testing.T) {
	loader := memLoader(map[string]string{
		"apps.json": `["firefox", "gnome"]`,
		"apt.json":  `{"firefox": ["firefox"]}`,
	})
	res := NewCatalogCheck(loader, detect.TagApt).Run(t.Context())

	assert.Equal(t, SeverityPass, res.Status, res.Message)
	assert.Equal(t, 2, res.Details["apps"])
	assert.Equal(t, 1, res.Details["apt"])
	assert.Equal(t, []string{"gnome"}, res.Details["apt_missing"])
	assert.Equal(t, []string{"firefox", "gnome"}, res.Details["unannotated"])
}
