package doctor

import (
	"context"

	"github.com/nexussfan/virtual-lunduke/internal/paths"
)

// ConfigCheck reports the outcome of loading the configuration file.
type ConfigCheck struct {
	path    string
	loadErr error
	dataDir string
}

var _ Check = (*ConfigCheck)(nil)

// NewConfigCheck creates a check over an already attempted load. path is the
// file that was read, empty when defaults were used; loadErr is the error the
// load returned. A non-empty dataDir must name an existing directory.
func NewConfigCheck(path string, loadErr error, dataDir string) *ConfigCheck {
	return &ConfigCheck{path: path, loadErr: loadErr, dataDir: dataDir}
}

// Name returns the unique identifier for this check.
func (c *ConfigCheck) Name() string {
	return "config-file"
}

// Category returns the grouping for this check.
func (c *ConfigCheck) Category() string {
	return "config"
}

// Run reports load and data directory problems.
func (c *ConfigCheck) Run(_ context.Context) *CheckResult {
	if c.loadErr != nil {
		res := newResult(c, SeverityError, c.loadErr.Error())
		if c.path != "" {
			res.Details["path"] = c.path
		}
		res.FixHint = "fix the file or regenerate it with: virtual-lunduke init --force"
		return res
	}

	if c.dataDir != "" && !paths.DirExists(c.dataDir) {
		res := newResult(c, SeverityError, "data directory does not exist: "+c.dataDir)
		res.Details["data_dir"] = c.dataDir
		res.FixHint = "create the directory or unset data_dir"
		return res
	}

	if c.path == "" {
		return newResult(c, SeverityInfo, "no config file found, using defaults")
	}
	res := newResult(c, SeverityPass, "loaded "+c.path)
	res.Details["path"] = c.path
	return res
}
