package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-user configuration and data directories.
const AppName = "virtual-lunduke"

// ConfigFileName is the name of the configuration file inside ConfigDir.
const ConfigFileName = "config.yaml"

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux and BSD: ~/.config
// On macOS: ~/Library/Application Support
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux and BSD: ~/.local/share
// On macOS: ~/Library/Application Support
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns <ConfigHome>/virtual-lunduke.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DataDir returns <DataHome>/virtual-lunduke, where user catalogs live.
func DataDir() string {
	return filepath.Join(DataHome(), AppName)
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
