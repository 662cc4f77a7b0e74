// Package paths resolves the directories virtual-lunduke reads its
// configuration and user-supplied catalogs from.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and the BSDs, paths follow XDG conventions:
//
//	paths.ConfigDir() // ~/.config/virtual-lunduke/
//	paths.DataDir()   // ~/.local/share/virtual-lunduke/
//
// The data directory is optional. When it exists, catalogs found there take
// precedence over the data set embedded in the binary.
package paths
