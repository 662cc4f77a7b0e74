// Package catalog loads the application catalogs that drive a scan.
//
// A data set consists of four files:
//
//	apps          ordered list of application names (scan and output order)
//	notes         application name to free-text note
//	alternatives  application name to suggested replacements
//	<tag>         application name to candidate package names for one
//	              platform family, e.g. apt or pkg
//
// Each file may be written as JSON, YAML or TOML. TOML does not allow a
// top-level array, so apps.toml stores its list under the apps key:
//
//	apps = ["firefox", "gnome"]
//
// A Loader consults its sources in order and takes every file from the
// first source that has it, so a user data directory may override a single
// platform catalog and inherit the rest from the embedded data set.
package catalog
