// Package config provides configuration management for the virtual-lunduke CLI.
//
// # Configuration File
//
// The default configuration file location is
// ~/.config/virtual-lunduke/config.yaml; a config.yaml in the working
// directory takes precedence. The file uses YAML:
//
//	version: 1
//	notes: true
//	alternatives: false
//	output: text          # text, json, yaml or toml
//	jobs: 4
//	data_dir: /srv/catalogs  # optional
//	platform:
//	  family: debian      # optional override of the probed family
//	apt:
//	  status_file: /var/lib/dpkg/status
//	  bindings: [status-file, dpkg-query]
//	pkg:
//	  database: /var/db/pkg/local.sqlite
//	  bindings: [pkg-sqlite, pkg-cli]
//
// Every key can also be set from the environment with the VLUNDUKE_ prefix,
// dots replaced by underscores: VLUNDUKE_PLATFORM_FAMILY=debian.
//
// # Loading Configuration
//
// Call [Init] once, bind command-line flags to Viper, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//
// A missing file is not an error when path is empty; defaults are used.
//
// # Validation
//
// [Load] validates automatically. [Validate] returns every problem found:
//
//	for _, err := range config.Validate(cfg) {
//	    fmt.Println(err)
//	}
package config
