// Package config provides configuration management for virtual-lunduke using Viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	vlerrors "github.com/nexussfan/virtual-lunduke/internal/errors"
	"github.com/nexussfan/virtual-lunduke/internal/paths"
	"github.com/nexussfan/virtual-lunduke/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = paths.AppName

// EnvPrefix prefixes every environment variable the configuration reads,
// e.g. VLUNDUKE_JOBS or VLUNDUKE_PLATFORM_FAMILY.
const EnvPrefix = "VLUNDUKE"

// CurrentVersion is the only configuration schema version understood.
const CurrentVersion = 1

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// DataDir holds user catalogs that take precedence over the embedded set.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`

	// Notes and Alternatives enable the matching report columns.
	Notes        bool `mapstructure:"notes" yaml:"notes"`
	Alternatives bool `mapstructure:"alternatives" yaml:"alternatives"`

	// Output is the report format: text, json, yaml or toml.
	Output string `mapstructure:"output" yaml:"output"`

	// Jobs bounds concurrent application checks.
	Jobs int `mapstructure:"jobs" yaml:"jobs"`

	Platform PlatformConfig `mapstructure:"platform" yaml:"platform"`
	Apt      AptConfig      `mapstructure:"apt" yaml:"apt"`
	Pkg      PkgConfig      `mapstructure:"pkg" yaml:"pkg"`
}

// PlatformConfig overrides host identification.
type PlatformConfig struct {
	// Family replaces the probed platform family, e.g. "debian" or "freebsd".
	Family string `mapstructure:"family" yaml:"family,omitempty"`
}

// AptConfig configures the dpkg bindings.
type AptConfig struct {
	StatusFile string   `mapstructure:"status_file" yaml:"status_file,omitempty"`
	Bindings   []string `mapstructure:"bindings" yaml:"bindings,omitempty"`
}

// PkgConfig configures the pkg(8) bindings.
type PkgConfig struct {
	Database string   `mapstructure:"database" yaml:"database,omitempty"`
	Bindings []string `mapstructure:"bindings" yaml:"bindings,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Output:  "text",
		Jobs:    1,
	}
}

// ConfigDir returns the directory searched for config.yaml. The
// VLUNDUKE_CONFIG_DIR environment variable overrides the XDG location.
func ConfigDir() string {
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		return dir
	}
	return paths.ConfigDir()
}

// Init initializes Viper with default configuration.
// It resets any previous Viper state, so it may be called again to reload.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Defaults; every key needs one for AutomaticEnv to reach Unmarshal
	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("data_dir", "")
	viper.SetDefault("notes", false)
	viper.SetDefault("alternatives", false)
	viper.SetDefault("output", def.Output)
	viper.SetDefault("jobs", def.Jobs)
	viper.SetDefault("platform.family", "")
	viper.SetDefault("apt.status_file", "")
	viper.SetDefault("apt.bindings", []string{})
	viper.SetDefault("pkg.database", "")
	viper.SetDefault("pkg.bindings", []string{})
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case vlerrors.As(err, &notFound) && path == "":
			// Implicit load falls back to defaults
		case vlerrors.As(err, &notFound), os.IsNotExist(err):
			return nil, vlerrors.Wrapf(vlerrors.Mark(err, vlerrors.ErrNotFound), "config file not found at %s", path)
		default:
			// Real read error (parsing, permissions, etc)
			return nil, vlerrors.Wrap(vlerrors.Mark(err, vlerrors.ErrInvalidConfig), "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, vlerrors.Wrap(vlerrors.Mark(err, vlerrors.ErrInvalidConfig), "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, vlerrors.Wrap(vlerrors.Mark(errs[0], vlerrors.ErrInvalidConfig), "validating config")
	}

	return &cfg, nil
}

// Used returns the path of the configuration file that was read, if any.
func Used() string {
	return viper.ConfigFileUsed()
}

// Save writes cfg to path as YAML, replacing any existing file atomically.
func Save(path string, cfg *Config) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return vlerrors.Wrapf(err, "creating config directory for %s", path)
	}
	return vlerrors.Wrapf(fileutil.AtomicWriteYAML(path, cfg), "writing %s", path)
}
