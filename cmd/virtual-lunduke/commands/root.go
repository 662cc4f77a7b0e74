// Package commands implements the CLI commands for virtual-lunduke.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nexussfan/virtual-lunduke/cmd"
	"github.com/nexussfan/virtual-lunduke/internal/config"
	"github.com/nexussfan/virtual-lunduke/internal/errors"
	"github.com/nexussfan/virtual-lunduke/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// colorFlag holds the value of the --color flag.
var colorFlag string

// logSink is the open --log-file handler, closed when logging is set up again.
var logSink *logging.FileSink

// configFile holds an explicit config file path.
var configFile string

// listApps holds the value of the -l/--list-apps flag.
var listApps bool

// cfg is the configuration loaded by initConfig, flags applied.
var cfg *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// configFlags maps config keys to the persistent flags that override them.
var configFlags = map[string]string{
	"notes":           "notes",
	"alternatives":    "alternatives",
	"data_dir":        "data-dir",
	"output":          "output",
	"jobs":            "jobs",
	"platform.family": "platform-family",
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	pf.BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	pf.StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	pf.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	pf.StringVar(&colorFlag, "color", "auto",
		"colorize output: auto, always, never")
	pf.StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/virtual-lunduke/config.yaml)")

	pf.BoolP("notes", "n", false, "show a note for each flagged application")
	pf.BoolP("alternatives", "a", false, "show alternatives for each flagged application")
	pf.String("data-dir", "", "directory holding catalog files that override the built-in ones")
	pf.StringP("output", "o", "text", "output format: text, json, yaml, toml")
	pf.IntP("jobs", "j", 1, "number of applications checked concurrently")
	pf.String("platform-family", "", "override the detected platform family (e.g. debian, freebsd)")

	rootCmd.Flags().BoolVarP(&listApps, "list-apps", "l", false,
		"list supported applications and exit")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("virtual-lunduke version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewUserError(err, "Run 'virtual-lunduke --help' for usage")
	})
}

func initConfig() {
	config.Init()
	for key, name := range configFlags {
		// Lookup only fails for names not registered above.
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
	// Capture load errors for later reporting
	cfg, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "virtual-lunduke",
	Short: "Report installed applications that appear in a curated list",
	Long: `virtual-lunduke asks the native package manager which applications from
a curated list are installed on this machine, and reports each one with
the packages that matched.

Debian-family Linux is checked through the dpkg database and FreeBSD or
DragonFly BSD through the pkg(8) database. The list of applications and
the packages that stand for them on each platform come from catalog
files built into the binary, which a data directory can override.`,
	Example: `  # Scan this machine
  virtual-lunduke

  # Include notes and alternatives
  virtual-lunduke -n -a

  # List the applications that are checked
  virtual-lunduke --list-apps

  # Machine-readable report
  virtual-lunduke -o json

  See Also: virtual-lunduke check, virtual-lunduke doctor`,
	Args: userArgs(cobra.NoArgs),
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Initialize logging first
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		if listApps {
			return runListApps(cmd)
		}
		return runScan(cmd, nil)
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose are mutually exclusive"),
			"use either --quiet or --verbose")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv(config.EnvPrefix + "_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	mode, err := logging.ParseColorMode(colorFlag)
	if err != nil {
		return errors.NewUserError(err, "use --color auto, always or never")
	}
	color.NoColor = !mode.Colorize(cmd.OutOrStdout())

	handler := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
		Color:  mode,
	}).Handler()

	if logSink != nil {
		_ = logSink.Close()
		logSink = nil
	}
	if logFile != "" {
		// File output uses JSON format
		logSink, err = logging.OpenFile(logFile, level)
		if err != nil {
			return errors.NewUserError(err, "check the --log-file path")
		}
		handler = logging.Fanout{handler, logSink}
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig reports a configuration that failed to load. The doctor,
// init, version and help commands run regardless.
func checkConfig(cmd *cobra.Command) error {
	switch cmd.Name() {
	case "help", "version", "doctor", "init":
		return nil
	}
	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	return nil
}

// loadedConfig returns the loaded configuration, or defaults when loading
// failed and the calling command tolerates it.
func loadedConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// userArgs marks positional argument errors as user errors.
func userArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return errors.NewUserError(err, fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
		}
		return nil
	}
}

// PrintError writes err and its suggestion, if any, to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "%s\n", exitErr.Suggestion)
	}
}

// Execute runs the root command. The returned error is meant for PrintError.
func Execute() error {
	return rootCmd.Execute()
}
