package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/config"
	"github.com/nexussfan/virtual-lunduke/internal/errors"
	"github.com/nexussfan/virtual-lunduke/internal/paths"
	"github.com/nexussfan/virtual-lunduke/pkg/fileutil"
)

var (
	initForce    bool
	initWithData bool
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing files")
	initCmd.Flags().BoolVar(&initWithData, "with-data", false, "Copy the built-in catalog files into the data directory for editing")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Create the virtual-lunduke configuration file with default values.

The file is written to $XDG_CONFIG_HOME/virtual-lunduke/config.yaml, or to
$VLUNDUKE_CONFIG_DIR when set. With --with-data the built-in catalog files
are also copied to the data directory (--data-dir, or
$XDG_DATA_HOME/virtual-lunduke), where they override the built-in set.`,
	Example: `  # Create the config file
  virtual-lunduke init

  # Also export the catalogs for editing
  virtual-lunduke init --with-data

  # Force overwrite existing files
  virtual-lunduke init --force

  See Also: virtual-lunduke doctor`,
	Args: userArgs(cobra.NoArgs),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	configPath := filepath.Join(config.ConfigDir(), paths.ConfigFileName)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !initForce {
		fmt.Fprintf(w, "Configuration already exists at %s\n", configPath)
		fmt.Fprintln(w, "Use --force to overwrite")
	} else {
		if err := config.Save(configPath, config.Default()); err != nil {
			return errors.NewSystemError(err, "check permissions on the config directory")
		}
		fmt.Fprintf(w, "Created %s\n", configPath)
	}

	if !initWithData {
		return nil
	}

	dataDir := loadedConfig().DataDir
	if dataDir == "" {
		dataDir = paths.DataDir()
	}
	n, err := exportCatalog(w, catalog.Embedded().FS, dataDir, initForce)
	if err != nil {
		return errors.NewSystemError(err, "check permissions on the data directory")
	}
	fmt.Fprintf(w, "Wrote %d catalog files to %s\n", n, dataDir)
	return nil
}

// exportCatalog copies the top-level files of src into dir and returns how
// many were written. Existing files are kept unless force is set.
func exportCatalog(w io.Writer, src fs.FS, dir string, force bool) (int, error) {
	if err := paths.EnsureDir(dir, 0); err != nil {
		return 0, errors.Wrapf(err, "creating data directory %s", dir)
	}

	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		return 0, errors.Wrap(err, "reading built-in catalog")
	}

	written := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		dst := filepath.Join(dir, e.Name())
		if _, err := os.Stat(dst); err == nil && !force {
			fmt.Fprintf(w, "Skipped %s (exists)\n", dst)
			continue
		}

		data, err := fileutil.ReadFileWithLimit(src, e.Name(), 0)
		if err != nil {
			return written, errors.Wrapf(err, "reading %s", e.Name())
		}
		if err := fileutil.AtomicWriteFile(dst, data, 0o644); err != nil {
			return written, errors.Wrapf(err, "writing %s", dst)
		}
		written++
	}
	return written, nil
}
