package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check APP...",
	Short: "Check whether the named applications are installed",
	Long: `Check the named applications only, in the order given.

Each name must appear in this platform's catalog; an unknown name is an
error rather than a silent miss. Use --list-apps to see valid names.`,
	Example: `  # Check two applications
  virtual-lunduke check firefox chromium

  # With notes, as YAML
  virtual-lunduke check -n -o yaml firefox`,
	Args: userArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd, args)
	},
}
