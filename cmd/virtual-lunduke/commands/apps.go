package commands

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/errors"
)

var appsPick bool

// findApp chooses one application interactively. Tests replace it.
var findApp = pickApp

func init() {
	appsCmd.Flags().BoolVar(&appsPick, "pick", false,
		"choose an application interactively and check it")
	rootCmd.AddCommand(appsCmd)
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List supported applications",
	Long: `List the applications that a scan checks, in scan order.

With --pick, open a fuzzy finder over the list, previewing each
application's note and alternatives, and check the chosen one.`,
	Example: `  virtual-lunduke apps
  virtual-lunduke apps --pick -n`,
	Args: userArgs(cobra.NoArgs),
	RunE: runApps,
}

func runApps(cmd *cobra.Command, _ []string) error {
	if !appsPick {
		return runListApps(cmd)
	}

	_, data, err := openCatalog(loadedConfig())
	if err != nil {
		return err
	}
	app, err := findApp(data)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}
	return runScan(cmd, []string{app})
}

func pickApp(data *catalog.Data) (string, error) {
	if len(data.Apps) == 0 {
		return "", errors.New("no applications in catalog")
	}

	idx, err := fuzzyfinder.Find(
		data.Apps,
		func(i int) string {
			return data.Apps[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			app := data.Apps[i]
			return fmt.Sprintf("%s\n\n%s\n\nAlternatives: %s",
				app,
				data.Notes[app],
				strings.Join(data.Alternatives[app], ", "),
			)
		}),
	)
	if err != nil {
		return "", err
	}
	return data.Apps[idx], nil
}
