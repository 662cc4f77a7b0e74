package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/config"
	"github.com/nexussfan/virtual-lunduke/internal/detect"
	"github.com/nexussfan/virtual-lunduke/internal/doctor"
	"github.com/nexussfan/virtual-lunduke/internal/errors"
	"github.com/nexussfan/virtual-lunduke/internal/logging"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose detection problems",
	Long: `Run diagnostic checks on the configuration, the host platform, the
package database bindings and the catalog files.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	Args:    userArgs(cobra.NoArgs),
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.NewUserError(
			errors.New("flags --json, --quiet, and --verbose are mutually exclusive"),
			"pick one output mode")
	}

	return nil
}

// doctorRunner registers the checks in the order they are reported.
func doctorRunner(cmd *cobra.Command) *doctor.Runner {
	c := loadedConfig()
	logger := logging.FromContext(cmd.Context())

	runner := doctor.NewRunner()
	runner.AddCheck(doctor.NewConfigCheck(config.Used(), configLoadErr, c.DataDir))
	runner.AddCheck(doctor.NewPlatformCheck(probeHost, c.Platform.Family))

	var tag detect.Tag
	if host, err := probeHost(cmd.Context()); err == nil {
		_, tag, _ = detect.Select(host.WithFamily(c.Platform.Family))
	}
	runner.AddCheck(doctor.NewBackendCheck(tag, detectOptions(c, tag, logger)...))

	loader, err := catalog.Resolve(c.DataDir)
	if err != nil {
		// Reported by the config check.
		loader = catalog.NewLoader(catalog.Embedded())
	}
	if tag != "" {
		runner.AddCheck(doctor.NewCatalogCheck(loader, tag))
	} else {
		runner.AddCheck(doctor.NewCatalogCheck(loader))
	}
	return runner
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	report := doctorRunner(cmd).Run(cmd.Context())

	if err := outputDoctorReport(cmd.OutOrStdout(), report); err != nil {
		return err
	}

	// Determine exit code based on results
	if report.HasErrors() {
		return errDoctorErrors
	}
	if report.HasWarnings() {
		return errDoctorWarnings
	}
	return nil
}

func outputDoctorReport(w io.Writer, report *doctor.DoctorReport) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(w, report)
	}

	return outputDoctorText(w, report)
}

func outputDoctorJSON(w io.Writer, report *doctor.DoctorReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encoding JSON")
}

func outputDoctorText(w io.Writer, report *doctor.DoctorReport) error {
	// In normal mode, show only errors and warnings
	// In verbose mode, show all checks
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	// Print summary
	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
	return err
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// errDoctorWarnings carries exit code 1.
var errDoctorWarnings = errors.NewExitError(errors.New("doctor found warnings"), errors.ExitUser)

// errDoctorErrors carries exit code 2.
var errDoctorErrors = errors.NewExitError(errors.New("doctor found errors"), errors.ExitSystem)
