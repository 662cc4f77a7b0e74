package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Reporter formats and writes reports.
type Reporter struct {
	out    io.Writer
	format Format
	opts   Options
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format, opts Options) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
		opts:   opts,
	}
}

// Report writes doc to the output.
func (r *Reporter) Report(doc Document) error {
	switch r.format {
	case FormatJSON:
		return r.reportJSON(doc)
	case FormatYAML:
		return r.reportYAML(doc)
	case FormatTOML:
		return r.reportTOML(doc)
	default:
		return r.reportText(doc)
	}
}

func (r *Reporter) reportJSON(doc Document) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(doc), "encoding JSON report")
}

func (r *Reporter) reportYAML(doc Document) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding YAML report")
	}
	return errors.Wrap(encoder.Close(), "encoding YAML report")
}

func (r *Reporter) reportTOML(doc Document) error {
	return errors.Wrap(toml.NewEncoder(r.out).Encode(doc), "encoding TOML report")
}

func (r *Reporter) reportText(doc Document) error {
	if len(doc.Findings) == 0 {
		_, err := fmt.Fprintln(r.out, color.GreenString("No woke applications installed on %s! I'm sure Lunduke would be happy.", doc.Host))
		return err
	}

	lines := make([]string, 0, len(doc.Findings)+2)
	lines = append(lines, "\t\tWoke applications installed on "+doc.Host, "")
	for _, f := range doc.Findings {
		lines = append(lines, r.row(f))
	}
	_, err := io.WriteString(r.out, strings.Join(lines, "\n")+"\n")
	return err
}

// row renders one finding. Notes and alternatives are both aligned against
// the package column, so enabling both places them side by side.
func (r *Reporter) row(f Finding) string {
	packages := strings.Join(f.Packages, ", ")

	var sb strings.Builder
	sb.WriteString(f.App)
	sb.WriteString(pad(f.App))
	sb.WriteString(packages)
	if r.opts.Notes {
		sb.WriteString(pad(packages))
		sb.WriteString(f.Note)
	}
	if r.opts.Alternatives {
		sb.WriteString(pad(packages))
		sb.WriteString("Alternatives : ")
		sb.WriteString(strings.Join(f.Alternatives, ", "))
	}
	return sb.String()
}

// pad returns the spaces that fill s to ColumnWidth, or none when s is wider.
func pad(s string) string {
	return strings.Repeat(" ", max(0, ColumnWidth-len(s)))
}
