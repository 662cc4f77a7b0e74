package report

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/scan"
)

// ColumnWidth is the width text rows pad their columns to.
const ColumnWidth = 20

// Format specifies the output format of a report.
type Format string

const (
	// FormatText produces the fixed-width table.
	FormatText Format = "text"
	// FormatJSON produces an indented JSON document.
	FormatJSON Format = "json"
	// FormatYAML produces a YAML document.
	FormatYAML Format = "yaml"
	// FormatTOML produces a TOML document.
	FormatTOML Format = "toml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat validates s as a Format. The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	f := Format(strings.ToLower(s))
	if !slices.Contains(Formats(), f) {
		return "", errors.Newf("unknown output format %q (want text, json, yaml or toml)", s)
	}
	return f, nil
}

// Options controls what a report contains.
type Options struct {
	// Notes adds each application's note.
	Notes bool

	// Alternatives adds each application's suggested replacements.
	Alternatives bool

	// Hostname names the host in the header.
	Hostname string

	// Tag and Binding describe the detection system for machine formats.
	Tag     string
	Binding string
}

// Finding is one installed application.
type Finding struct {
	App          string   `json:"app" yaml:"app" toml:"app"`
	Packages     []string `json:"packages" yaml:"packages" toml:"packages"`
	Note         string   `json:"note,omitempty" yaml:"note,omitempty" toml:"note,omitempty"`
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty" toml:"alternatives,omitempty"`
}

// Document is the machine-readable form of a report.
type Document struct {
	Host     string    `json:"host" yaml:"host" toml:"host"`
	Tag      string    `json:"tag" yaml:"tag" toml:"tag"`
	Binding  string    `json:"binding" yaml:"binding" toml:"binding"`
	Findings []Finding `json:"findings" yaml:"findings" toml:"findings"`
}

// NewDocument collects the found entries, in order, annotated from data as
// opts allows. data may be nil when no annotations are wanted.
func NewDocument(entries []scan.Entry, data *catalog.Data, opts Options) Document {
	doc := Document{
		Host:     opts.Hostname,
		Tag:      opts.Tag,
		Binding:  opts.Binding,
		Findings: []Finding{},
	}

	for _, e := range scan.Found(entries) {
		f := Finding{App: e.App, Packages: e.Result.Packages()}
		if data != nil {
			if opts.Notes {
				f.Note = data.Notes[e.App]
			}
			if opts.Alternatives {
				f.Alternatives = slices.Clone(data.Alternatives[e.App])
			}
		}
		doc.Findings = append(doc.Findings, f)
	}
	return doc
}
