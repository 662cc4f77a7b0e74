package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/nexussfan/virtual-lunduke/internal/catalog"
	"github.com/nexussfan/virtual-lunduke/internal/detect"
	"github.com/nexussfan/virtual-lunduke/internal/scan"
)

func init() {
	color.NoColor = true
}

var testData = &catalog.Data{
	Apps: []string{"firefox", "gnome", "libreoffice"},
	Notes: catalog.Notes{
		"firefox":     "Mozilla web browser",
		"gnome":       "GNOME desktop environment",
		"libreoffice": "Office suite",
	},
	Alternatives: catalog.Alternatives{
		"firefox":     {"LibreWolf", "Pale Moon"},
		"gnome":       {"Xfce"},
		"libreoffice": {"AbiWord"},
	},
}

func testEntries() []scan.Entry {
	return []scan.Entry{
		{App: "firefox", Result: detect.NewResult([]string{"firefox-esr"})},
		{App: "gnome", Result: detect.NewResult([]string{"gnome-shell", "gnome-session"})},
		{App: "libreoffice", Result: detect.NotFound},
	}
}

func render(t *testing.T, format Format, doc Document, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewReporter(&buf, format, opts).Report(doc); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	return buf.String()
}

func TestReport_Text(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "plain",
			opts: Options{Hostname: "box"},
			want: []string{
				"\t\tWoke applications installed on box",
				"",
				"firefox             firefox-esr",
				"gnome               gnome-shell, gnome-session",
			},
		},
		{
			name: "notes",
			opts: Options{Hostname: "box", Notes: true},
			want: []string{
				"\t\tWoke applications installed on box",
				"",
				"firefox             firefox-esr         Mozilla web browser",
				"gnome               gnome-shell, gnome-sessionGNOME desktop environment",
			},
		},
		{
			name: "alternatives",
			opts: Options{Hostname: "box", Alternatives: true},
			want: []string{
				"\t\tWoke applications installed on box",
				"",
				"firefox             firefox-esr         Alternatives : LibreWolf, Pale Moon",
				"gnome               gnome-shell, gnome-sessionAlternatives : Xfce",
			},
		},
		{
			name: "notes and alternatives",
			opts: Options{Hostname: "box", Notes: true, Alternatives: true},
			want: []string{
				"\t\tWoke applications installed on box",
				"",
				"firefox             firefox-esr         Mozilla web browser         Alternatives : LibreWolf, Pale Moon",
				"gnome               gnome-shell, gnome-sessionGNOME desktop environmentAlternatives : Xfce",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument(testEntries(), testData, tt.opts)
			got := render(t, FormatText, doc, tt.opts)
			want := strings.Join(tt.want, "\n") + "\n"
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("text report mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReport_TextNoFindings(t *testing.T) {
	opts := Options{Hostname: "box", Notes: true}
	doc := NewDocument([]scan.Entry{{App: "firefox", Result: detect.NotFound}}, testData, opts)

	got := render(t, FormatText, doc, opts)
	if got != "No woke applications installed on box! I'm sure Lunduke would be happy.\n" {
		t.Errorf("got %q", got)
	}
}

func TestReport_LongApplicationName(t *testing.T) {
	opts := Options{Hostname: "box"}
	entries := []scan.Entry{{App: "a-very-long-application-name", Result: detect.NewResult([]string{"pkg"})}}

	got := render(t, FormatText, NewDocument(entries, nil, opts), opts)
	if !strings.Contains(got, "\na-very-long-application-namepkg\n") {
		t.Errorf("over-long names should not be padded, got %q", got)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", ColumnWidth},
		{"firefox", ColumnWidth - 7},
		{strings.Repeat("x", ColumnWidth), 0},
		{strings.Repeat("x", ColumnWidth+5), 0},
	}
	for _, tt := range tests {
		if got := len(pad(tt.in)); got != tt.want {
			t.Errorf("len(pad(%q)) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewDocument(t *testing.T) {
	t.Run("annotations follow options", func(t *testing.T) {
		doc := NewDocument(testEntries(), testData, Options{Hostname: "box", Tag: "apt", Binding: "status-file", Alternatives: true})
		want := Document{
			Host:    "box",
			Tag:     "apt",
			Binding: "status-file",
			Findings: []Finding{
				{App: "firefox", Packages: []string{"firefox-esr"}, Alternatives: []string{"LibreWolf", "Pale Moon"}},
				{App: "gnome", Packages: []string{"gnome-shell", "gnome-session"}, Alternatives: []string{"Xfce"}},
			},
		}
		if diff := cmp.Diff(want, doc); diff != "" {
			t.Errorf("NewDocument() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing annotation is empty", func(t *testing.T) {
		entries := []scan.Entry{{App: "gimp", Result: detect.NewResult([]string{"gimp"})}}
		doc := NewDocument(entries, testData, Options{Notes: true, Alternatives: true})
		if doc.Findings[0].Note != "" || doc.Findings[0].Alternatives != nil {
			t.Errorf("got %+v", doc.Findings[0])
		}
	})

	t.Run("no findings encodes as empty list", func(t *testing.T) {
		doc := NewDocument(nil, nil, Options{})
		if doc.Findings == nil || len(doc.Findings) != 0 {
			t.Errorf("Findings = %#v, want empty non-nil", doc.Findings)
		}
	})
}

func TestReport_MachineFormats(t *testing.T) {
	opts := Options{Hostname: "box", Tag: "pkg", Binding: "pkg-sqlite", Notes: true}
	doc := NewDocument(testEntries(), testData, opts)

	decoders := map[Format]func([]byte, any) error{
		FormatJSON: json.Unmarshal,
		FormatYAML: yaml.Unmarshal,
		FormatTOML: toml.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			out := render(t, format, doc, opts)

			var got Document
			if err := decode([]byte(out), &got); err != nil {
				t.Fatalf("decoding %s output: %v\n%s", format, err, out)
			}
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Errorf("%s document mismatch (-want +got):\n%s", format, diff)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
