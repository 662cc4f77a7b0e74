package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data string
		perm os.FileMode
	}{
		{"config", "version: 1\noutput: text\n", 0o644},
		{"private", "apt:\n  status_file: /var/lib/dpkg/status\n", 0o600},
		{"empty", "", 0o644},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")

			if err := AtomicWriteFile(path, []byte(tt.data), tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.data {
				t.Errorf("content = %q, want %q", got, tt.data)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Mode().Perm() != tt.perm {
				t.Errorf("mode = %o, want %o", info.Mode().Perm(), tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_Replaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apps.json")

	if err := os.WriteFile(path, []byte(`["firefox", "chromium", "vscode"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := AtomicWriteFile(path, []byte(`["firefox"]`), 0o644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != `["firefox"]` {
		t.Errorf("content = %q", got)
	}
	assertNoTempFiles(t, dir)
}

func TestAtomicWriteFile_Errors(t *testing.T) {
	t.Run("missing parent", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "config.yaml")
		if err := AtomicWriteFile(path, []byte("x"), 0o644); err == nil {
			t.Error("expected an error for a missing parent directory")
		}
	})

	t.Run("target is a directory", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "data")
		if err := os.Mkdir(target, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(target, "apt.json"), []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := AtomicWriteFile(target, []byte("x"), 0o644); err == nil {
			t.Error("expected an error when replacing a non-empty directory")
		}
		assertNoTempFiles(t, dir)
	})
}

func TestAtomicWriteYAML(t *testing.T) {
	type platform struct {
		Family string `yaml:"family"`
	}
	type cfg struct {
		Version  int      `yaml:"version"`
		Jobs     int      `yaml:"jobs"`
		Platform platform `yaml:"platform"`
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := AtomicWriteYAML(path, cfg{Version: 1, Jobs: 4, Platform: platform{Family: "debian"}}); err != nil {
		t.Fatalf("AtomicWriteYAML() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "version: 1\njobs: 4\nplatform:\n    family: debian\n"
	if string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestAtomicWriteYAML_Unencodable(t *testing.T) {
	dir := t.TempDir()
	err := AtomicWriteYAML(filepath.Join(dir, "bad.yaml"), map[string]any{"fn": func() {}})
	if err == nil || !strings.Contains(err.Error(), "marshaling YAML") {
		t.Errorf("AtomicWriteYAML() error = %v, want marshaling error", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "bad.yaml")); !os.IsNotExist(statErr) {
		t.Error("no file should be written when encoding fails")
	}
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".virtual-lunduke-*.tmp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) > 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}
