package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		wantJSON bool
	}{
		{"json", FormatJSON, true},
		{"text", FormatText, false},
		{"unknown falls back to text", Format("logfmt"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: slog.LevelInfo, Format: tt.format, Output: &buf})
			logger.Info("binding selected", "binding", "status-file")

			out := buf.String()
			var parsed map[string]any
			isJSON := json.Unmarshal([]byte(out), &parsed) == nil
			if isJSON != tt.wantJSON {
				t.Fatalf("JSON output = %v, want %v: %q", isJSON, tt.wantJSON, out)
			}

			if tt.wantJSON {
				if parsed["msg"] != "binding selected" || parsed["binding"] != "status-file" || parsed["level"] != "INFO" {
					t.Errorf("unexpected record: %v", parsed)
				}
				return
			}
			for _, want := range []string{"INFO", "binding selected", "binding=status-file"} {
				if !strings.Contains(out, want) {
					t.Errorf("text output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestNew_NilOutput(t *testing.T) {
	if New(Config{Level: slog.LevelInfo}) == nil {
		t.Fatal("New with nil Output returned nil")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	levels := []slog.Level{LevelTrace, slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

	for _, floor := range levels {
		t.Run(LevelName(floor), func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: floor, Format: FormatJSON, Output: &buf})
			for _, l := range levels {
				logger.Log(t.Context(), l, "probe")
			}

			got := strings.Count(buf.String(), `"msg":"probe"`)
			want := 0
			for _, l := range levels {
				if l >= floor {
					want++
				}
			}
			if got != want {
				t.Errorf("logged %d records at min level %s, want %d", got, LevelName(floor), want)
			}
		})
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.verbosity); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace should be lower than LevelDebug")
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{LevelTrace, "TRACE"},
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelInfo, "INFO"},
		{slog.LevelWarn, "WARN"},
		{slog.LevelError, "ERROR"},
	}
	for _, tt := range tests {
		if got := LevelName(tt.level); got != tt.want {
			t.Errorf("LevelName(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestNew_JSONTraceLevelName(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelTrace, Format: FormatJSON, Output: &buf})

	logger.Log(context.Background(), LevelTrace, "querying package")

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if parsed["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", parsed["level"])
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("ForTest logger should record debug messages")
	}
	logger.Debug("visible with -v", "app", "firefox")

	tw := &testWriter{t: t}
	for _, in := range []string{"line\n", "no newline", ""} {
		n, err := tw.Write([]byte(in))
		if err != nil || n != len(in) {
			t.Errorf("Write(%q) = %d, %v", in, n, err)
		}
	}
}

func TestContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := NewContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext did not return the stored logger")
	}
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext without a logger should return slog.Default()")
	}
}
