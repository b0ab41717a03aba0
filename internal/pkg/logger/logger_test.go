package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigureJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	Info().Msg("dropped")
	Warn().Str("model", "book").Msg("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line at warn level, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["level"] != "warn" || entry["message"] != "kept" || entry["model"] != "book" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatalf("expected a timestamp field")
	}
}

func TestConfigureUnknownLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got.String() != "info" {
		t.Fatalf("parseLevel(verbose) = %s, want info", got)
	}
}

// The log file should receive the same entries as the console writer.
func TestConfigureFileOutput(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "librarium.log")

	var buf bytes.Buffer
	Configure(Config{
		Level:  InfoLevel,
		Output: &buf,
		File:   FileConfig{Filename: filename, MaxSize: 1, MaxBackups: 1, MaxAge: 1},
	})
	t.Cleanup(func() {
		_ = Close()
		Configure(Config{Level: InfoLevel, Pretty: true})
	})

	Info().Msg("written to file")
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Fatalf("log file does not contain the entry: %q", data)
	}
	if !strings.Contains(buf.String(), "written to file") {
		t.Fatalf("console output does not contain the entry")
	}
}
