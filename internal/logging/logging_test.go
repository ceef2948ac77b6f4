package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phuslu/log"

	"github.com/nixlim/threadscope/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"trace", log.TraceLevel},
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{" DEBUG ", log.DebugLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_NoFileDiscards(t *testing.T) {
	l := Setup(config.LogConfig{Level: "debug"})
	if l.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, want debug", l.Level())
	}

	logger := l.Component("tui")
	logger.Info().Msg("dropped")

	if err := l.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestSetup_FileWritesComponent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "threadscope.log")

	l := Setup(config.LogConfig{Level: "info", File: path, MaxSizeMB: 1, MaxBackups: 1})
	logger := l.Component("session")
	logger.Info().Int("pid", 42).Msg("attached")
	logger.Debug().Msg("below level")

	if err := l.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	content := readLogs(t, filepath.Dir(path))
	if !strings.Contains(content, `"component":"session"`) {
		t.Errorf("log should carry the component, got %q", content)
	}
	if !strings.Contains(content, `"message":"attached"`) {
		t.Errorf("log should contain the message, got %q", content)
	}
	if strings.Contains(content, "below level") {
		t.Errorf("debug entry should be filtered at info, got %q", content)
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	logger := l.Component("x")
	logger.Error().Msg("nowhere")
	if err := l.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

// readLogs concatenates every regular file under dir. FileWriter names the
// file with a timestamp and links the configured name to it.
func readLogs(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read log dir: %v", err)
	}
	var b strings.Builder
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("read %s: %v", e.Name(), err)
		}
		b.Write(data)
	}
	return b.String()
}
