package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
[session]
pid = 11

[log]
level = "debug"
file = "/tmp/from-file.log"
`)
	changed := map[string]bool{"pid": true, "metrics-addr": true}
	opts := options{configPath: path, pid: 22, logLevel: "error", metricsAddr: "127.0.0.1:9100"}

	res, err := loadConfig(opts, func(name string) bool { return changed[name] })
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	cfg := res.Config
	if cfg.Session.PID != 22 {
		t.Errorf("PID = %d, want 22 from the flag", cfg.Session.PID)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug from the file (flag not set)", cfg.Log.Level)
	}
	if cfg.Log.File != "/tmp/from-file.log" {
		t.Errorf("File = %q", cfg.Log.File)
	}
	if cfg.Metrics.Listen != "127.0.0.1:9100" {
		t.Errorf("Listen = %q", cfg.Metrics.Listen)
	}
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	opts := options{configPath: filepath.Join(t.TempDir(), "missing.toml"), logLevel: "loud"}
	_, err := loadConfig(opts, func(name string) bool { return name == "log-level" })
	if err == nil || !strings.Contains(err.Error(), "config validation error") {
		t.Errorf("loadConfig() = %v, want a validation error", err)
	}
}

func TestRun_OnceWithoutProcess(t *testing.T) {
	path := writeConfig(t, "")
	stdout, _, err := execute(t, "--config", path, "--once")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(stdout, "No threads") {
		t.Errorf("stdout = %q, want No threads", stdout)
	}
}

func TestRun_ConfigWarnings(t *testing.T) {
	path := writeConfig(t, "[extra]\nkey = 1\n")
	_, stderr, err := execute(t, "--config", path, "--once")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(stderr, "threadscope: config warning") {
		t.Errorf("stderr = %q, want a config warning", stderr)
	}
}

func TestRun_BadOutputFormat(t *testing.T) {
	path := writeConfig(t, "")
	if _, _, err := execute(t, "--config", path, "--once", "--output", "xml"); err == nil {
		t.Error("expected an error for an unknown output format")
	}
}

func TestRun_AttachToGoneProcess(t *testing.T) {
	path := writeConfig(t, "")
	_, _, err := execute(t, "--config", path, "--once", "--pid", "4999999")
	if err == nil || !strings.Contains(err.Error(), "attach 4999999") {
		t.Errorf("Execute() = %v, want an attach error", err)
	}
}

func TestRun_RejectsArgs(t *testing.T) {
	if _, _, err := execute(t, "extra"); err == nil {
		t.Error("expected an error for positional arguments")
	}
}

func TestRun_OnceSelfJSON(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("procfs sessions need linux")
	}

	path := writeConfig(t, "")
	pid := strconv.Itoa(os.Getpid())
	stdout, _, err := execute(t, "--config", path, "--pid", pid, "-o", "json")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	var items []struct {
		PID     int64  `json:"pid"`
		Current bool   `json:"current"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal([]byte(stdout), &items); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout)
	}
	if len(items) == 0 {
		t.Fatal("expected at least one thread")
	}

	found := false
	for _, it := range items {
		if it.PID == int64(os.Getpid()) {
			found = true
			if !it.Current {
				t.Error("the main thread should be current after attach")
			}
		}
	}
	if !found {
		t.Errorf("main thread %d missing from %s", os.Getpid(), stdout)
	}
}
