package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `source:
  url: "https://example.test/v2/locations/1"
  timeout_seconds: 5
logging:
  enabled: false
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source.URL != "https://example.test/v2/locations/1" {
		t.Fatalf("unexpected source.url %q", cfg.Source.URL)
	}
	if cfg.Source.Timeout() != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Source.Timeout())
	}
	if cfg.Source.UserAgent != defaultUserAgent {
		t.Fatalf("expected default user agent, got %q", cfg.Source.UserAgent)
	}
	if cfg.Source.MaxBodyBytes() != 16*1024*1024 {
		t.Fatalf("expected default body cap, got %d", cfg.Source.MaxBodyBytes())
	}
	if cfg.Logging.Enabled {
		t.Fatalf("expected logging.enabled=false")
	}
	if cfg.Logging.RetentionDays != 7 {
		t.Fatalf("expected default retention, got %d", cfg.Logging.RetentionDays)
	}
	if cfg.LoadedFrom != path {
		t.Fatalf("expected LoadedFrom=%s, got %s", path, cfg.LoadedFrom)
	}
}

func TestLoadDirectoryMergesFiles(t *testing.T) {
	dir := t.TempDir()
	first := "source:\n  url: \"https://a.test/doc\"\n  timeout_seconds: 9\n"
	second := "source:\n  url: \"https://b.test/doc\"\nlogging:\n  dir: \"/tmp/tracker-logs\"\n"
	if err := os.WriteFile(filepath.Join(dir, "10-source.yaml"), []byte(first), 0o644); err != nil {
		t.Fatalf("write first: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "20-logging.yml"), []byte(second), 0o644); err != nil {
		t.Fatalf("write second: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored: ["), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Source.URL != "https://b.test/doc" {
		t.Fatalf("expected later file to win, got %q", cfg.Source.URL)
	}
	if cfg.Source.TimeoutSeconds != 9 {
		t.Fatalf("expected timeout from first file, got %d", cfg.Source.TimeoutSeconds)
	}
	if cfg.Logging.Dir != "/tmp/tracker-logs" {
		t.Fatalf("unexpected logging.dir %q", cfg.Logging.Dir)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"scheme":    "source:\n  url: \"ftp://example.test/doc\"\n",
		"empty url": "source:\n  url: \"  \"\n",
		"timeout":   "source:\n  timeout_seconds: -1\n",
		"log dir":   "logging:\n  enabled: true\n  dir: \"\"\n",
		"retention": "logging:\n  retention_days: -2\n",
		"syntax":    "source: [\n",
	}
	for name, data := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", name, err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: expected Load to fail", name)
		}
	}
}

func TestLoadMissingPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	var buf bytes.Buffer
	cfg.Print(&buf)
	if !strings.Contains(buf.String(), "built-in defaults") || !strings.Contains(buf.String(), DefaultSourceURL) {
		t.Fatalf("unexpected Print output: %q", buf.String())
	}
}
