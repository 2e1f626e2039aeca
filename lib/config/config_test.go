package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/icco/sunburst/lib/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DB_PATH", "SUNBURST_DATA", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent")
	}
	if cfg.Server.Port != 8080 || cfg.Database.Path != "sunburst.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Chart.Width != 700 || cfg.Chart.Height != 700 || cfg.Chart.CenterLabel != "2024" {
		t.Fatalf("unexpected chart defaults: %+v", cfg.Chart)
	}
	if cfg.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.Addr())
	}
}

func TestSampleConfigMatchesDefaults(t *testing.T) {
	clearEnv(t)
	var parsed config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &parsed); err != nil {
		t.Fatalf("parse sample: %v", err)
	}
	def := config.Default()
	if parsed.Server != def.Server || parsed.Database != def.Database || parsed.Logging != def.Logging {
		t.Fatalf("sample config drifted from defaults:\n%+v\n%+v", parsed, def)
	}
	if strings.Join(parsed.Chart.Colors, ",") != strings.Join(def.Chart.Colors, ",") {
		t.Fatalf("sample colors %v", parsed.Chart.Colors)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sunburst.toml")
	content := `
[server]
port = 9000

[chart]
width = 500
height = 400
center_label = "2025"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Server.Port != 9000 {
		t.Fatalf("port %d", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/other.db" || cfg.Logging.Level != "debug" {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	opts := cfg.ChartOptions()
	if opts.Width != 500 || opts.Height != 400 || opts.CenterLabel != "2025" || len(opts.Colors) != 4 {
		t.Fatalf("unexpected chart options: %+v", opts)
	}

	t.Setenv("PORT", "7000")
	cfg, _, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Fatalf("PORT override not applied: %d", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "zero width", content: "[chart]\nwidth = 0\n"},
		{name: "bad color", content: "[chart]\ncolors = [\"blue\"]\n"},
		{name: "bad format", content: "[logging]\nformat = \"xml\"\n"},
		{name: "unknown key", content: "[chart]\nradius = 3\n"},
		{name: "bad port env", env: map[string]string{"PORT": "http"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := filepath.Join(t.TempDir(), "sunburst.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, err := config.Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
