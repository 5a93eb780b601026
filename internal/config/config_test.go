package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[parse]
max_file_kb = 64
workers = 3
exclude = ["vendor/", "*.gen.c"]

[cache]
path = "/tmp/ctree.db"
ttl_hours = 2

[ui]
syntax_theme = "monokai"
excerpt_width = 80
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
	if got := cfg.Parse.MaxFileBytes(); got != 64<<10 {
		t.Errorf("MaxFileBytes = %d", got)
	}
	if got := cfg.Parse.WorkersOrDefault(); got != 3 {
		t.Errorf("WorkersOrDefault = %d", got)
	}
	if len(cfg.Parse.Exclude) != 2 {
		t.Errorf("exclude = %v", cfg.Parse.Exclude)
	}
	if p, _ := cfg.Cache.PathOrDefault(); p != "/tmp/ctree.db" {
		t.Errorf("cache path = %q", p)
	}
	if cfg.Cache.CacheTTLOrDefault() != 2 {
		t.Errorf("ttl = %d", cfg.Cache.CacheTTLOrDefault())
	}
	if cfg.UI.SyntaxThemeOrDefault() != "monokai" || cfg.UI.ExcerptWidthOrDefault() != 80 {
		t.Errorf("ui = %+v", cfg.UI)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
	if cfg.Parse.MaxFileBytes() != 1<<20 {
		t.Errorf("MaxFileBytes = %d", cfg.Parse.MaxFileBytes())
	}
	if cfg.Parse.WorkersOrDefault() < 1 {
		t.Errorf("WorkersOrDefault = %d", cfg.Parse.WorkersOrDefault())
	}
	if cfg.Cache.CacheTTLOrDefault() != 24 {
		t.Errorf("ttl = %d", cfg.Cache.CacheTTLOrDefault())
	}
	if cfg.UI.SyntaxThemeOrDefault() != "vulcan" || cfg.UI.ExcerptWidthOrDefault() != 100 {
		t.Errorf("ui = %+v", cfg.UI)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "[log\nlevel = 1"))
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CTREE_LOG_LEVEL", "warn")
	t.Setenv("CTREE_CACHE_PATH", "/var/cache/ctree.db")
	t.Setenv("CTREE_THEME", "dracula")
	t.Setenv("CTREE_WORKERS", "2")

	cfg, err := Load(writeConfig(t, "[log]\nlevel = \"debug\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q", cfg.Log.Level)
	}
	if cfg.Cache.Path != "/var/cache/ctree.db" {
		t.Errorf("cache path = %q", cfg.Cache.Path)
	}
	if cfg.UI.SyntaxTheme != "dracula" {
		t.Errorf("theme = %q", cfg.UI.SyntaxTheme)
	}
	if cfg.Parse.Workers != 2 {
		t.Errorf("workers = %d", cfg.Parse.Workers)
	}
}

func TestLoad_BadWorkersEnv(t *testing.T) {
	t.Setenv("CTREE_WORKERS", "many")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "CTREE_WORKERS") {
		t.Errorf("err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []string
	}{
		{
			name: "valid",
			cfg:  Config{Log: LogConfig{Level: "debug"}},
		},
		{
			name:    "bad level",
			cfg:     Config{Log: LogConfig{Level: "loud"}},
			wantErr: []string{"log.level"},
		},
		{
			name: "negatives",
			cfg: Config{
				Log:   LogConfig{Level: "info"},
				Parse: ParseConfig{MaxFileKB: -1, Workers: -2},
				Cache: CacheConfig{TTLHours: -3},
			},
			wantErr: []string{"parse.max_file_kb", "parse.workers", "cache.ttl_hours"},
		},
		{
			name:    "narrow excerpt",
			cfg:     Config{Log: LogConfig{Level: "info"}, UI: UIConfig{ExcerptWidth: 5}},
			wantErr: []string{"ui.excerpt_width"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}
