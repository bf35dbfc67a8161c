package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", key: "TEST_DUR", value: "250ms", def: time.Second, expected: 250 * time.Millisecond},
		{name: "invalid duration falls back", key: "TEST_DUR_BAD", value: "soon", def: time.Second, expected: time.Second},
		{name: "unset uses default", key: "TEST_DUR_UNSET", def: 3 * time.Second, expected: 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}
			if got := mustDuration(tt.key, tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true", value: "true", def: false, expected: true},
		{name: "numeric false", value: "0", def: true, expected: false},
		{name: "garbage keeps default", value: "maybe", def: true, expected: true},
		{name: "unset keeps default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_BOOL", tt.value)
			}
			if got := mustBool("TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single", input: "127.0.0.1", expected: []string{"127.0.0.1"}},
		{name: "spaces and quotes", input: ` "10.0.0.0/8" , '::1' ,, `, expected: []string{"10.0.0.0/8", "::1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TACTO_DATA_DIR", dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Launcher.Debounce != 120*time.Millisecond {
		t.Errorf("Launcher.Debounce = %v, want 120ms", cfg.Launcher.Debounce)
	}
	if cfg.Launcher.AppLimit != 6 || cfg.Launcher.FileLimit != 10 {
		t.Errorf("limits = %d/%d, want 6/10", cfg.Launcher.AppLimit, cfg.Launcher.FileLimit)
	}
	if cfg.Clipboard.PollInterval != 350*time.Millisecond {
		t.Errorf("Clipboard.PollInterval = %v, want 350ms", cfg.Clipboard.PollInterval)
	}
	if cfg.Clipboard.MaxItems != 100 || cfg.Clipboard.MaxBytes != 20*1024*1024 {
		t.Errorf("clipboard limits = %d/%d", cfg.Clipboard.MaxItems, cfg.Clipboard.MaxBytes)
	}
	if cfg.Clipboard.MaxAge != 30*24*time.Hour {
		t.Errorf("Clipboard.MaxAge = %v, want 720h", cfg.Clipboard.MaxAge)
	}
	if want := filepath.Join(dir, "store"); cfg.Store.Dir != want {
		t.Errorf("Store.Dir = %q, want %q", cfg.Store.Dir, want)
	}
	if want := filepath.Join(dir, "tasks.db"); cfg.Tasks.DBPath != want {
		t.Errorf("Tasks.DBPath = %q, want %q", cfg.Tasks.DBPath, want)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	doc := []byte(`
listen_addr: 127.0.0.1:9000
log:
  level: debug
launcher:
  debounce: 200ms
  app_limit: 3
  web_engine: yandex
clipboard:
  max_items: 50
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), doc, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TACTO_DATA_DIR", dir)
	t.Setenv("TACTO_APP_LIMIT", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Errorf("ListenAddr = %q, want file value", cfg.ListenAddr)
	}
	if cfg.Launcher.Debounce != 200*time.Millisecond {
		t.Errorf("Launcher.Debounce = %v, want 200ms", cfg.Launcher.Debounce)
	}
	if cfg.Launcher.AppLimit != 4 {
		t.Errorf("Launcher.AppLimit = %d, want env override 4", cfg.Launcher.AppLimit)
	}
	if cfg.Launcher.FileLimit != 10 {
		t.Errorf("Launcher.FileLimit = %d, want default 10", cfg.Launcher.FileLimit)
	}
	if cfg.Launcher.WebEngine != "yandex" {
		t.Errorf("Launcher.WebEngine = %q, want yandex", cfg.Launcher.WebEngine)
	}
	if cfg.Clipboard.MaxItems != 50 {
		t.Errorf("Clipboard.MaxItems = %d, want 50", cfg.Clipboard.MaxItems)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Setenv("TACTO_DATA_DIR", t.TempDir())
	t.Setenv("TACTO_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Error("Load() should fail when TACTO_CONFIG_FILE points to a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Backend = "s3" }, wantErr: true},
		{name: "unknown search backend", mutate: func(c *Config) { c.Launcher.Backend = "everything" }, wantErr: true},
		{name: "zero app limit", mutate: func(c *Config) { c.Launcher.AppLimit = 0 }, wantErr: true},
		{name: "zero clipboard bytes", mutate: func(c *Config) { c.Clipboard.MaxBytes = 0 }, wantErr: true},
		{
			name: "redis password required",
			mutate: func(c *Config) {
				c.Store.Backend = "redis"
				c.Store.Redis.PasswordRequired = true
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.DataDir = t.TempDir()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoopbackHosts(t *testing.T) {
	tests := []struct {
		addr string
		want []string
	}{
		{addr: "127.0.0.1:7788", want: []string{"127.0.0.1:7788", "localhost:7788", "[::1]:7788"}},
		{addr: "localhost:9000", want: []string{"localhost:9000", "127.0.0.1:9000", "[::1]:9000"}},
		{addr: "[::1]:7788", want: []string{"[::1]:7788", "localhost:7788", "127.0.0.1:7788"}},
		{addr: "no-port", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := loopbackHosts(tt.addr); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("loopbackHosts(%q) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}
