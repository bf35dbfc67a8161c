package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr      string        `yaml:"listen_addr"`      // ex: "127.0.0.1:7788"
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // ex: 5s
	DataDir         string        `yaml:"data_dir"`         // root for every persisted file

	Log       LogConfig       `yaml:"log"`
	Access    AccessConfig    `yaml:"access"`
	Store     StoreConfig     `yaml:"store"`
	Launcher  LauncherConfig  `yaml:"launcher"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
	Pomodoro  PomodoroConfig  `yaml:"pomodoro"`
	Tasks     TasksConfig     `yaml:"tasks"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Pretty bool   `yaml:"pretty"` // true => zap dev (color), false => zap prod (JSON)
}

type AccessConfig struct {
	AllowedCIDRS []string `yaml:"allowed_cidrs"` // clients allowed on the control API
	AllowedHosts []string `yaml:"allowed_hosts"` // Host headers accepted (default: loopback names of listen_addr)
	TrustProxy   bool     `yaml:"trust_proxy"`   // trust X-Forwarded-For headers
	ReloadBurst  int      `yaml:"reload_burst"`  // rate limit on /reload and paste, per client
	ReloadPerMin int      `yaml:"reload_per_min"`
}

type StoreConfig struct {
	Backend string      `yaml:"backend"` // "file" | "redis"
	Dir     string      `yaml:"dir"`     // file backend directory (default: <data_dir>/store)
	Redis   RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr             string        `yaml:"addr"`
	User             string        `yaml:"username"`
	Password         string        `yaml:"password"`
	PasswordRequired bool          `yaml:"password_required"`
	DB               int           `yaml:"db"`
	DialTimeout      time.Duration `yaml:"dial_timeout"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	MaxWait          time.Duration `yaml:"max_wait"`
	PingTimeout      time.Duration `yaml:"ping_timeout"`
	PoolSize         int           `yaml:"pool_size"`
	ConnectTimeout   time.Duration `yaml:"connect_timeout"`
	RetryInterval    time.Duration `yaml:"retry_interval"`
	WarnThreshold    int           `yaml:"warn_threshold"`
}

type LauncherConfig struct {
	Debounce     time.Duration `yaml:"debounce"`      // quiet period before a query runs
	AppLimit     int           `yaml:"app_limit"`     // max application results
	FileLimit    int           `yaml:"file_limit"`    // max file results
	Backend      string        `yaml:"backend"`       // "auto" | "spotlight" | "catalog"
	SearchRoots  []string      `yaml:"search_roots"`  // roots walked by the catalog file search
	AppDirs      []string      `yaml:"app_dirs"`      // directories scanned for applications
	WebEngine    string        `yaml:"web_engine"`    // "google" | "yandex" | "duckduckgo"
	BookmarkFile string        `yaml:"bookmark_file"` // optional, empty = bookmarks disabled
}

type ClipboardConfig struct {
	Enabled      bool          `yaml:"enabled"`
	PollInterval time.Duration `yaml:"poll_interval"`
	SaveDelay    time.Duration `yaml:"save_delay"`
	MaxItems     int           `yaml:"max_items"`
	MaxBytes     int64         `yaml:"max_bytes"`
	MaxAge       time.Duration `yaml:"max_age"`
	PasteDelay   time.Duration `yaml:"paste_delay"`
}

type PomodoroConfig struct {
	DefaultMinutes int           `yaml:"default_minutes"`
	Retention      time.Duration `yaml:"retention"`
	Tick           time.Duration `yaml:"tick"`
}

type TasksConfig struct {
	DBPath string `yaml:"db_path"` // default: <data_dir>/tasks.db
}

type SchedulerConfig struct {
	CatalogInterval time.Duration `yaml:"catalog_interval"` // app directory rescan
	SweepInterval   time.Duration `yaml:"sweep_interval"`   // retention sweeps
	GCThreshold     time.Duration `yaml:"gc_threshold"`     // how long disabled entries survive
}

// Default returns the built-in configuration, before any file or environment override.
func Default() *Config {
	return &Config{
		ListenAddr:      "127.0.0.1:7788",
		ShutdownTimeout: 5 * time.Second,
		DataDir:         defaultDataDir(),
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Access: AccessConfig{
			AllowedCIDRS: []string{"127.0.0.0/8", "::1"},
			ReloadBurst:  5,
			ReloadPerMin: 30,
		},
		Store: StoreConfig{
			Backend: "file",
			Redis: RedisConfig{
				Addr:             "localhost:6379",
				User:             "default",
				PasswordRequired: false,
				DialTimeout:      5 * time.Second,
				ReadTimeout:      3 * time.Second,
				WriteTimeout:     3 * time.Second,
				MaxWait:          10 * time.Second,
				PingTimeout:      5 * time.Second,
				PoolSize:         4,
				ConnectTimeout:   30 * time.Second,
				RetryInterval:    2 * time.Second,
				WarnThreshold:    3,
			},
		},
		Launcher: LauncherConfig{
			Debounce:    120 * time.Millisecond,
			AppLimit:    6,
			FileLimit:   10,
			Backend:     "auto",
			SearchRoots: defaultSearchRoots(),
			AppDirs:     defaultAppDirs(),
			WebEngine:   "google",
		},
		Clipboard: ClipboardConfig{
			Enabled:      true,
			PollInterval: 350 * time.Millisecond,
			SaveDelay:    500 * time.Millisecond,
			MaxItems:     100,
			MaxBytes:     20 * 1024 * 1024,
			MaxAge:       30 * 24 * time.Hour,
			PasteDelay:   300 * time.Millisecond,
		},
		Pomodoro: PomodoroConfig{
			DefaultMinutes: 25,
			Retention:      7 * 24 * time.Hour,
			Tick:           time.Second,
		},
		Scheduler: SchedulerConfig{
			CatalogInterval: time.Hour,
			SweepInterval:   time.Hour,
			GCThreshold:     30 * 24 * time.Hour,
		},
	}
}

// Load builds the configuration: defaults, then the optional YAML file, then TACTO_* variables.
func Load() (*Config, error) {
	cfg := Default()
	cfg.DataDir = getenv("TACTO_DATA_DIR", cfg.DataDir)

	path, explicit := configFilePath(cfg.DataDir)
	if path != "" {
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.fillDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.Log.Level == "debug" {
		cfgCopy := *cfg
		cfgCopy.Store.Redis.Password = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg, nil
}

func configFilePath(dataDir string) (string, bool) {
	if p := os.Getenv("TACTO_CONFIG_FILE"); p != "" {
		return p, true
	}
	if dataDir == "" {
		return "", false
	}
	p := filepath.Join(dataDir, "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return "", false
	}
	return p, false
}

// loadFile overlays the YAML document at path on top of cfg. Keys absent from the
// document keep their current value.
func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	// Server settings
	c.ListenAddr = getenv("TACTO_LISTEN_ADDR", c.ListenAddr)
	c.ShutdownTimeout = mustDuration("TACTO_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)

	// Logging
	c.Log.Level = getenv("TACTO_LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = mustBool("TACTO_PRETTY_LOG", c.Log.Pretty)

	// Access restrictions
	if v := splitAndTrim(os.Getenv("TACTO_ALLOWED_CIDRS")); v != nil {
		c.Access.AllowedCIDRS = v
	}
	if v := splitAndTrim(os.Getenv("TACTO_ALLOWED_HOSTS")); v != nil {
		c.Access.AllowedHosts = v
	}
	c.Access.TrustProxy = mustBool("TACTO_TRUST_PROXY", c.Access.TrustProxy)
	c.Access.ReloadBurst = getenvInt("TACTO_RELOAD_BURST", c.Access.ReloadBurst)
	c.Access.ReloadPerMin = getenvInt("TACTO_RELOAD_PER_MIN", c.Access.ReloadPerMin)

	// Storage
	c.Store.Backend = getenv("TACTO_STORE", c.Store.Backend)
	c.Store.Dir = getenv("TACTO_STORE_DIR", c.Store.Dir)
	r := &c.Store.Redis
	r.Addr = getenv("TACTO_REDIS_ADDR", r.Addr)
	r.User = getenv("TACTO_REDIS_USERNAME", r.User)
	r.Password = getenv("TACTO_REDIS_PASSWORD", r.Password)
	r.PasswordRequired = mustBool("TACTO_REDIS_PASSWORD_REQUIRED", r.PasswordRequired)
	r.DB = getenvInt("TACTO_REDIS_DB", r.DB)
	r.DialTimeout = mustDuration("REDIS_DIAL_TIMEOUT", r.DialTimeout)
	r.ReadTimeout = mustDuration("REDIS_READ_TIMEOUT", r.ReadTimeout)
	r.WriteTimeout = mustDuration("REDIS_WRITE_TIMEOUT", r.WriteTimeout)
	r.MaxWait = mustDuration("REDIS_MAX_WAIT", r.MaxWait)
	r.PingTimeout = mustDuration("REDIS_PING_TIMEOUT", r.PingTimeout)
	r.PoolSize = getenvInt("REDIS_POOL_SIZE", r.PoolSize)
	r.ConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", r.ConnectTimeout)
	r.RetryInterval = mustDuration("REDIS_RETRY_INTERVAL", r.RetryInterval)
	r.WarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", r.WarnThreshold)

	// Launcher
	l := &c.Launcher
	l.Debounce = mustDuration("TACTO_QUERY_DEBOUNCE", l.Debounce)
	l.AppLimit = getenvInt("TACTO_APP_LIMIT", l.AppLimit)
	l.FileLimit = getenvInt("TACTO_FILE_LIMIT", l.FileLimit)
	l.Backend = getenv("TACTO_SEARCH_BACKEND", l.Backend)
	if v := splitAndTrim(os.Getenv("TACTO_SEARCH_ROOTS")); v != nil {
		l.SearchRoots = v
	}
	if v := splitAndTrim(os.Getenv("TACTO_APP_DIRS")); v != nil {
		l.AppDirs = v
	}
	l.WebEngine = getenv("TACTO_WEB_ENGINE", l.WebEngine)
	l.BookmarkFile = getenv("TACTO_BOOKMARK_FILE", l.BookmarkFile)

	// Clipboard
	cb := &c.Clipboard
	cb.Enabled = mustBool("TACTO_CLIPBOARD_ENABLED", cb.Enabled)
	cb.PollInterval = mustDuration("TACTO_CLIPBOARD_POLL_INTERVAL", cb.PollInterval)
	cb.SaveDelay = mustDuration("TACTO_CLIPBOARD_SAVE_DELAY", cb.SaveDelay)
	cb.MaxItems = getenvInt("TACTO_CLIPBOARD_MAX_ITEMS", cb.MaxItems)
	cb.MaxBytes = getenvInt64("TACTO_CLIPBOARD_MAX_BYTES", cb.MaxBytes)
	cb.MaxAge = mustDuration("TACTO_CLIPBOARD_MAX_AGE", cb.MaxAge)
	cb.PasteDelay = mustDuration("TACTO_CLIPBOARD_PASTE_DELAY", cb.PasteDelay)

	// Pomodoro
	c.Pomodoro.DefaultMinutes = getenvInt("TACTO_POMODORO_MINUTES", c.Pomodoro.DefaultMinutes)
	c.Pomodoro.Retention = mustDuration("TACTO_POMODORO_RETENTION", c.Pomodoro.Retention)

	// Tasks
	c.Tasks.DBPath = getenv("TACTO_TASKS_DB", c.Tasks.DBPath)

	// Scheduler
	c.Scheduler.CatalogInterval = mustDuration("TACTO_CATALOG_INTERVAL", c.Scheduler.CatalogInterval)
	c.Scheduler.SweepInterval = mustDuration("TACTO_SWEEP_INTERVAL", c.Scheduler.SweepInterval)
	c.Scheduler.GCThreshold = mustDuration("TACTO_GC_THRESHOLD", c.Scheduler.GCThreshold)
}

func (c *Config) fillDerived() {
	if c.Store.Dir == "" && c.DataDir != "" {
		c.Store.Dir = filepath.Join(c.DataDir, "store")
	}
	if c.Tasks.DBPath == "" && c.DataDir != "" {
		c.Tasks.DBPath = filepath.Join(c.DataDir, "tasks.db")
	}
	if c.Pomodoro.Tick <= 0 {
		c.Pomodoro.Tick = time.Second
	}
	if len(c.Access.AllowedHosts) == 0 {
		c.Access.AllowedHosts = loopbackHosts(c.ListenAddr)
	}
}

// loopbackHosts lists the Host headers a local client sends for addr.
func loopbackHosts(addr string) []string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil
	}
	hosts := []string{addr}
	for _, name := range []string{"localhost", "127.0.0.1", "[::1]"} {
		if name != host && "["+host+"]" != name {
			hosts = append(hosts, name+":"+port)
		}
	}
	return hosts
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.ListenAddr == "":
		return errors.New("listen address must not be empty")
	case c.DataDir == "":
		return errors.New("data directory could not be determined, set TACTO_DATA_DIR")
	case c.Launcher.Debounce < 0:
		return fmt.Errorf("query debounce must be >= 0, got %v", c.Launcher.Debounce)
	case c.Launcher.AppLimit <= 0:
		return fmt.Errorf("app limit must be > 0, got %d", c.Launcher.AppLimit)
	case c.Launcher.FileLimit <= 0:
		return fmt.Errorf("file limit must be > 0, got %d", c.Launcher.FileLimit)
	case c.Clipboard.PollInterval <= 0:
		return fmt.Errorf("clipboard poll interval must be > 0, got %v", c.Clipboard.PollInterval)
	case c.Clipboard.MaxItems <= 0:
		return fmt.Errorf("clipboard max items must be > 0, got %d", c.Clipboard.MaxItems)
	case c.Clipboard.MaxBytes <= 0:
		return fmt.Errorf("clipboard max bytes must be > 0, got %d", c.Clipboard.MaxBytes)
	case c.Clipboard.MaxAge <= 0:
		return fmt.Errorf("clipboard max age must be > 0, got %v", c.Clipboard.MaxAge)
	case c.Pomodoro.DefaultMinutes <= 0:
		return fmt.Errorf("pomodoro default minutes must be > 0, got %d", c.Pomodoro.DefaultMinutes)
	case c.Scheduler.CatalogInterval <= 0 || c.Scheduler.SweepInterval <= 0:
		return errors.New("scheduler intervals must be > 0")
	}

	switch c.Store.Backend {
	case "file", "redis":
	default:
		return fmt.Errorf("unknown store backend %q (want file or redis)", c.Store.Backend)
	}
	switch c.Launcher.Backend {
	case "auto", "spotlight", "catalog":
	default:
		return fmt.Errorf("unknown search backend %q (want auto, spotlight or catalog)", c.Launcher.Backend)
	}

	if c.Store.Backend == "redis" && c.Store.Redis.PasswordRequired && c.Store.Redis.Password == "" {
		return errors.New("TACTO_REDIS_PASSWORD is required when TACTO_REDIS_PASSWORD_REQUIRED=true")
	}
	return nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tacto")
}

func defaultSearchRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{home}
}

func defaultAppDirs() []string {
	dirs := []string{"/Applications", "/System/Applications", "/usr/share/applications"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, "Applications"),
			filepath.Join(home, ".local", "share", "applications"))
	}
	return dirs
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
