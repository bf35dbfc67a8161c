package domain

import (
	"path/filepath"
	"strings"
	"time"
)

// App is one launchable application known to the local catalog.
//
// The catalog is filled by scanning application directories; it is the
// search backend for platforms without a system-wide metadata index and
// the place where launch counts are learned.
type App struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier.
	// It MUST be equal to Path.
	ID string `json:"id"`

	// Path is the absolute path of the bundle or desktop entry.
	// Example: /Applications/Safari.app
	Path string `json:"path"`

	// Name is the display name, without bundle extension.
	// Example: Safari
	Name string `json:"name"`

	// ─────────────────────────────
	// Provenance & observation
	// ─────────────────────────────

	// Sources indicates where this app was discovered from.
	// Example: appdirs, store
	Sources []string `json:"sources,omitempty"`

	// LastSeenAt is updated whenever a directory scan observes the app.
	LastSeenAt time.Time `json:"last_seen_at"`

	// ─────────────────────────────
	// Learning & persistence
	// ─────────────────────────────

	// Counter is the number of launches through the launcher.
	Counter int64 `json:"counter"`

	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	LastUsedAt time.Time `json:"last_used_at"`

	// ─────────────────────────────
	// Liveness & cleanup
	// ─────────────────────────────

	// Disabled marks an app that vanished from disk. It is garbage-collected later.
	Disabled bool `json:"disabled"`
}

// HasSource reports whether src is one of the app's provenance sources.
func (a *App) HasSource(src string) bool {
	for _, s := range a.Sources {
		if s == src {
			return true
		}
	}
	return false
}

// applicationExts lists the path extensions that denote an application.
var applicationExts = []string{".app", ".desktop"}

// IsApplicationPath reports whether path names an application bundle or desktop entry.
func IsApplicationPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, "/")))
	for _, e := range applicationExts {
		if ext == e {
			return true
		}
	}
	return false
}

// AppName derives the display name of an application from its path.
// "/Applications/Visual Studio Code.app" -> "Visual Studio Code"
func AppName(path string) string {
	base := filepath.Base(strings.TrimSuffix(path, "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
