package domain

import "path/filepath"

// Scope restricts what a search index returns.
type Scope int

const (
	// ScopeApplications returns application bundles only.
	ScopeApplications Scope = iota
	// ScopeAll returns any file; callers drop applications themselves.
	ScopeAll
)

func (s Scope) String() string {
	if s == ScopeApplications {
		return "applications"
	}
	return "all"
}

// Hit is a single search result as produced by an index.
type Hit struct {
	Path          string `json:"path"`
	IsApplication bool   `json:"is_application"`
}

// NewHit builds a Hit, classifying the path by its extension.
func NewHit(path string) Hit {
	return Hit{Path: path, IsApplication: IsApplicationPath(path)}
}

// DisplayName is the name shown in the suggestion list.
func (h Hit) DisplayName() string {
	if h.IsApplication {
		return AppName(h.Path)
	}
	return filepath.Base(h.Path)
}
