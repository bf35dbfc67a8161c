package domain

import "time"

// Bookmark represents an external URL that the launcher offers as a local
// command when its abbreviation matches the query.
type Bookmark struct {
	// ID is derived from the URL (stable across abbreviation changes).
	ID string `json:"id"`

	// Abbr is the short abbreviation used for matching.
	// Example: "gh", "Docker Hub"
	Abbr string `json:"abbr"`

	// Title is the human label shown in the suggestion list.
	// Falls back to Abbr when the bookmark file has none.
	Title string `json:"title"`

	// URL is the full external URL to open.
	URL string `json:"url"`

	// Group is the bookmark file category the entry came from.
	Group string `json:"group,omitempty"`

	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Disabled marks a bookmark removed from the file. It is garbage-collected later.
	Disabled bool `json:"disabled"`
}

// Label returns the text shown for the bookmark.
func (b *Bookmark) Label() string {
	if b.Title != "" {
		return b.Title
	}
	return b.Abbr
}
