package bookmarks

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/MrSnakeDoc/tacto/internal/domain"
)

// SourceName tags bookmarks read from the bookmark file.
const SourceName = "bookmarks"

// Map converts a parsed file into bookmarks, skipping entries without a usable
// http(s) URL. The result is sorted by ID so reloads are deterministic.
func Map(f File, now time.Time) ([]*domain.Bookmark, error) {
	var out []*domain.Bookmark
	seen := make(map[string]struct{})

	for _, group := range f {
		for groupName, list := range group {
			for _, item := range list {
				for name, entries := range item {
					if len(entries) == 0 {
						continue
					}
					entry := entries[0]
					if !validURL(entry.Href) {
						continue
					}

					id := bookmarkID(entry.Href)
					if _, dup := seen[id]; dup {
						continue
					}
					seen[id] = struct{}{}

					abbr := entry.Abbr
					if abbr == "" {
						abbr = name
					}
					out = append(out, &domain.Bookmark{
						ID:        id,
						Abbr:      abbr,
						Title:     name,
						URL:       entry.Href,
						Group:     groupName,
						Sources:   []string{SourceName},
						CreatedAt: now,
						UpdatedAt: now,
					})
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found")
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// bookmarkID is stable for a URL, whatever its abbreviation.
func bookmarkID(href string) string {
	sum := sha256.Sum256([]byte(href))
	return hex.EncodeToString(sum[:])[:16]
}
