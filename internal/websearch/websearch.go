// Package websearch turns launcher queries into search engine URLs.
package websearch

import (
	"fmt"
	"net/url"
	"strings"
)

type Engine string

const (
	Google     Engine = "google"
	Yandex     Engine = "yandex"
	DuckDuckGo Engine = "duckduckgo"
)

var baseURLs = map[Engine]string{
	Google:     "https://www.google.com/search?q=",
	Yandex:     "https://yandex.ru/search/?text=",
	DuckDuckGo: "https://duckduckgo.com/?q=",
}

// ParseEngine accepts an engine name in any case.
func ParseEngine(name string) (Engine, error) {
	e := Engine(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := baseURLs[e]; !ok {
		return "", fmt.Errorf("unknown web search engine %q (want google, yandex or duckduckgo)", name)
	}
	return e, nil
}

// URL builds the search URL for query. It reports false for a blank query.
func URL(query string, engine Engine) (string, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", false
	}
	base, ok := baseURLs[engine]
	if !ok {
		base = baseURLs[Google]
	}
	return base + url.QueryEscape(query), true
}

// Opener opens a URL in the user's browser.
type Opener interface {
	OpenURL(u string) error
}

// Searcher opens queries on one engine.
type Searcher struct {
	engine Engine
	opener Opener
}

func NewSearcher(engine Engine, opener Opener) *Searcher {
	return &Searcher{engine: engine, opener: opener}
}

// Open searches the web for query. A blank query does nothing.
func (s *Searcher) Open(query string) error {
	u, ok := URL(query, s.engine)
	if !ok {
		return nil
	}
	return s.opener.OpenURL(u)
}
