package launcher

import (
	"testing"

	"github.com/MrSnakeDoc/tacto/internal/domain"
)

type staticBookmarks []*domain.Bookmark

func (s staticBookmarks) GetAllBookmarks() []*domain.Bookmark { return s }

func TestCommands_Defaults(t *testing.T) {
	c := NewCommands(newRecordingActions(), nil)

	got := c.Defaults()
	wantKeywords := []string{"tasks", "pomodoro", "clip", "task"}
	if len(got) != len(wantKeywords) {
		t.Fatalf("Defaults() has %d entries, want %d", len(got), len(wantKeywords))
	}
	for i, s := range got {
		if s.Keyword != wantKeywords[i] {
			t.Errorf("Defaults()[%d].Keyword = %q, want %q", i, s.Keyword, wantKeywords[i])
		}
		if s.Title != defaultTitles[i] {
			t.Errorf("Defaults()[%d].Title = %q, want %q", i, s.Title, defaultTitles[i])
		}
	}
}

func TestCommands_Grammars(t *testing.T) {
	tests := []struct {
		query      string
		wantTitle  string
		wantAction string
	}{
		{query: "pomodoro 15", wantTitle: "Start timer for 15 minutes", wantAction: "pomodoro:15"},
		{query: "timer 1 min", wantTitle: "Start timer for 1 minute", wantAction: "pomodoro:1"},
		{query: "Focus 50m", wantTitle: "Start timer for 50 minutes", wantAction: "pomodoro:50"},
		{query: "start timer for 20 minutes", wantTitle: "Start timer for 20 minutes", wantAction: "pomodoro:20"},
		{query: "start a pomodoro for 45", wantTitle: "Start timer for 45 minutes", wantAction: "pomodoro:45"},
		{query: "task buy milk", wantTitle: "Create task “buy milk”", wantAction: "task:buy milk"},
		{query: "todo  call Bob ", wantTitle: "Create task “call Bob”", wantAction: "task:call Bob"},
		{query: "clip invoice", wantTitle: "Search clipboard for “invoice”", wantAction: "clip:invoice"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			actions := newRecordingActions()
			c := NewCommands(actions, nil)

			got := c.Local(tt.query)
			if len(got) == 0 {
				t.Fatalf("Local(%q) returned nothing", tt.query)
			}
			if got[0].Title != tt.wantTitle {
				t.Errorf("Local(%q)[0].Title = %q, want %q", tt.query, got[0].Title, tt.wantTitle)
			}
			got[0].Run()
			if a := actions.next(t); a != tt.wantAction {
				t.Errorf("action = %q, want %q", a, tt.wantAction)
			}
		})
	}
}

func TestCommands_TimerOutOfRange(t *testing.T) {
	c := NewCommands(newRecordingActions(), nil)

	for _, q := range []string{"timer 0", "pomodoro 601"} {
		for _, s := range c.Local(q) {
			if s.Keyword == "pomodoro" && s.ID != "cmd:pomodoro" {
				t.Errorf("Local(%q) offered %q", q, s.Title)
			}
		}
	}
}

func TestCommands_NoDefaultsForPlainText(t *testing.T) {
	c := NewCommands(newRecordingActions(), nil)

	for _, q := range []string{"a", "o", "t", "tas", "new", "pomodoro", "clip"} {
		if got := c.Local(q); len(got) != 0 {
			t.Errorf("Local(%q) = %v, want no entries", q, titles(got))
		}
	}
}

func TestCommands_Bookmarks(t *testing.T) {
	actions := newRecordingActions()
	c := NewCommands(actions, staticBookmarks{
		{ID: "1", Abbr: "gh", Title: "GitHub", URL: "https://github.com"},
		{ID: "2", Abbr: "ghp", Title: "GitHub Pages", URL: "https://pages.github.com"},
		{ID: "3", Abbr: "hn", URL: "https://news.ycombinator.com"},
	})

	got := c.Local("gh")
	if len(got) != 2 {
		t.Fatalf("Local(gh) = %v, want 2 bookmark entries", titles(got))
	}
	if got[0].Title != "Open GitHub" || got[0].Kind != KindBookmark {
		t.Errorf("first entry = %+v, want the exact abbreviation match", got[0])
	}
	got[0].Run()
	if a := actions.next(t); a != "url:https://github.com" {
		t.Errorf("action = %q", a)
	}
}

func TestCommands_Web(t *testing.T) {
	actions := newRecordingActions()
	c := NewCommands(actions, nil)

	s := c.Web("golang generics")
	if s.Title != "Search “golang generics” on the Web" {
		t.Errorf("Title = %q", s.Title)
	}
	if s.Keyword != "web" || s.Kind != KindWeb {
		t.Errorf("Keyword/Kind = %q/%q", s.Keyword, s.Kind)
	}
	s.Run()
	if a := actions.next(t); a != "web:golang generics" {
		t.Errorf("action = %q", a)
	}
}
