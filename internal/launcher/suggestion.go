package launcher

import "github.com/MrSnakeDoc/tacto/internal/domain"

// Kind groups suggestions by where they came from.
type Kind string

const (
	KindCommand  Kind = "command"
	KindBookmark Kind = "bookmark"
	KindApp      Kind = "app"
	KindFile     Kind = "file"
	KindWeb      Kind = "web"
)

// Suggestion is one row of the launcher list.
type Suggestion struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
	Kind     Kind   `json:"kind"`

	action func()
}

// Run invokes the suggestion's action. Actions are fire-and-forget.
func (s Suggestion) Run() {
	if s.action != nil {
		s.action()
	}
}

// Actions are the side effects a suggestion can trigger.
type Actions interface {
	OpenTasks()
	NewTask(name string)
	StartPomodoro(minutes int) // 0 means the configured default
	OpenClipboard(filter string)
	SearchWeb(query string)
	OpenURL(url string)
	LaunchApp(path string)
	OpenFile(path string)
}

func appSuggestion(a Actions, h domain.Hit) Suggestion {
	path := h.Path
	return Suggestion{
		ID:       "app:" + path,
		Title:    "Launch " + h.DisplayName(),
		Subtitle: path,
		Kind:     KindApp,
		action:   func() { a.LaunchApp(path) },
	}
}

func fileSuggestion(a Actions, h domain.Hit) Suggestion {
	path := h.Path
	return Suggestion{
		ID:       "file:" + path,
		Title:    "Open " + h.DisplayName(),
		Subtitle: path,
		Kind:     KindFile,
		action:   func() { a.OpenFile(path) },
	}
}
