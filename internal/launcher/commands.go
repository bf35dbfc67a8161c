package launcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/tacto/internal/domain"
)

const maxTimerMinutes = 600

var (
	timerRe      = regexp.MustCompile(`(?i)^(?:pomodoro|pomo|timer|focus)\s+(\d{1,4})\s*(?:m|min|mins|minute|minutes)?$`)
	startTimerRe = regexp.MustCompile(`(?i)^start\s+(?:a\s+)?(?:timer|pomodoro)\s+for\s+(\d{1,4})\s*(?:m|min|mins|minute|minutes)?$`)
	taskRe       = regexp.MustCompile(`(?i)^(?:task|todo)\s+(.+)$`)
	clipRe       = regexp.MustCompile(`(?i)^(?:clip|clipboard)\s+(.+)$`)
)

// BookmarkSource lists the bookmarks offered as commands.
type BookmarkSource interface {
	GetAllBookmarks() []*domain.Bookmark
}

// Commands builds the suggestions that need no search: the default list, the
// grammars recognised in the query, bookmark matches and the web fallback.
type Commands struct {
	actions      Actions
	bookmarks    BookmarkSource
	maxBookmarks int
}

// NewCommands creates the local command builder. bookmarks may be nil.
func NewCommands(actions Actions, bookmarks BookmarkSource) *Commands {
	return &Commands{actions: actions, bookmarks: bookmarks, maxBookmarks: 3}
}

// Defaults is the list shown for an empty query.
func (c *Commands) Defaults() []Suggestion {
	a := c.actions
	return []Suggestion{
		{ID: "cmd:tasks", Title: "Open Tasks", Keyword: "tasks", Kind: KindCommand, action: a.OpenTasks},
		{ID: "cmd:pomodoro", Title: "Start Pomodoro", Keyword: "pomodoro", Kind: KindCommand, action: func() { a.StartPomodoro(0) }},
		{ID: "cmd:clip", Title: "Clipboard", Keyword: "clip", Kind: KindCommand, action: func() { a.OpenClipboard("") }},
		{ID: "cmd:task", Title: "New Task", Keyword: "task", Kind: KindCommand, action: func() { a.NewTask("") }},
	}
}

// Local returns the command suggestions for a non-empty, trimmed query: the
// grammar matches followed by bookmark matches. The default list never
// appears here.
func (c *Commands) Local(query string) []Suggestion {
	return append(c.parse(query), c.bookmarkMatches(query)...)
}

// Web is the trailing "search on the web" entry.
func (c *Commands) Web(query string) Suggestion {
	a := c.actions
	return Suggestion{
		ID:      "web",
		Title:   fmt.Sprintf("Search “%s” on the Web", query),
		Keyword: "web",
		Kind:    KindWeb,
		action:  func() { a.SearchWeb(query) },
	}
}

func (c *Commands) parse(query string) []Suggestion {
	a := c.actions

	for _, re := range []*regexp.Regexp{timerRe, startTimerRe} {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		minutes, err := strconv.Atoi(m[1])
		if err != nil || minutes < 1 || minutes > maxTimerMinutes {
			return nil
		}
		unit := "minutes"
		if minutes == 1 {
			unit = "minute"
		}
		return []Suggestion{{
			ID:      "cmd:timer:" + m[1],
			Title:   fmt.Sprintf("Start timer for %d %s", minutes, unit),
			Keyword: "pomodoro",
			Kind:    KindCommand,
			action:  func() { a.StartPomodoro(minutes) },
		}}
	}

	if m := taskRe.FindStringSubmatch(query); m != nil {
		name := strings.TrimSpace(m[1])
		return []Suggestion{{
			ID:      "cmd:task:new",
			Title:   fmt.Sprintf("Create task “%s”", name),
			Keyword: "task",
			Kind:    KindCommand,
			action:  func() { a.NewTask(name) },
		}}
	}

	if m := clipRe.FindStringSubmatch(query); m != nil {
		term := strings.TrimSpace(m[1])
		return []Suggestion{{
			ID:      "cmd:clip:search",
			Title:   fmt.Sprintf("Search clipboard for “%s”", term),
			Keyword: "clip",
			Kind:    KindCommand,
			action:  func() { a.OpenClipboard(term) },
		}}
	}

	return nil
}

func (c *Commands) bookmarkMatches(query string) []Suggestion {
	if c.bookmarks == nil {
		return nil
	}
	a := c.actions

	candidates := domain.RankBookmarkCandidates(query, c.bookmarks.GetAllBookmarks())
	if len(candidates) > c.maxBookmarks {
		candidates = candidates[:c.maxBookmarks]
	}

	out := make([]Suggestion, 0, len(candidates))
	for _, cand := range candidates {
		url := cand.Bookmark.URL
		out = append(out, Suggestion{
			ID:       "bookmark:" + cand.Bookmark.ID,
			Title:    "Open " + cand.Bookmark.Label(),
			Subtitle: url,
			Keyword:  "bookmark",
			Kind:     KindBookmark,
			action:   func() { a.OpenURL(url) },
		})
	}
	return out
}
