package domain

import "testing"

func TestScoreBookmark(t *testing.T) {
	tests := []struct {
		name           string
		queryStr       string
		abbr           string
		title          string
		expectPositive bool
	}{
		{name: "exact match", queryStr: "chatgpt", abbr: "ChatGPT", expectPositive: true},
		{name: "prefix match", queryStr: "chat", abbr: "ChatGPT", expectPositive: true},
		{name: "substring match", queryStr: "gpt", abbr: "ChatGPT", expectPositive: true},
		{name: "no match", queryStr: "xyz", abbr: "ChatGPT", expectPositive: false},
		{name: "multi-word match", queryStr: "docker hub", abbr: "Docker Hub", expectPositive: true},
		{name: "title word", queryStr: "pull", abbr: "gh", title: "GitHub Pull Requests", expectPositive: true},
		{name: "blank query", queryStr: "  ", abbr: "gh", expectPositive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookmark := &Bookmark{
				ID:    "test-id",
				Abbr:  tt.abbr,
				Title: tt.title,
				URL:   "https://example.com",
			}

			score := ScoreBookmark(tt.queryStr, bookmark)

			if tt.expectPositive && score <= 0 {
				t.Errorf("Expected positive score, got %f", score)
			}
			if !tt.expectPositive && score > 0 {
				t.Errorf("Expected zero score, got %f", score)
			}
		})
	}
}

func TestScoreBookmark_AbbrBeatsTitle(t *testing.T) {
	byAbbr := ScoreBookmark("pr", &Bookmark{Abbr: "pr"})
	byTitle := ScoreBookmark("pr", &Bookmark{Abbr: "gh", Title: "Pull requests"})

	if byAbbr <= byTitle {
		t.Errorf("abbreviation score %f should beat title score %f", byAbbr, byTitle)
	}
}

func TestRankBookmarkCandidates_DisabledFilter(t *testing.T) {
	bookmarks := []*Bookmark{
		{ID: "active-bookmark", Abbr: "ChatGPT", URL: "https://chat.openai.com"},
		{ID: "disabled-bookmark", Abbr: "Chatter", URL: "https://disabled.com", Disabled: true},
		{ID: "another-active", Abbr: "GitHub", URL: "https://github.com"},
	}

	candidates := RankBookmarkCandidates("chat", bookmarks)

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Bookmark.ID != "active-bookmark" {
		t.Errorf("candidate = %s, want active-bookmark", candidates[0].Bookmark.ID)
	}
	if got := FindBestBookmark("chat", bookmarks); got == nil || got.ID != "active-bookmark" {
		t.Errorf("FindBestBookmark() = %v, want active-bookmark", got)
	}
}
