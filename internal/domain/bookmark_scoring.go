package domain

import (
	"sort"
	"strings"
)

// BookmarkCandidate represents a bookmark candidate with its match score
type BookmarkCandidate struct {
	Bookmark *Bookmark
	Score    float64
}

// ScoreBookmark calculates the match score for a bookmark against a query string.
// The abbreviation is matched as a whole; the title only contributes through
// its words.
func ScoreBookmark(queryStr string, bookmark *Bookmark) float64 {
	if bookmark == nil {
		return 0.0
	}
	queryStr = strings.ToLower(strings.TrimSpace(queryStr))
	if queryStr == "" {
		return 0.0
	}

	abbr := strings.ToLower(bookmark.Abbr)

	if queryStr == abbr {
		return ScoreExactMatch + ScoreExactNameBonus
	}
	if abbr != "" && strings.HasPrefix(abbr, queryStr) {
		return ScorePrefixMatch
	}
	if index := strings.Index(abbr, queryStr); abbr != "" && index >= 0 {
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(abbr)))
		return ScoreSubstringMatch + substringBonus
	}

	// Every query word has to appear in the abbreviation or the title.
	queryWords := strings.Fields(queryStr)
	titleWords := NameFragments(bookmark.Title)
	var total float64
	for _, qw := range queryWords {
		best := 0.0
		if strings.Contains(abbr, qw) {
			best = ScoreFuzzyMatch
		}
		for i, tw := range titleWords {
			if s := scoreFragment(qw, tw, i); s > best {
				best = s
			}
		}
		if best == 0.0 {
			total = 0.0
			break
		}
		total += best
	}
	if total > 0 {
		// title matches rank below direct abbreviation hits
		return total / float64(len(queryWords)) * 0.5
	}

	similarity := calculateSimilarity(normalizeFragment(queryStr), normalizeFragment(abbr))
	if similarity > 0.5 && len(queryStr) >= 3 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// RankBookmarkCandidates ranks bookmark candidates by score
func RankBookmarkCandidates(queryStr string, bookmarks []*Bookmark) []*BookmarkCandidate {
	candidates := make([]*BookmarkCandidate, 0, len(bookmarks))

	for _, bookmark := range bookmarks {
		if bookmark.Disabled {
			continue
		}

		score := ScoreBookmark(queryStr, bookmark)
		if score == 0.0 {
			continue
		}

		candidates = append(candidates, &BookmarkCandidate{
			Bookmark: bookmark,
			Score:    score,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Bookmark.Abbr < candidates[j].Bookmark.Abbr
	})

	return candidates
}

// FindBestBookmark finds the best matching bookmark for a query
func FindBestBookmark(queryStr string, bookmarks []*Bookmark) *Bookmark {
	candidates := RankBookmarkCandidates(queryStr, bookmarks)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0].Bookmark
}
