package clipboard

import (
	"path/filepath"
	"strings"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// Filter keeps the entries whose payload contains term, ignoring case and
// diacritics. Text matches on its content, images on the word "image" and file
// lists on any file name. An empty term keeps everything.
func Filter(entries []Entry, term string) []Entry {
	term = strings.TrimSpace(term)
	if term == "" {
		return append([]Entry(nil), entries...)
	}
	pattern := algo.NormalizeRunes([]rune(strings.ToLower(term)))

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if matchKind(e.Kind, pattern) {
			out = append(out, e)
		}
	}
	return out
}

func matchKind(k Kind, pattern []rune) bool {
	switch k.Type {
	case TypeText:
		return contains(k.Text, pattern)
	case TypeImage:
		return contains("image", pattern)
	case TypeFiles:
		for _, p := range k.FilePaths {
			if contains(filepath.Base(p), pattern) {
				return true
			}
		}
	}
	return false
}

func contains(text string, pattern []rune) bool {
	chars := util.ToChars([]byte(text))
	res, _ := algo.ExactMatchNaive(false, true, true, &chars, pattern, false, nil)
	return res.Start >= 0
}
