package domain

import (
	"math"
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreInitialsMatch  = 60.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier word is better)
	ScorePositionBonus = 10.0

	// Short names win ties against long ones
	ScoreLengthBonus = 5.0

	// Whole-name match bonus (huge boost)
	ScoreExactNameBonus = 200.0

	// Usage weight (launch counter contributes to final score)
	ScoreUsageWeight = 0.1
)

// Candidate represents an app candidate with its match score
type Candidate struct {
	App          *App
	LexicalScore float64 // Score from name matching
	UsageScore   float64 // Score from launch counts
	TotalScore   float64 // Combined score
}

// Score calculates the match score for an app against a query.
// Every query fragment has to match some word of the name, otherwise the
// score is zero unless the query spells the name's initials.
func Score(query *Query, app *App) float64 {
	if query.IsEmpty() || app == nil {
		return 0.0
	}

	words := NameFragments(app.Name)
	if len(words) == 0 {
		return 0.0
	}
	compactName := normalizeFragment(app.Name)

	if query.Compact == compactName {
		return ScoreExactMatch + ScoreExactNameBonus
	}

	var totalScore float64
	for _, qFrag := range query.Fragments {
		best := scoreFragment(qFrag, compactName, 0)
		for i, w := range words {
			if s := scoreFragment(qFrag, w, i); s > best {
				best = s
			}
		}
		if best == 0.0 {
			return scoreInitials(query, words)
		}
		totalScore += best
	}

	if len(words) <= 2 {
		totalScore += ScoreLengthBonus
	}

	return totalScore
}

// scoreInitials matches "vsc" against "Visual Studio Code".
func scoreInitials(query *Query, words []string) float64 {
	if len(words) < 2 || len(query.Compact) < 2 {
		return 0.0
	}
	if strings.HasPrefix(initials(words), query.Compact) {
		return ScoreInitialsMatch
	}
	return 0.0
}

// scoreFragment scores a single query fragment against a name fragment
func scoreFragment(queryFrag, nameFrag string, position int) float64 {
	queryFrag = normalizeFragment(queryFrag)
	nameFrag = normalizeFragment(nameFrag)

	if queryFrag == "" || nameFrag == "" {
		return 0.0
	}

	// Exact match
	if queryFrag == nameFrag {
		return ScoreExactMatch + calculatePositionBonus(position)
	}

	// Prefix match
	if strings.HasPrefix(nameFrag, queryFrag) {
		return ScorePrefixMatch + calculatePositionBonus(position)
	}

	// Substring match
	if index := strings.Index(nameFrag, queryFrag); index >= 0 {
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(nameFrag)))
		return ScoreSubstringMatch + substringBonus
	}

	// Fuzzy match on shared characters
	similarity := calculateSimilarity(queryFrag, nameFrag)
	if similarity > 0.5 && len(queryFrag) >= 3 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculatePositionBonus gives bonus for earlier positions
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity is the ratio of s1's characters that also occur in s2.
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	matches := 0
	total := 0
	for _, c := range s1 {
		total++
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(total)
}

// usageScore is logarithmic so a heavily used app cannot bury exact matches.
func usageScore(counter int64) float64 {
	if counter <= 0 {
		return 0.0
	}
	return math.Log10(float64(counter)+1) * ScoreUsageWeight * 100
}

// RankApps ranks app candidates by combining lexical and usage scores.
// Ties are broken by name so the order is stable between keystrokes.
func RankApps(query *Query, apps []*App) []*Candidate {
	candidates := make([]*Candidate, 0, len(apps))

	for _, app := range apps {
		if app.Disabled {
			continue
		}

		lexical := Score(query, app)
		if lexical == 0.0 {
			continue
		}

		usage := usageScore(app.Counter)
		candidates = append(candidates, &Candidate{
			App:          app,
			LexicalScore: lexical,
			UsageScore:   usage,
			TotalScore:   lexical + usage,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TotalScore != candidates[j].TotalScore {
			return candidates[i].TotalScore > candidates[j].TotalScore
		}
		return strings.ToLower(candidates[i].App.Name) < strings.ToLower(candidates[j].App.Name)
	})

	return candidates
}

// FindBestMatch finds the best matching app for a query
func FindBestMatch(query *Query, apps []*App) *App {
	candidates := RankApps(query, apps)
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0].App
}
