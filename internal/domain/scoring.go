package domain

import (
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch       = 100.0
	ScorePrefixMatch      = 75.0
	ScoreSubstringMatch   = 50.0
	ScoreDescriptionMatch = 25.0
	ScoreAllWordsMatch    = 15.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0
)

// EntryCandidate is an entry with its match score for a search query.
type EntryCandidate struct {
	Entry Entry
	Score float64
}

// ScoreEntry scores an entry against a free-text query.
// Matching is case-insensitive on name and description; zero means no match.
func ScoreEntry(query string, e Entry) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0.0
	}

	name := strings.ToLower(e.Name)
	description := strings.ToLower(e.Description)

	if query == name {
		return ScoreExactMatch
	}

	if strings.HasPrefix(name, query) {
		return ScorePrefixMatch
	}

	if idx := strings.Index(name, query); idx >= 0 {
		return ScoreSubstringMatch + positionBonus(idx, len(name))
	}

	if idx := strings.Index(description, query); idx >= 0 {
		return ScoreDescriptionMatch + positionBonus(idx, len(description))
	}

	// Every word somewhere in name or description
	words := strings.Fields(query)
	if len(words) > 1 {
		haystack := name + " " + description
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				return 0.0
			}
		}
		return ScoreAllWordsMatch
	}

	return 0.0
}

func positionBonus(idx, length int) float64 {
	if length == 0 {
		return 0
	}
	return ScorePositionBonus * (1.0 - float64(idx)/float64(length))
}

// RankEntries returns the entries matching query, best first.
// Ties keep the input order, so results are deterministic.
func RankEntries(query string, entries []Entry) []EntryCandidate {
	candidates := make([]EntryCandidate, 0, len(entries))
	for _, e := range entries {
		score := ScoreEntry(query, e)
		if score == 0.0 {
			continue
		}
		candidates = append(candidates, EntryCandidate{Entry: e, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}
