package validator

import (
	"sort"
	"strings"
)

// Rank orders candidate identifiers by edit distance to target, closest
// first, and returns at most limit entries. Ties are broken by the
// candidate's position in candidates (definition order), which keeps the
// output deterministic across runs. Ranking only ever feeds diagnostics;
// it never changes a validation outcome.
func Rank(target string, candidates []string, limit int) []string {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}

	type scored struct {
		name string
		dist int
		pos  int
	}

	ranked := make([]scored, 0, len(candidates))
	for i, candidate := range candidates {
		ranked = append(ranked, scored{
			name: candidate,
			dist: levenshteinDistance(target, candidate),
			pos:  i,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].dist != ranked[j].dist {
			return ranked[i].dist < ranked[j].dist
		}
		return ranked[i].pos < ranked[j].pos
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	names := make([]string, limit)
	for i := range names {
		names[i] = ranked[i].name
	}
	return names
}

// levenshteinDistance computes the case-insensitive edit distance between
// two identifiers using the classic two-row dynamic program.
func levenshteinDistance(s1, s2 string) int {
	s1 = strings.ToLower(s1)
	s2 = strings.ToLower(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := 0; j <= len(s2); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
