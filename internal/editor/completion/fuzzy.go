package completion

import "strings"

// FuzzyMatch reports whether query fuzzy-matches candidate and, if so, a
// score favoring exact matches, then prefix matches, then consecutive and
// word-boundary character runs.
func FuzzyMatch(candidate, query string) (score int, matched bool) {
	if query == "" {
		return 1, true
	}
	lowerCand := strings.ToLower(candidate)
	lowerQuery := strings.ToLower(query)

	if lowerCand == lowerQuery {
		return 1000, true
	}
	if strings.HasPrefix(lowerCand, lowerQuery) {
		return 800 + (100 - min(len(candidate), 100)), true
	}
	return calculateScore(lowerCand, lowerQuery)
}

// calculateScore walks candidate looking for query's characters in order,
// rewarding consecutive runs and matches that start a word. Every query
// character must be found or the candidate does not match at all.
func calculateScore(candidate, query string) (int, bool) {
	score := 0
	candIdx := 0
	consecutive := 0

	for _, qc := range query {
		found := false
		for candIdx < len(candidate) {
			cc := rune(candidate[candIdx])
			candIdx++
			if cc == qc {
				found = true
				bonus := 1
				if consecutive > 0 {
					bonus += consecutive * 3
				}
				if candIdx >= 2 && isWordBoundary(rune(candidate[candIdx-2])) {
					bonus += 10
				} else if candIdx == 1 {
					bonus += 10
				}
				score += bonus
				consecutive++
				break
			}
			consecutive = 0
		}
		if !found {
			return 0, false
		}
	}
	return score, true
}

func isWordBoundary(r rune) bool {
	return r == '/' || r == '_' || r == '-' || r == '.' || r == ' ' || r == ':'
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
