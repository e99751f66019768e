// Package match provides typo-tolerant name suggestions for toolkit
// identifiers. Validation and resolution use it to turn "not found"
// errors into "did you mean" diagnostics.
package match

import (
	"sort"
	"strings"
)

const (
	// DefaultThreshold is the minimum normalized similarity for a
	// candidate to be suggested.
	DefaultThreshold = 0.6

	// DefaultMax is the maximum number of suggestions returned.
	DefaultMax = 5
)

// commonTypos maps frequently observed misspellings directly to their
// canonical identifier, checked before falling back to edit distance.
var commonTypos = map[string]string{
	"typescipt":  "typescript",
	"typscript":  "typescript",
	"javscript":  "javascript",
	"tailwnd":    "tailwindcss",
	"tailwind":   "tailwindcss",
	"alpine":     "alpinejs",
	"reactjs":    "react",
	"vuejs":      "vue",
	"nexjs":      "nextjs",
	"pyton":      "python",
	"golng":      "golang",
	"svelte-kit": "sveltekit",
}

// Suggest returns up to max candidate names whose normalized similarity
// to input is at least threshold, ordered by descending similarity.
// Ties preserve candidate input order. The common-typo table is
// consulted first; a hit short-circuits the distance scan when the
// corrected name is among the candidates.
func Suggest(input string, candidates []string, threshold float64, max int) []string {
	if input == "" || len(candidates) == 0 || max <= 0 {
		return nil
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	if corrected, ok := commonTypos[normalized]; ok {
		for _, c := range candidates {
			if c == corrected {
				return []string{corrected}
			}
		}
	}

	type scored struct {
		name  string
		score float64
		order int
	}

	var matches []scored
	for i, c := range candidates {
		score := Similarity(normalized, strings.ToLower(c))
		if score >= threshold {
			matches = append(matches, scored{name: c, score: score, order: i})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].order < matches[j].order
	})

	if len(matches) > max {
		matches = matches[:max]
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

// SuggestDefault calls Suggest with the default threshold and limit.
func SuggestDefault(input string, candidates []string) []string {
	return Suggest(input, candidates, DefaultThreshold, DefaultMax)
}

// Similarity returns the normalized edit-distance similarity between
// two strings: 1 - levenshtein(a,b)/max(len(a),len(b)). Identical
// strings score 1.0; completely different strings approach 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	if longer == 0 {
		return 1.0
	}

	return 1.0 - float64(levenshtein(a, b))/float64(longer)
}

// levenshtein computes the edit distance between two strings using a
// two-row dynamic programming table.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost

			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			curr[j] = min
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
