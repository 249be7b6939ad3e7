package validator

import (
	"math"
	"sort"
	"strings"
)

// maxSuggestions caps the number of "did you mean" options reported for a
// single mismatched name.
const maxSuggestions = 5

// suggestionList returns options similar to input, nearest first, capped at
// maxSuggestions. Options farther than half of input's length (or half of
// the option's own length, whichever is larger) are dropped as unhelpful.
func suggestionList(input string, options []string) []string {
	if len(options) == 0 {
		return nil
	}

	var filtered []string
	var distances []int
	threshold := math.Max(float64(len(input))/2, 1)
	for _, option := range options {
		d := restrictedDamerauLevenshteinDistance(input, option)
		t := math.Max(threshold, float64(len(option))/2)
		if float64(d) <= t {
			filtered = append(filtered, option)
			distances = append(distances, d)
		}
	}

	sort.Sort(&bySimilarity{filtered, distances})
	if len(filtered) > maxSuggestions {
		filtered = filtered[:maxSuggestions]
	}
	return filtered
}

type bySimilarity struct {
	options   []string
	distances []int
}

func (s *bySimilarity) Len() int { return len(s.options) }
func (s *bySimilarity) Swap(i, j int) {
	s.options[i], s.options[j] = s.options[j], s.options[i]
	s.distances[i], s.distances[j] = s.distances[j], s.distances[i]
}
func (s *bySimilarity) Less(i, j int) bool { return s.distances[i] < s.distances[j] }

// restrictedDamerauLevenshteinDistance counts the minimum number of
// insertions, deletions, substitutions, or adjacent transpositions needed to
// turn a into b, treating a pure case difference as a single edit so
// mis-cased names are flagged as close matches.
func restrictedDamerauLevenshteinDistance(aStr, bStr string) int {
	if aStr == bStr {
		return 0
	}

	a := strings.ToLower(aStr)
	b := strings.ToLower(bStr)
	if a == b {
		return 1
	}

	aLen, bLen := len(a), len(b)
	d := make([][]int, aLen+1)
	for i := 0; i <= aLen; i++ {
		d[i] = make([]int, bLen+1)
		d[i][0] = i
	}
	for j := 0; j <= bLen; j++ {
		d[0][j] = j
	}

	for i := 1; i <= aLen; i++ {
		for j := 1; j <= bLen; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			min := d[i-1][j] + 1
			if v := d[i][j-1] + 1; v < min {
				min = v
			}
			if v := d[i-1][j-1] + cost; v < min {
				min = v
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := d[i-2][j-2] + cost; v < min {
					min = v
				}
			}

			d[i][j] = min
		}
	}

	return d[aLen][bLen]
}

// didYouMean formats a suggestion list as a trailing clause, or returns the
// empty string if there's nothing to suggest.
func didYouMean(options []string) string {
	if len(options) == 0 {
		return ""
	}
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = `"` + o + `"`
	}
	if len(quoted) == 1 {
		return " Did you mean " + quoted[0] + "?"
	}
	return " Did you mean " + strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1] + "?"
}
