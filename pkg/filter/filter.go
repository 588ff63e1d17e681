package filter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

type FilterMode int

const (
	FilterModeNone FilterMode = iota
	FilterModeExact
	FilterModeContains
	FilterModeRegex
	FilterModeFuzzy
)

var modeNames = map[string]FilterMode{
	"exact":    FilterModeExact,
	"contains": FilterModeContains,
	"regex":    FilterModeRegex,
	"fuzzy":    FilterModeFuzzy,
}

// ModeNames returns the accepted names for ParseMode.
func ModeNames() []string {
	return []string{"contains", "exact", "regex", "fuzzy"}
}

func ParseMode(name string) (FilterMode, error) {
	if mode, ok := modeNames[strings.ToLower(name)]; ok {
		return mode, nil
	}
	return FilterModeNone, fmt.Errorf("unknown search mode %q (valid: %s)", name, strings.Join(ModeNames(), ", "))
}

type StringFilter struct {
	Pattern string
	Mode    FilterMode
	regex   *regexp.Regexp
}

func NewStringFilter(pattern string, mode FilterMode) (*StringFilter, error) {
	f := &StringFilter{
		Pattern: pattern,
		Mode:    mode,
	}

	if mode == FilterModeRegex {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern '%s': %w", pattern, err)
		}
		f.regex = re
	}

	return f, nil
}

func (f *StringFilter) Match(s string) bool {
	if f.Mode == FilterModeNone || f.Pattern == "" {
		return true
	}

	switch f.Mode {
	case FilterModeExact:
		return strings.EqualFold(s, f.Pattern)
	case FilterModeContains:
		return strings.Contains(strings.ToLower(s), strings.ToLower(f.Pattern))
	case FilterModeRegex:
		return f.regex != nil && f.regex.MatchString(s)
	case FilterModeFuzzy:
		return FuzzyMatch(f.Pattern, s)
	default:
		return true
	}
}

// FuzzyMatch reports whether the characters of pattern appear in text in
// order, ignoring case.
func FuzzyMatch(pattern, text string) bool {
	if pattern == "" {
		return true
	}
	return len(fuzzy.Find(pattern, []string{text})) > 0
}

type keySource[T any] struct {
	items []T
	key   func(T) string
}

func (s keySource[T]) String(i int) string { return s.key(s.items[i]) }
func (s keySource[T]) Len() int            { return len(s.items) }

// Apply returns the items whose key matches f. Fuzzy mode orders the result
// by match score, best first; other modes keep the input order.
func Apply[T any](f *StringFilter, items []T, key func(T) string) []T {
	if f == nil || f.Mode == FilterModeNone || f.Pattern == "" {
		return items
	}

	if f.Mode == FilterModeFuzzy {
		matches := fuzzy.FindFrom(f.Pattern, keySource[T]{items: items, key: key})
		out := make([]T, 0, len(matches))
		for _, m := range matches {
			out = append(out, items[m.Index])
		}
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if f.Match(key(item)) {
			out = append(out, item)
		}
	}
	return out
}

// Suggest returns the candidates closest to input, for "did you mean"
// hints. Candidates further than maxDistance edits are dropped.
func Suggest(input string, candidates []string, maxDistance int) []string {
	type scored struct {
		name     string
		distance int
	}
	var hits []scored
	for _, c := range candidates {
		d := LevenshteinDistance(input, c)
		if d <= maxDistance {
			hits = append(hits, scored{name: c, distance: d})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].distance < hits[j].distance })

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.name)
	}
	return out
}

func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	previousRow := make([]int, len(s2)+1)
	currentRow := make([]int, len(s2)+1)

	for i := 0; i <= len(s2); i++ {
		previousRow[i] = i
	}

	for i := 0; i < len(s1); i++ {
		currentRow[0] = i + 1

		for j := 0; j < len(s2); j++ {
			cost := 1
			if unicode.ToLower(rune(s1[i])) == unicode.ToLower(rune(s2[j])) {
				cost = 0
			}

			deletion := currentRow[j] + 1
			insertion := previousRow[j+1] + 1
			substitution := previousRow[j] + cost

			currentRow[j+1] = min(min(deletion, insertion), substitution)
		}

		previousRow, currentRow = currentRow, previousRow
	}

	return previousRow[len(s2)]
}
