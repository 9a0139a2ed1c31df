package reviews

import "strings"

// isDuplicate reports whether newTitle restates any already-accepted issue.
// Titles are compared in normalized form: equality, containment in either
// direction, or heavy word overlap all count as duplicates. Deliberately
// permissive so near-restatements ("Null pointer dereference on line 4" vs
// "Null pointer dereference risk") collapse to one issue.
func isDuplicate(existing []Issue, newTitle string) bool {
	candidate := normalizeTitle(newTitle)
	candidateWords := titleWords(newTitle)
	for _, issue := range existing {
		accepted := normalizeTitle(issue.Title)
		if candidate == accepted {
			return true
		}
		if candidate != "" && accepted != "" &&
			(strings.Contains(accepted, candidate) || strings.Contains(candidate, accepted)) {
			return true
		}
		if wordOverlap(candidateWords, titleWords(issue.Title)) {
			return true
		}
	}
	return false
}

// normalizeTitle lowercases and strips every character that is not a
// lowercase letter or digit.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// titleWords returns the set of normalized words of length >= 3.
func titleWords(title string) map[string]struct{} {
	words := make(map[string]struct{})
	split := func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	}
	for _, word := range strings.FieldsFunc(strings.ToLower(title), split) {
		if len(word) >= 3 {
			words[word] = struct{}{}
		}
	}
	return words
}

// wordOverlap reports whether at least three quarters of the smaller word set
// appears in the larger one. Catches restatements that containment misses
// because a qualifier ("risk", "potential") interrupts the phrase.
func wordOverlap(a, b map[string]struct{}) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	shared := 0
	for word := range small {
		if _, ok := large[word]; ok {
			shared++
		}
	}
	return shared*4 >= len(small)*3
}
