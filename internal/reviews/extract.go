package reviews

import "strings"

const (
	maxTitleLength = 80

	// fallbackSuggestion is used when a statement has no text after its
	// first sentence. Phrased to stay clear of the policy filter so a
	// degraded statement can still surface.
	fallbackSuggestion = "Review this part of the code and apply current best practices."
)

// parts is the result of splitting one admissible statement.
type parts struct {
	title       string
	description string
	suggestion  string
}

// extractParts splits a statement into a short title (its first sentence,
// capped at 80 characters), the full cleaned text as description, and the
// remainder as suggestion.
func extractParts(text string) parts {
	cleaned := stripEmphasisMarkers(stripListMarker(strings.TrimSpace(text)))

	title, rest := splitFirstSentence(cleaned)
	if title == "" {
		title = truncateRunes(cleaned, maxTitleLength)
	}
	if runes := []rune(title); len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength-3]) + "..."
	}

	suggestion := rest
	if suggestion == "" {
		suggestion = fallbackSuggestion
	}

	return parts{
		title:       title,
		description: cleaned,
		suggestion:  suggestion,
	}
}

// splitFirstSentence returns the text up to and including the first sentence
// boundary, and everything after it. Line breaks do not stop the scan; the
// rest keeps them. Returns an empty title if no boundary exists.
func splitFirstSentence(text string) (title, rest string) {
	for i, r := range text {
		switch r {
		case '.', '!', '?':
			return strings.TrimSpace(text[:i+1]), strings.TrimSpace(text[i+1:])
		}
	}
	return "", ""
}

// stripListMarker removes a single leading "-" or "*" list marker.
func stripListMarker(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		return strings.TrimSpace(trimmed[2:])
	}
	if trimmed == "-" || trimmed == "*" {
		return ""
	}
	return trimmed
}

// stripEmphasisMarkers removes up to two leading markdown emphasis markers.
func stripEmphasisMarkers(text string) string {
	for i := 0; i < 2; i++ {
		if strings.HasPrefix(text, "*") || strings.HasPrefix(text, "_") {
			text = text[1:]
			continue
		}
		break
	}
	return strings.TrimSpace(text)
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
