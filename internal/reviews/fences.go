package reviews

import "strings"

// StripFences removes one leading and one trailing fenced-code marker from a
// full-text code block, tolerating a language tag after the opening fence.
// Interior fences are left untouched; already-unfenced text passes through
// unchanged.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		} else {
			s = ""
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s[:len(s)-3], "\n")
	}
	return strings.TrimSpace(s)
}
