package reviews

import (
	"regexp"
	"strings"
)

const minStatementLength = 15

// noiseRule pairs a pattern with the reason it disqualifies a statement.
// Rules are independent and evaluated any-match; keep each one testable on
// its own.
type noiseRule struct {
	pattern *regexp.Regexp
	reason  string
}

var noiseRules = []noiseRule{
	{regexp.MustCompile("^(###|```)"), "markdown heading or code fence"},
	{regexp.MustCompile(`(?i)^(none identified|no\b.*\bidentified|n/a\b|here'?s an? updated)`), "no-issues boilerplate"},
	{regexp.MustCompile(`(?i)^(in this updated|i added|i used|i raised)`), "first-person model narrative"},
	{regexp.MustCompile(`^- I `), "first-person list item"},
	{regexp.MustCompile(`^(def|class|import|from|return|if|for|while|try|except) `), "restated code, not prose"},
	{regexp.MustCompile(`(?i)^consider (adding|using)`), "generic advisory opener"},
	{regexp.MustCompile(`(?i)^you (could|should|might|may) (also )?consider`), "generic advisory opener"},
	{regexp.MustCompile(`(?i)^(it('|’)?s a good practice|it is a good practice)`), "best-practice platitude"},
	{regexp.MustCompile(`(?i)^as a (best|general) practice`), "best-practice platitude"},
	{regexp.MustCompile(`(?i)^for better`), "best-practice platitude"},
	{regexp.MustCompile(`(?i)(add(ing)? (more )?comments|missing comments|no comments|comment your)`), "generic commenting advice"},
	{regexp.MustCompile(`(?i)(use (more )?descriptive|variable naming|rename (the )?variable)`), "generic naming advice"},
}

// isNoise reports whether a raw statement is boilerplate, meta-commentary or
// otherwise non-substantive. The upstream model frequently emits empty
// verdicts and restated code; none of that may surface as an issue.
func isNoise(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minStatementLength {
		return true
	}
	if isQuoteWrapped(trimmed) {
		return true
	}
	for _, rule := range noiseRules {
		if rule.pattern.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// isQuoteWrapped reports whether the text is entirely wrapped in matching
// quote characters.
func isQuoteWrapped(text string) bool {
	runes := []rune(text)
	if len(runes) < 2 {
		return false
	}
	first, last := runes[0], runes[len(runes)-1]
	switch first {
	case '"', '\'', '`', '“', '‘':
		return last == matchingQuote(first)
	default:
		return false
	}
}

func matchingQuote(open rune) rune {
	switch open {
	case '“':
		return '”'
	case '‘':
		return '’'
	default:
		return open
	}
}
