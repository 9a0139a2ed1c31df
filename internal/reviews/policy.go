package reviews

import "strings"

// policyRule pairs a case-insensitive substring with the reason an extracted
// statement mentioning it is considered low value.
type policyRule struct {
	substring string
	reason    string
}

var policyRules = []policyRule{
	{"refactor", "scope-creeping rewrite advice"},
	{"restructure", "scope-creeping rewrite advice"},
	{"complex", "generic complexity framing"},
	{"abstract", "generic complexity framing"},
	{"comment", "documentation nagging"},
	{"document", "documentation nagging"},
	{"time complexity", "algorithmic-complexity talk"},
	{"space complexity", "algorithmic-complexity talk"},
	{"big o", "algorithmic-complexity talk"},
	{"o(n)", "algorithmic-complexity talk"},
}

const minConcreteSuggestionLength = 30

// isPolicyViolation flags a well-formed title/suggestion pair that signals
// scope creep or generic code-quality opinion rather than a concrete defect.
// Second line of defense after the noise filter, operating on extracted parts.
func isPolicyViolation(title, suggestion string) bool {
	combined := strings.ToLower(title + " " + suggestion)
	for _, rule := range policyRules {
		if strings.Contains(combined, rule.substring) {
			return true
		}
	}
	// "Consider ..." with a near-empty suggestion is a proxy for vagueness.
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(title)), "consider") &&
		len(suggestion) < minConcreteSuggestionLength {
		return true
	}
	return false
}
