package reviews

import (
	"strconv"
	"strings"
)

// MaxIssues caps the number of issues emitted per review.
const MaxIssues = 5

// severityBuckets maps each bucket to its severity label, in processing
// order. This order is also the final display order.
var severityBuckets = []struct {
	bucket   func(RawFeedback) []string
	severity string
}{
	{func(f RawFeedback) []string { return f.Critical }, SeverityCritical},
	{func(f RawFeedback) []string { return f.High }, SeverityHigh},
	{func(f RawFeedback) []string { return f.Medium }, SeverityMedium},
	{func(f RawFeedback) []string { return f.Low }, SeverityLow},
}

// AssembleIssues converts bucketed raw feedback into a bounded, ordered,
// de-duplicated sequence of issues. Statements are evaluated in bucket order
// (critical first), each exactly once; a rejected statement is never
// revisited. Processing stops entirely once MaxIssues have been accepted.
func AssembleIssues(feedback RawFeedback) []Issue {
	issues := make([]Issue, 0, MaxIssues)
	for _, entry := range severityBuckets {
		for _, raw := range entry.bucket(feedback) {
			trimmed := strings.TrimSpace(raw)
			if stripListMarker(trimmed) == "" || isNoise(trimmed) {
				continue
			}
			p := extractParts(trimmed)
			if isPolicyViolation(p.title, p.suggestion) {
				continue
			}
			if isDuplicate(issues, p.title) {
				continue
			}
			issues = append(issues, Issue{
				ID:          strconv.Itoa(len(issues) + 1),
				Severity:    entry.severity,
				Title:       p.title,
				Description: p.description,
				Suggestion:  p.suggestion,
			})
			if len(issues) >= MaxIssues {
				return issues
			}
		}
	}
	return issues
}
