package reviews

import "time"

const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Severity values emitted by the feedback pipeline, ordered from most to
// least severe. Processing order doubles as display order.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// RawFeedback is the bucketed free-form feedback returned by the LLM.
// Insertion order within each bucket is meaningful and preserved.
type RawFeedback struct {
	Critical []string `json:"Critical"`
	High     []string `json:"High"`
	Medium   []string `json:"Medium"`
	Low      []string `json:"Low"`
}

// Issue is the structured, displayable record produced for one admitted
// statement. Immutable once appended.
type Issue struct {
	ID          string `json:"id"`
	Severity    string `json:"severity"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
}

// Review represents one code review job.
type Review struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Language     string     `json:"language"`
	Status       string     `json:"status"`
	StorageKey   string     `json:"storageKey,omitempty"`
	Issues       []Issue    `json:"issues,omitempty"`
	ErrorMessage *string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(severity string) int {
	switch severity {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// SeverityCounts tallies issues per severity band for the rendering layer.
func SeverityCounts(issues []Issue) map[string]int {
	counts := map[string]int{
		SeverityCritical: 0,
		SeverityHigh:     0,
		SeverityMedium:   0,
		SeverityLow:      0,
	}
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}
