package reviews

import (
	"strings"
	"testing"
)

func TestExtractPartsSentenceSplit(t *testing.T) {
	p := extractParts("Null pointer dereference when input is empty. Add a guard clause before dereferencing.")
	if p.title != "Null pointer dereference when input is empty." {
		t.Fatalf("unexpected title: %q", p.title)
	}
	if p.suggestion != "Add a guard clause before dereferencing." {
		t.Fatalf("unexpected suggestion: %q", p.suggestion)
	}
	if p.description != "Null pointer dereference when input is empty. Add a guard clause before dereferencing." {
		t.Fatalf("description must keep the full cleaned text, got %q", p.description)
	}
}

func TestExtractPartsRestSpansLines(t *testing.T) {
	p := extractParts("Race condition on the shared counter! Guard it with a mutex.\nAlternatively use atomic operations.")
	if p.title != "Race condition on the shared counter!" {
		t.Fatalf("unexpected title: %q", p.title)
	}
	if !strings.Contains(p.suggestion, "mutex") || !strings.Contains(p.suggestion, "atomic") {
		t.Fatalf("rest must include everything after the boundary, got %q", p.suggestion)
	}
}

func TestExtractPartsMarkers(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		title string
	}{
		{"list_marker", "- Unbounded recursion in the tree walker. Add a depth limit.", "Unbounded recursion in the tree walker."},
		{"star_marker", "* Unbounded recursion in the tree walker. Add a depth limit.", "Unbounded recursion in the tree walker."},
		{"bold_marker", "**Unbounded recursion in the tree walker. Add a depth limit.", "Unbounded recursion in the tree walker."},
		{"list_and_emphasis", "- *Unbounded recursion in the tree walker. Add a depth limit.", "Unbounded recursion in the tree walker."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if p := extractParts(tc.text); p.title != tc.title {
				t.Fatalf("title = %q, want %q", p.title, tc.title)
			}
		})
	}
}

func TestExtractPartsNoBoundary(t *testing.T) {
	text := strings.Repeat("a", 100)
	p := extractParts(text)
	if len([]rune(p.title)) != maxTitleLength {
		t.Fatalf("no-boundary title should be the first %d characters, got %d", maxTitleLength, len([]rune(p.title)))
	}
	if p.suggestion != fallbackSuggestion {
		t.Fatalf("expected fallback suggestion, got %q", p.suggestion)
	}
}

func TestExtractPartsLongTitleEllipsis(t *testing.T) {
	text := strings.Repeat("b", 100) + ". Fix the overflowing buffer here."
	p := extractParts(text)
	runes := []rune(p.title)
	if len(runes) != maxTitleLength {
		t.Fatalf("truncated title must be %d characters, got %d", maxTitleLength, len(runes))
	}
	if !strings.HasSuffix(p.title, "...") {
		t.Fatalf("truncated title must end with an ellipsis, got %q", p.title)
	}
}

func TestExtractPartsFallbackPassesPolicy(t *testing.T) {
	if isPolicyViolation("Unvalidated index into the results slice", fallbackSuggestion) {
		t.Fatal("fallback suggestion must not trip the policy filter")
	}
}
