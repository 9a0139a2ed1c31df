package reviews

import "testing"

func TestIsPolicyViolation(t *testing.T) {
	cases := []struct {
		name       string
		title      string
		suggestion string
		violation  bool
	}{
		{"refactor_title", "Refactor the payment module.", "Split it into smaller services.", true},
		{"restructure_suggestion", "Deep nesting in the handler.", "Restructure the branches into early returns.", true},
		{"complexity_framing", "This function is too complex.", "Reduce branching.", true},
		{"abstraction_framing", "Missing abstraction layer here.", "Introduce an interface.", true},
		{"documentation_nagging", "Sparse documentation on exported API.", "Write doc strings.", true},
		{"comment_mention", "Hard to follow control flow.", "Add a comment explaining the invariant.", true},
		{"big_o_talk", "Quadratic scan over users.", "The time complexity is O(n^2), use a map.", true},
		{"vague_consider", "Consider a different data structure.", "Use a set.", true},
		{"consider_with_concrete_fix", "Consider bounds before indexing the buffer.", "Check len(buf) against offset+size before the copy to avoid a panic.", false},
		{"concrete_defect", "Nil map write in the cache warmup path.", "Initialize the map in the constructor before use.", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isPolicyViolation(tc.title, tc.suggestion); got != tc.violation {
				t.Fatalf("isPolicyViolation(%q, %q) = %v, want %v", tc.title, tc.suggestion, got, tc.violation)
			}
		})
	}
}

func TestIsPolicyViolationCaseInsensitive(t *testing.T) {
	if !isPolicyViolation("REFACTOR everything.", "") {
		t.Fatal("matching must be case-insensitive")
	}
}
