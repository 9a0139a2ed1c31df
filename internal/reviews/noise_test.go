package reviews

import "testing"

func TestIsNoise(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		noise bool
	}{
		{"markdown_heading", "### Critical Issues Found", true},
		{"code_fence", "```python code follows", true},
		{"none_identified", "None identified in this snippet.", true},
		{"no_issues_identified", "No significant issues identified.", true},
		{"not_applicable", "N/A for this code block", true},
		{"updated_code_preamble", "Here's an updated version of your function.", true},
		{"first_person_narrative", "I added a null check to the handler.", true},
		{"first_person_updated", "In this updated version the loop is safer.", true},
		{"first_person_list_item", "- I used a dictionary for faster lookups.", true},
		{"code_keyword_def", "def handle_request(payload):", true},
		{"code_keyword_return", "return calculate_total(items)", true},
		{"quote_wrapped", `"The function lacks error handling entirely."`, true},
		{"too_short", "Bad loop.", true},
		{"advisory_consider_adding", "Consider adding input validation here.", true},
		{"advisory_you_could", "You could also consider caching the result.", true},
		{"good_practice", "It's a good practice to validate inputs early.", true},
		{"general_practice", "As a general practice, keep functions short.", true},
		{"for_better", "For better readability, split this function.", true},
		{"comment_advice", "Missing comments make this hard to follow.", true},
		{"comment_advice_adding", "Consider adding more comments to this function for clarity.", true},
		{"naming_advice", "Use more descriptive names for these variables.", true},
		{"rename_advice", "Rename the variable x to something meaningful.", true},
		{"concrete_defect", "Null pointer dereference when input is empty. Add a guard clause.", false},
		{"concrete_security", "SQL injection in the query builder allows arbitrary reads.", false},
		{"keyword_not_prefix", "Iffy handling of negative offsets corrupts the index.", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isNoise(tc.text); got != tc.noise {
				t.Fatalf("isNoise(%q) = %v, want %v", tc.text, got, tc.noise)
			}
		})
	}
}

func TestIsNoiseDeterministic(t *testing.T) {
	input := "Consider adding retries to the network call."
	first := isNoise(input)
	for i := 0; i < 10; i++ {
		if isNoise(input) != first {
			t.Fatal("isNoise must be deterministic for the same input")
		}
	}
}
