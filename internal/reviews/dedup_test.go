package reviews

import "testing"

func TestIsDuplicateContainmentBothDirections(t *testing.T) {
	if !isDuplicate([]Issue{{Title: "Off-by-one error"}}, "Off-by-one error in loop") {
		t.Fatal("longer restatement of an accepted title must be a duplicate")
	}
	if !isDuplicate([]Issue{{Title: "Off-by-one error in loop"}}, "Off-by-one error") {
		t.Fatal("shorter restatement of an accepted title must be a duplicate")
	}
}

func TestIsDuplicateNormalization(t *testing.T) {
	if !isDuplicate([]Issue{{Title: "SQL injection in query builder."}}, "SQL  Injection -- in Query Builder") {
		t.Fatal("punctuation and case must not defeat dedup")
	}
}

func TestIsDuplicateQualifierInterruption(t *testing.T) {
	existing := []Issue{{Title: "SQL injection in query builder."}}
	if !isDuplicate(existing, "SQL Injection risk in the query-builder function.") {
		t.Fatal("a qualifier inside the phrase must not defeat dedup")
	}
	if !isDuplicate([]Issue{{Title: "Null pointer dereference on line 4"}}, "Null pointer dereference risk") {
		t.Fatal("near-restatement must be a duplicate")
	}
}

func TestIsDuplicateDistinctTitles(t *testing.T) {
	existing := []Issue{
		{Title: "SQL injection in query builder."},
		{Title: "Null pointer dereference on line 4."},
	}
	if isDuplicate(existing, "Unbounded goroutine growth in the worker pool.") {
		t.Fatal("unrelated title must not be flagged")
	}
}

func TestNormalizeTitle(t *testing.T) {
	if got := normalizeTitle("Off-by-one Error, line 12!"); got != "offbyoneerrorline12" {
		t.Fatalf("normalizeTitle = %q", got)
	}
}
