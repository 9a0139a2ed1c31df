package s3

import (
	"context"
	"testing"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "ab12/snapshot.py", want: "ab12/snapshot.py"},
		{name: "simple prefix", prefix: "snapshots", key: "ab12/snapshot.py", want: "snapshots/ab12/snapshot.py"},
		{name: "trailing slash", prefix: "snapshots/", key: "ab12/snapshot.py", want: "snapshots/ab12/snapshot.py"},
		{name: "surrounding slashes", prefix: "/snapshots/", key: "ab12/snapshot.py", want: "snapshots/ab12/snapshot.py"},
		{name: "nested prefix", prefix: "env/prod", key: "ab12/snapshot.py", want: "env/prod/ab12/snapshot.py"},
		{name: "whitespace only", prefix: "   ", key: "ab12/snapshot.py", want: "ab12/snapshot.py"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := &Store{prefix: normalizePrefix(tt.prefix)}
			if got := s.applyPrefix(tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q) with prefix %q = %q, want %q", tt.key, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/", want: ""},
		{in: "snapshots", want: "snapshots/"},
		{in: "/snapshots/", want: "snapshots/"},
		{in: " env/prod ", want: "env/prod/"},
	}

	for _, tt := range tests {
		if got := normalizePrefix(tt.in); got != tt.want {
			t.Fatalf("normalizePrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewStoreRequiresBucket(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(context.Background(), Options{}); err == nil {
		t.Fatal("expected error when bucket is empty")
	}
}
