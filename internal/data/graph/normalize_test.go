package graph

import (
	"testing"

	"github.com/google/uuid"
)

func TestNormalizeIDMatchesAcrossTypes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want string
	}{
		{"string", "42", "42"},
		{"string padded", "  42 ", "42"},
		{"int", 42, "42"},
		{"int64", int64(42), "42"},
		{"json number", float64(42), "42"},
		{"fractional float", 42.5, "42.5"},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeID(tc.in); got != tc.want {
				t.Fatalf("NormalizeID(%v): got=%q want=%q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeIDUsesStringer(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	if got := NormalizeID(id); got != id.String() {
		t.Fatalf("uuid not normalized via String(): got=%q want=%q", got, id.String())
	}
}

func TestNormalizeIDRelationalAndGraphFormsAgree(t *testing.T) {
	t.Parallel()

	// A numeric id stored relationally and the string the graph holds must
	// key the same node.
	if NormalizeID(42) != NormalizeID("42") {
		t.Fatal("integer 42 and string \"42\" normalize differently")
	}
}
