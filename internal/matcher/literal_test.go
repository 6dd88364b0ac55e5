package matcher

import (
	"strings"
	"testing"
)

func TestNewLiteralRejectsEmptyQuery(t *testing.T) {
	if _, err := NewLiteral(""); err == nil {
		t.Fatalf("Expected error for empty query")
	}
}

func TestLiteralCount(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		unit     string
		expected int
	}{
		{
			name:     "simple_matches",
			query:    "test",
			unit:     "test one test two test three",
			expected: 3,
		},
		{
			name:     "case_insensitive",
			query:    "alpha",
			unit:     "Alpha ALPHA aLpHa",
			expected: 3,
		},
		{
			name:     "no_match",
			query:    "missing",
			unit:     "nothing to see here",
			expected: 0,
		},
		{
			name:     "non_overlapping",
			query:    "aa",
			unit:     "aaaa",
			expected: 2,
		},
		{
			name:     "empty_unit",
			query:    "x",
			unit:     "",
			expected: 0,
		},
		{
			name:     "match_at_boundaries",
			query:    "end",
			unit:     "end middle end",
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewLiteral(tt.query)
			if err != nil {
				t.Fatalf("NewLiteral(%q) failed: %v", tt.query, err)
			}
			got := m.Count(tt.unit)
			if got != tt.expected {
				t.Errorf("Count(%q) for query %q = %d, want %d", tt.unit, tt.query, got, tt.expected)
			}
		})
	}
}

func TestLiteralCaseInsensitiveSymmetry(t *testing.T) {
	unit := "Apple apple APPLE aPpLe banana apple"

	lower, err := NewLiteral("apple")
	if err != nil {
		t.Fatalf("NewLiteral failed: %v", err)
	}
	upper, err := NewLiteral("APPLE")
	if err != nil {
		t.Fatalf("NewLiteral failed: %v", err)
	}

	if lower.Count(unit) != upper.Count(unit) {
		t.Errorf("Case variants of the same query disagree: %d vs %d", lower.Count(unit), upper.Count(unit))
	}
	if lower.Count(unit) != 5 {
		t.Errorf("Expected 5 occurrences, got %d", lower.Count(unit))
	}
}

func TestLiteralLargeUnitTerminates(t *testing.T) {
	m, err := NewLiteral("ab")
	if err != nil {
		t.Fatalf("NewLiteral failed: %v", err)
	}
	unit := strings.Repeat("ab", 10000)
	if got := m.Count(unit); got != 10000 {
		t.Errorf("Expected 10000 matches, got %d", got)
	}
}
