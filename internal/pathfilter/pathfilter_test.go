package pathfilter

import (
	"testing"
)

func TestIgnorePatternMatching(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		entry    string
		fullPath string
		excluded bool
	}{
		{
			name:     "exact_name_match",
			patterns: []string{"drafts"},
			entry:    "drafts",
			fullPath: "/notes/drafts",
			excluded: true,
		},
		{
			name:     "case_insensitive",
			patterns: []string{"DRAFTS"},
			entry:    "drafts",
			fullPath: "/notes/drafts",
			excluded: true,
		},
		{
			name:     "wildcard_prefix",
			patterns: []string{"skip*"},
			entry:    "skipme",
			fullPath: "/notes/skipme",
			excluded: true,
		},
		{
			name:     "wildcard_suffix",
			patterns: []string{"*.bak"},
			entry:    "old.bak",
			fullPath: "/notes/old.bak",
			excluded: true,
		},
		{
			name:     "full_path_match",
			patterns: []string{"*archive*"},
			entry:    "2024.md",
			fullPath: "/notes/archive/2024.md",
			excluded: true,
		},
		{
			name:     "anchored_not_substring",
			patterns: []string{"skip"},
			entry:    "skipme",
			fullPath: "/notes/skipme",
			excluded: false,
		},
		{
			name:     "regex_metacharacters_are_literal",
			patterns: []string{"notes.(old)"},
			entry:    "notesX(old)",
			fullPath: "/n/notesX(old)",
			excluded: false,
		},
		{
			name:     "regex_metacharacters_exact",
			patterns: []string{"notes.(old)"},
			entry:    "notes.(old)",
			fullPath: "/n/notes.(old)",
			excluded: true,
		},
		{
			name:     "blank_patterns_discarded",
			patterns: []string{"", "   ", "\t"},
			entry:    "anything",
			fullPath: "/notes/anything",
			excluded: false,
		},
		{
			name:     "no_patterns",
			patterns: nil,
			entry:    "anything",
			fullPath: "/notes/anything",
			excluded: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(tt.patterns, nil, "")
			got := f.ShouldExclude(tt.entry, tt.fullPath)
			if got != tt.excluded {
				t.Errorf("ShouldExclude(%q, %q) with %v = %v, want %v",
					tt.entry, tt.fullPath, tt.patterns, got, tt.excluded)
			}
		})
	}
}

func TestBlankPatternsNotCompiled(t *testing.T) {
	f := New([]string{"", "  ", "keep*"}, nil, "")
	if f.PatternCount() != 1 {
		t.Errorf("Expected 1 compiled pattern, got %d", f.PatternCount())
	}
}

func TestExcludeGlobs(t *testing.T) {
	f := New(nil, []string{"**/node_modules/**", "**/*.log"}, "/notes")

	if !f.ShouldExclude("index.js", "/notes/web/node_modules/lib/index.js") {
		t.Errorf("Expected node_modules content to be excluded")
	}
	if !f.ShouldExclude("app.log", "/notes/logs/app.log") {
		t.Errorf("Expected *.log to be excluded")
	}
	if f.ShouldExclude("todo.md", "/notes/work/todo.md") {
		t.Errorf("Expected regular note to pass the glob filter")
	}
}

func TestIgnoreAndGlobCombined(t *testing.T) {
	f := New([]string{"skip*"}, []string{"**/tmp/**"}, "/notes")

	if !f.ShouldExclude("skipme", "/notes/skipme") {
		t.Errorf("Expected ignore pattern to apply")
	}
	if !f.ShouldExclude("x.md", "/notes/tmp/x.md") {
		t.Errorf("Expected exclude glob to apply")
	}
	if f.ShouldExclude("keep.md", "/notes/keep.md") {
		t.Errorf("Expected unmatched entry to pass")
	}
}
