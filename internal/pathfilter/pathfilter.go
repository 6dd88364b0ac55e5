// Package pathfilter compiles ignore patterns into matchers used to exclude
// directories and files during traversal.
//
// Two pattern dialects are supported:
//   - query-level ignore patterns: case-insensitive, `*` is the only
//     metacharacter, anchored full-string match against the bare name or the
//     full path;
//   - config/CLI-level exclude globs: doublestar syntax with `**` support,
//     matched against the root-relative path.
package pathfilter

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter holds compiled exclusion matchers for one search or replace
// invocation. Compile once, query many times; a Filter is immutable after
// construction and safe for concurrent use.
type Filter struct {
	patterns []*regexp.Regexp
	globs    []string // pattern strings (doublestar compiles internally)
	root     string
}

// New compiles ignorePatterns and excludeGlobs into a Filter. Blank or
// whitespace-only ignore patterns are discarded. root anchors relative glob
// matching and may be empty when no globs are given.
func New(ignorePatterns, excludeGlobs []string, root string) *Filter {
	f := &Filter{
		patterns: make([]*regexp.Regexp, 0, len(ignorePatterns)),
		globs:    excludeGlobs,
		root:     root,
	}

	for _, raw := range ignorePatterns {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		compiled, err := regexp.Compile(patternToRegex(trimmed))
		if err != nil {
			// Cannot happen after QuoteMeta, but never let a bad pattern
			// take down the whole invocation
			continue
		}
		f.patterns = append(f.patterns, compiled)
	}

	return f
}

// patternToRegex converts an ignore pattern to an anchored case-insensitive
// regex. Every regex metacharacter except `*` is escaped; `*` matches any
// run of characters.
func patternToRegex(pattern string) string {
	regex := regexp.QuoteMeta(pattern)
	regex = strings.ReplaceAll(regex, `\*`, `.*`)
	return "(?i)^" + regex + "$"
}

// ShouldExclude reports whether an entry should be skipped. name is the bare
// entry name, fullPath its absolute path. Directories and files are tested
// identically; excluding a directory prunes its whole subtree.
func (f *Filter) ShouldExclude(name, fullPath string) bool {
	for _, p := range f.patterns {
		if p.MatchString(name) || p.MatchString(fullPath) {
			return true
		}
	}
	return f.matchesGlob(fullPath)
}

// matchesGlob checks the doublestar exclude globs against the root-relative
// path (forward slashes) and the full path.
func (f *Filter) matchesGlob(fullPath string) bool {
	if len(f.globs) == 0 {
		return false
	}

	candidate := filepath.ToSlash(fullPath)
	if f.root != "" {
		if rel, err := filepath.Rel(f.root, fullPath); err == nil {
			candidate = filepath.ToSlash(rel)
		}
	}

	for _, pattern := range f.globs {
		if matched, err := doublestar.Match(pattern, candidate); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, filepath.ToSlash(fullPath)); err == nil && matched {
			return true
		}
	}
	return false
}

// PatternCount returns the number of compiled ignore patterns, mainly for
// debug logging.
func (f *Filter) PatternCount() int {
	return len(f.patterns)
}
