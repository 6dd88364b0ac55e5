package matcher

import (
	"strings"

	"github.com/standardbeagle/notegrep/internal/errors"
	"github.com/standardbeagle/notegrep/internal/types"
)

// Wildcard matches a query of literal segments separated by `*`. Each
// segment after the first must start within types.MaxWildcardGap characters
// of the previous segment's match end; the bound keeps a wildcard from
// silently spanning unrelated content. Matching is an explicit segment
// chain scan rather than regex backtracking, so the gap rule is exact and
// engine-independent.
type Wildcard struct {
	segments []string // lowercased, no empties
}

// NewWildcard creates a wildcard matcher. Empty segments produced by
// leading, trailing, or doubled stars are dropped; a query that reduces to
// no segments at all is rejected. A query without `*` degrades to literal
// counting.
func NewWildcard(query string) (*Wildcard, error) {
	var segments []string
	for _, seg := range strings.Split(query, "*") {
		if seg == "" {
			continue
		}
		segments = append(segments, strings.ToLower(seg))
	}
	if len(segments) == 0 {
		return nil, errors.NewQueryError("queryText", query, "wildcard query needs at least one literal segment")
	}
	return &Wildcard{segments: segments}, nil
}

// Count returns the number of non-overlapping complete segment chains in
// unit, scanning leftmost-first. Scanning resumes after the end of each
// successful chain.
func (m *Wildcard) Count(unit string) int {
	haystack := strings.ToLower(unit)
	count := 0
	pos := 0
	for pos <= len(haystack)-len(m.segments[0]) {
		start := strings.Index(haystack[pos:], m.segments[0])
		if start < 0 {
			break
		}
		start += pos

		end, ok := m.chainFrom(haystack, start)
		if ok {
			count++
			pos = end
		} else {
			// Retry from the next possible start of segment 1
			pos = start + 1
		}
	}
	return count
}

// chainFrom attempts to complete a segment chain whose first segment matches
// at start. Returns the end offset of the chain and whether it completed.
func (m *Wildcard) chainFrom(haystack string, start int) (int, bool) {
	end := start + len(m.segments[0])
	for _, seg := range m.segments[1:] {
		// The segment must start within the gap window after the previous
		// match end, so only that much of the haystack is searched.
		limit := end + types.MaxWildcardGap + len(seg)
		if limit > len(haystack) {
			limit = len(haystack)
		}
		idx := strings.Index(haystack[end:limit], seg)
		if idx < 0 {
			return 0, false
		}
		end += idx + len(seg)
	}
	return end, true
}
