package matcher

import (
	"strings"

	"github.com/standardbeagle/notegrep/internal/errors"
)

// Literal counts case-insensitive, non-overlapping occurrences of a query
// string, scanning left to right.
type Literal struct {
	query string // lowercased
}

// NewLiteral creates a literal matcher. An empty query is rejected here so
// the counting loop can always advance by the match length.
func NewLiteral(query string) (*Literal, error) {
	if query == "" {
		return nil, errors.NewQueryError("queryText", "", "must not be empty")
	}
	return &Literal{query: strings.ToLower(query)}, nil
}

// Count returns the number of non-overlapping occurrences of the query in
// unit, case-insensitively.
func (m *Literal) Count(unit string) int {
	haystack := strings.ToLower(unit)
	count := 0
	pos := 0
	for {
		idx := strings.Index(haystack[pos:], m.query)
		if idx < 0 {
			return count
		}
		count++
		pos += idx + len(m.query)
	}
}
