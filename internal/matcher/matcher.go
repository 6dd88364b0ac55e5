// Package matcher implements the matching strategies applied to a unit of
// text: case-insensitive literal substring counting and gap-bounded wildcard
// chain matching. The advanced predicate strategy lives in
// internal/predicate and builds on the literal matcher.
package matcher

// Matcher counts matches of a query in a unit. A count of zero means the
// unit does not match; engines omit zero-count units from results.
type Matcher interface {
	Count(unit string) int
}
