// Package predicate implements the advanced-search expression language: a
// small boolean grammar over a closed set of builtins ($, past, future,
// today) evaluated once per text unit. Expressions are parsed by recursive
// descent into a tagged AST and run by a dedicated interpreter; no host
// language evaluation is involved, so there is no injection surface.
//
// Grammar:
//
//	Expr := And ('||' And)*
//	And  := Term ('&&' Term)*
//	Term := '(' Expr ')' | Call
//	Call := '$' '(' string ')'
//	      | 'past' '(' 'ts' [',' int] ')'
//	      | 'future' '(' 'ts' [',' int] ')'
//	      | 'today' '(' 'ts' ')'
//
// '&&' binds tighter than '||'; parentheses override.
package predicate

import "github.com/standardbeagle/notegrep/internal/matcher"

// Node is one node of the parsed expression tree.
type Node interface {
	isNode()
}

// AndNode is a short-circuit conjunction.
type AndNode struct {
	Left, Right Node
}

// OrNode is a short-circuit disjunction.
type OrNode struct {
	Left, Right Node
}

// CallNode is one builtin invocation. For "$" calls Text carries the search
// string and lit its pre-built matcher; for past/future Days carries the
// optional window bound.
type CallNode struct {
	Name    string
	Text    string
	Days    int64
	HasDays bool

	lit *matcher.Literal // built at parse time for "$" calls
}

func (*AndNode) isNode()  {}
func (*OrNode) isNode()   {}
func (*CallNode) isNode() {}
