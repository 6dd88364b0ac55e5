package predicate

import (
	"time"

	"github.com/standardbeagle/notegrep/internal/timeparse"
	"github.com/standardbeagle/notegrep/internal/types"
)

// Compiled is a parsed, validated expression ready for evaluation. Compile
// once per query, evaluate once per unit; a Compiled value is immutable and
// safe for concurrent use across files.
type Compiled struct {
	root Node
}

// Compile parses and validates an expression. All grammar and arity problems
// are reported here, never during per-unit evaluation.
func Compile(expr string) (*Compiled, error) {
	root, err := parse(expr)
	if err != nil {
		return nil, err
	}
	return &Compiled{root: root}, nil
}

// evalContext carries the per-unit state threaded through evaluation. ts is
// bound lazily: units matched purely by $() never pay for date extraction.
type evalContext struct {
	unit    string
	now     time.Time
	ts      int64
	tsBound bool
}

func (c *evalContext) timestamp() int64 {
	if !c.tsBound {
		c.ts = timeparse.Extract(c.unit)
		c.tsBound = true
	}
	return c.ts
}

// Eval evaluates the expression against one unit of text, with "now" fixed
// by the caller so a whole search shares a single reference instant.
func (c *Compiled) Eval(unit string, now time.Time) bool {
	ctx := &evalContext{unit: unit, now: now}
	return eval(c.root, ctx)
}

func eval(n Node, ctx *evalContext) bool {
	switch node := n.(type) {
	case *AndNode:
		return eval(node.Left, ctx) && eval(node.Right, ctx)
	case *OrNode:
		return eval(node.Left, ctx) || eval(node.Right, ctx)
	case *CallNode:
		return evalCall(node, ctx)
	}
	return false
}

func evalCall(call *CallNode, ctx *evalContext) bool {
	switch call.Name {
	case "$":
		return call.lit.Count(ctx.unit) > 0
	case "past":
		ts := ctx.timestamp()
		if ts == 0 {
			return false
		}
		nowMillis := ctx.now.UnixMilli()
		if ts >= nowMillis {
			return false
		}
		if call.HasDays && ts < nowMillis-call.Days*types.DayMillis {
			return false
		}
		return true
	case "future":
		ts := ctx.timestamp()
		if ts == 0 {
			return false
		}
		nowMillis := ctx.now.UnixMilli()
		if ts <= nowMillis {
			return false
		}
		if call.HasDays && ts > nowMillis+call.Days*types.DayMillis {
			return false
		}
		return true
	case "today":
		ts := ctx.timestamp()
		if ts == 0 {
			return false
		}
		return timeparse.SameLocalDay(ts, ctx.now)
	}
	return false
}
