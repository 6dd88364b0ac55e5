package predicate

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/notegrep/internal/errors"
)

func TestParseValidExpressions(t *testing.T) {
	valid := []string{
		`$('x')`,
		`$("double quoted")`,
		`$('it\'s escaped')`,
		`past(ts)`,
		`past(ts, 7)`,
		`future(ts)`,
		`future(ts, 30)`,
		`today(ts)`,
		`$('a') && $('b')`,
		`$('a') || $('b')`,
		`$('a') && $('b') || $('c')`,
		`($('a') || $('b')) && past(ts)`,
		`  past( ts , 7 )  `,
		`$('x') && future(ts) && today(ts)`,
	}

	for _, expr := range valid {
		_, err := Compile(expr)
		assert.NoError(t, err, "expression %q should parse", expr)
	}
}

func TestParseMalformedExpressions(t *testing.T) {
	malformed := []string{
		``,
		`(`,
		`)`,
		`$('x'`,
		`$('x'))`,
		`($('x')`,
		`$()`,
		`$(x)`,
		`$('unterminated`,
		`past()`,
		`past(now)`,
		`past(ts, )`,
		`past(ts, 'seven')`,
		`past(ts, 7, 8)`,
		`today(ts, 1)`,
		`today()`,
		`future(ts) &&`,
		`&& future(ts)`,
		`$('a') & $('b')`,
		`$('a') | $('b')`,
		`ts`,
		`ts(ts)`,
		`bogus(ts)`,
		`$('a') $('b')`,
		`42`,
	}

	for _, expr := range malformed {
		_, err := Compile(expr)
		require.Error(t, err, "expression %q should be rejected", expr)

		var exprErr *errors.ExprError
		assert.True(t, stderrors.As(err, &exprErr), "expression %q should yield an ExprError, got %T", expr, err)
	}
}

func TestUnknownFunctionSuggestion(t *testing.T) {
	_, err := Compile(`pasr(ts)`)
	require.Error(t, err)

	var exprErr *errors.ExprError
	require.True(t, stderrors.As(err, &exprErr))
	assert.Equal(t, "past", exprErr.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "past"?`)
}

func TestUnknownFunctionWithoutCloseMatch(t *testing.T) {
	_, err := Compile(`zzzzqq(ts)`)
	require.Error(t, err)

	var exprErr *errors.ExprError
	require.True(t, stderrors.As(err, &exprErr))
	assert.Empty(t, exprErr.Suggestion)
}

func TestPrecedenceAndBindsTighter(t *testing.T) {
	// a || b && c must parse as a || (b && c)
	compiled, err := Compile(`$('a') || $('b') && $('c')`)
	require.NoError(t, err)

	or, ok := compiled.root.(*OrNode)
	require.True(t, ok, "root should be Or, got %T", compiled.root)

	_, ok = or.Right.(*AndNode)
	assert.True(t, ok, "right child of Or should be And, got %T", or.Right)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	// (a || b) && c must parse as (a || b) && c
	compiled, err := Compile(`($('a') || $('b')) && $('c')`)
	require.NoError(t, err)

	and, ok := compiled.root.(*AndNode)
	require.True(t, ok, "root should be And, got %T", compiled.root)

	_, ok = and.Left.(*OrNode)
	assert.True(t, ok, "left child of And should be Or, got %T", and.Left)
}
