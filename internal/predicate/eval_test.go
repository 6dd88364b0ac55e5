package predicate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow keeps temporal builtins deterministic across the test run.
var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)

// dateToken renders a time as the M/D/YYYY h:mm AM/PM form notes use.
func dateToken(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "AM"
	if t.Hour() >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%d/%d/%d %d:%02d %s", t.Month(), t.Day(), t.Year(), hour, t.Minute(), meridiem)
}

func TestContainsBuiltin(t *testing.T) {
	compiled, err := Compile(`$('alpha')`)
	require.NoError(t, err)

	assert.True(t, compiled.Eval("this has alpha in it", fixedNow))
	assert.True(t, compiled.Eval("case ALPHA differs", fixedNow))
	assert.False(t, compiled.Eval("nothing relevant", fixedNow))
	assert.False(t, compiled.Eval("", fixedNow))
}

func TestPastBuiltin(t *testing.T) {
	compiled, err := Compile(`past(ts)`)
	require.NoError(t, err)

	assert.True(t, compiled.Eval("done "+dateToken(fixedNow.Add(-48*time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("due "+dateToken(fixedNow.Add(48*time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("no date at all", fixedNow), "ts=0 must never satisfy past()")
}

func TestPastWithWindow(t *testing.T) {
	compiled, err := Compile(`past(ts, 7)`)
	require.NoError(t, err)

	assert.True(t, compiled.Eval("done "+dateToken(fixedNow.Add(-3*24*time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("done "+dateToken(fixedNow.Add(-10*24*time.Hour)), fixedNow),
		"timestamps older than the window must not match")
	assert.False(t, compiled.Eval("due "+dateToken(fixedNow.Add(24*time.Hour)), fixedNow),
		"future timestamps must not match past()")
}

func TestFutureBuiltin(t *testing.T) {
	compiled, err := Compile(`future(ts)`)
	require.NoError(t, err)

	assert.True(t, compiled.Eval("due "+dateToken(fixedNow.Add(48*time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("done "+dateToken(fixedNow.Add(-48*time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("undated", fixedNow))
}

func TestFutureWithWindow(t *testing.T) {
	compiled, err := Compile(`future(ts, 7)`)
	require.NoError(t, err)

	assert.True(t, compiled.Eval("due "+dateToken(fixedNow.Add(3*24*time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("due "+dateToken(fixedNow.Add(10*24*time.Hour)), fixedNow),
		"timestamps beyond the window must not match")
}

func TestTodayBuiltin(t *testing.T) {
	compiled, err := Compile(`today(ts)`)
	require.NoError(t, err)

	assert.True(t, compiled.Eval("meeting "+dateToken(fixedNow.Add(-4*time.Hour)), fixedNow))
	assert.True(t, compiled.Eval("late one "+dateToken(fixedNow.Add(9*time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("tomorrow "+dateToken(fixedNow.Add(24*time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("undated", fixedNow))
}

func TestBooleanCombinators(t *testing.T) {
	futureUnit := "launch x " + dateToken(fixedNow.Add(72*time.Hour))
	pastUnit := "launch x " + dateToken(fixedNow.Add(-72*time.Hour))

	compiled, err := Compile(`$('x') && future(ts)`)
	require.NoError(t, err)
	assert.True(t, compiled.Eval(futureUnit, fixedNow))
	assert.False(t, compiled.Eval(pastUnit, fixedNow))
	assert.False(t, compiled.Eval("launch y "+dateToken(fixedNow.Add(72*time.Hour)), fixedNow))

	compiled, err = Compile(`$('missing') || past(ts)`)
	require.NoError(t, err)
	assert.True(t, compiled.Eval(pastUnit, fixedNow))
	assert.False(t, compiled.Eval("neither clause holds", fixedNow))
}

func TestPrecedenceInEvaluation(t *testing.T) {
	// a || b && c: with a true and c false the whole expression is true
	// only because && binds tighter than ||.
	compiled, err := Compile(`$('a') || $('b') && $('c')`)
	require.NoError(t, err)

	assert.True(t, compiled.Eval("a b", fixedNow))
	assert.False(t, compiled.Eval("b only", fixedNow))
	assert.True(t, compiled.Eval("b and c", fixedNow))
}

func TestCompiledIsReusableAcrossUnits(t *testing.T) {
	compiled, err := Compile(`past(ts)`)
	require.NoError(t, err)

	// ts must be rebound per unit, not cached across Eval calls
	assert.True(t, compiled.Eval("done "+dateToken(fixedNow.Add(-time.Hour)), fixedNow))
	assert.False(t, compiled.Eval("no date here", fixedNow))
	assert.True(t, compiled.Eval("done "+dateToken(fixedNow.Add(-2*time.Hour)), fixedNow))
}
