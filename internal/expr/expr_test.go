package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicateModularArithmetic(t *testing.T) {
	p, err := CompilePredicate("event_no % 5 > 1", "event_no")
	require.NoError(t, err)

	// event_no % 5 ∈ {2, 3, 4} matches.
	matches := map[int64]bool{0: false, 1: false, 2: true, 3: true, 4: true, 5: false, 7: true}
	for index, want := range matches {
		got, err := p.Match(index, 42)
		require.NoError(t, err)
		assert.Equal(t, want, got, "index %d", index)
	}
}

func TestPredicateIsDeterministic(t *testing.T) {
	p, err := CompilePredicate("(event_no + seed) % 3 == 0", "event_no")
	require.NoError(t, err)

	for index := int64(0); index < 100; index++ {
		first, err := p.Match(index, 7)
		require.NoError(t, err)
		second, err := p.Match(index, 7)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestPredicateRejectsForeignVariables(t *testing.T) {
	_, err := CompilePredicate("run_id % 2 == 0", "event_no")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run_id")
}

func TestPredicateRejectsFunctionCalls(t *testing.T) {
	_, err := CompilePredicate("max(event_no, 3) > 1", "event_no")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max")
}

func TestPredicateRequiresBooleanResult(t *testing.T) {
	p, err := CompilePredicate("event_no % 5", "event_no")
	require.NoError(t, err)

	_, err = p.Match(3, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected bool")
}

func TestCompileFunctionAndCall(t *testing.T) {
	f, err := CompileFunction("x -> x / 1000")
	require.NoError(t, err)
	assert.Equal(t, 1, f.Arity())

	y, err := f.Call(2500)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, y, 1e-12)
}

func TestFunctionWithMathAllowlist(t *testing.T) {
	f, err := CompileFunction("x -> log(x, 10)")
	require.NoError(t, err)

	y, err := f.Call(1000)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, y, 1e-9)
}

func TestFunctionRejectsUnknownFunctions(t *testing.T) {
	_, err := CompileFunction("x -> shuffle(x)")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shuffle")
}

func TestFunctionFixedArity(t *testing.T) {
	f, err := CompileFunction("x, y -> x * y")
	require.NoError(t, err)
	assert.Equal(t, 2, f.Arity())

	_, err = f.Call(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 2 argument(s)")
}

func TestFunctionCompilationFailure(t *testing.T) {
	_, err := CompileFunction("x -> x +")
	require.Error(t, err)

	_, err = CompileFunction("no arrow here")
	require.Error(t, err)

	_, err = CompileFunction("1bad -> 1bad + 1")
	require.Error(t, err)
}

func TestApplyMapsElementwise(t *testing.T) {
	f, err := CompileFunction("x -> x * 2")
	require.NoError(t, err)

	out, err := f.Apply([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, out)

	g, err := CompileFunction("x, y -> x + y")
	require.NoError(t, err)
	_, err = g.Apply([]float64{1})
	require.Error(t, err)
}
