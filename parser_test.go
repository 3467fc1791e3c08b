package exprsafe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func evalNumber(t *testing.T, reg *Registry, expr string) float64 {
	t.Helper()
	tokens := Tokenize(expr)
	p := newParser(tokens, reg)
	items, err := p.parseExpressions()
	require.NoError(t, err)
	require.True(t, p.atEnd())
	require.Len(t, items, 1)
	ctx := newEvalCtx(reg, false)
	v, err := items[0].Eval(ctx)
	require.NoError(t, err)
	return v.ToNumber()
}

func TestParserAssociativity(t *testing.T) {
	reg := NewRegistry()

	t.Run("subtraction is left-associative", func(t *testing.T) {
		require.Equal(t, 3.0, evalNumber(t, reg, "10 - 5 - 2"))
	})

	t.Run("division is left-associative", func(t *testing.T) {
		require.Equal(t, 2.0, evalNumber(t, reg, "20 / 5 / 2"))
	})

	t.Run("multiplicative binds tighter than additive", func(t *testing.T) {
		require.Equal(t, 14.0, evalNumber(t, reg, "2 + 3 * 4"))
	})

	t.Run("parentheses override precedence", func(t *testing.T) {
		require.Equal(t, 20.0, evalNumber(t, reg, "(2 + 3) * 4"))
	})

	t.Run("unary minus binds tighter than multiplicative", func(t *testing.T) {
		require.Equal(t, -6.0, evalNumber(t, reg, "-2 * 3"))
	})

	t.Run("comparison then equality precedence", func(t *testing.T) {
		require.Equal(t, 1.0, evalNumber(t, reg, "(1 < 2) == (3 > 2)"))
	})
}

func TestParserGroupDiscardsAllButLast(t *testing.T) {
	reg := NewRegistry()
	require.Equal(t, 3.0, evalNumber(t, reg, "(1, 2, 3)"))
}

func TestParserLogicalNoShortCircuit(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterVariablesMerge(map[string]Scalar{"x": 1.0})

	var calls int
	reg.RegisterFunctions(map[string]Function{
		"bump": {Accepts: FixedArity(0), Impl: func(args []Value) (Value, error) {
			calls++
			return NumberValue(1, 0), nil
		}},
	})

	require.Equal(t, 1.0, evalNumber(t, reg, "x==1 or bump()"))
	require.Equal(t, 1, calls, "right side of 'or' must still be evaluated even when the left side is truthy")
}
