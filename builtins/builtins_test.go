package builtins

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/surveyrt/exprsafe"
)

func newTestEvaluator(t *testing.T) *exprsafe.Evaluator {
	t.Helper()
	ev := exprsafe.NewEvaluator()
	ev.SetLogger(nil)
	ev.RegisterFunctions(Catalog())
	return ev
}

func evalScalar(t *testing.T, ev *exprsafe.Evaluator, expr string) exprsafe.Scalar {
	t.Helper()
	ok := ev.Evaluate(expr, false)
	require.True(t, ok, ev.GetReadableErrors())
	result, hasResult := ev.GetResult()
	require.True(t, hasResult)
	return result
}

func TestMathBuiltins(t *testing.T) {
	ev := newTestEvaluator(t)

	require.Equal(t, 4.0, evalScalar(t, ev, "abs(-4)"))
	require.Equal(t, 3.0, evalScalar(t, ev, "ceil(2.1)"))
	require.Equal(t, 2.0, evalScalar(t, ev, "floor(2.9)"))
	require.Equal(t, 3.14, evalScalar(t, ev, "round(3.14159, 2)"))
	require.Equal(t, 2.0, evalScalar(t, ev, "min(5, 2, 9)"))
	require.Equal(t, 9.0, evalScalar(t, ev, "max(5, 2, 9)"))
	require.Equal(t, 16.0, evalScalar(t, ev, "sum(1, 2, 3, 10)"))
	require.Equal(t, 8.0, evalScalar(t, ev, "pow(2, 3)"))
	require.Equal(t, 3.0, evalScalar(t, ev, "sqrt(9)"))
	require.Equal(t, 4.0, evalScalar(t, ev, "intval(4.9)"))
}

func TestStringBuiltins(t *testing.T) {
	ev := newTestEvaluator(t)

	require.Equal(t, 5.0, evalScalar(t, ev, `strlen("hello")`))
	require.Equal(t, "hi", evalScalar(t, ev, `trim("  hi  ")`))
	require.Equal(t, "abc", evalScalar(t, ev, `strtolower("ABC")`))
	require.Equal(t, "ABC", evalScalar(t, ev, `strtoupper("abc")`))
	require.Equal(t, "ab", evalScalar(t, ev, `concat("a", "b")`))
	require.Equal(t, "ell", evalScalar(t, ev, `substr("hello", 1, 3)`))
	require.Equal(t, "hxllo", evalScalar(t, ev, `str_replace("e", "x", "hello")`))
}

func TestTypeCheckBuiltins(t *testing.T) {
	ev := newTestEvaluator(t)

	require.Equal(t, 1.0, evalScalar(t, ev, `is_numeric(5)`))
	require.Equal(t, 0.0, evalScalar(t, ev, `is_numeric("x")`))
	require.Equal(t, 1.0, evalScalar(t, ev, `is_empty("")`))
	require.Equal(t, 0.0, evalScalar(t, ev, `is_empty("a")`))
}

func TestListAndIf(t *testing.T) {
	ev := newTestEvaluator(t)

	require.Equal(t, "1, 2, 3", evalScalar(t, ev, "list(1, 2, 3)"))
	require.Equal(t, "yes", evalScalar(t, ev, `if(1==1, "yes", "no")`))
	require.Equal(t, "no", evalScalar(t, ev, `if(1==2, "yes", "no")`))
}

func TestNumberFormatAndFixnum(t *testing.T) {
	ev := newTestEvaluator(t)

	require.Equal(t, "3.14", evalScalar(t, ev, `fixnum(3.14159, 2)`))
	require.Equal(t, "1,234", evalScalar(t, ev, `number_format(1234)`))
}

func TestCatalogReturnsIndependentCopies(t *testing.T) {
	a := Catalog()
	b := Catalog()
	delete(a, "abs")
	_, stillPresent := b["abs"]
	require.True(t, stillPresent)
}
