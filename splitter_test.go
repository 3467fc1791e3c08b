package exprsafe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	t.Run("plain text only", func(t *testing.T) {
		segs := Split("hello world")
		require.Len(t, segs, 1)
		require.Equal(t, SegString, segs[0].Category)
		require.Equal(t, "hello world", segs[0].Text)
	})

	t.Run("text and expression interleaved", func(t *testing.T) {
		segs := Split("{name}, you are {age}")
		require.Len(t, segs, 3)
		require.Equal(t, SegExpression, segs[0].Category)
		require.Equal(t, "name", segs[0].Text)
		require.Equal(t, SegString, segs[1].Category)
		require.Equal(t, ", you are ", segs[1].Text)
		require.Equal(t, SegExpression, segs[2].Category)
		require.Equal(t, "age", segs[2].Text)
	})

	t.Run("escaped braces are literal", func(t *testing.T) {
		segs := Split(`\{not an expr\}`)
		require.Len(t, segs, 1)
		require.Equal(t, SegString, segs[0].Category)
		require.Equal(t, "{not an expr}", segs[0].Text)
	})

	t.Run("quoted braces inside expression are transparent", func(t *testing.T) {
		segs := Split(`{concat("}", "{")}`)
		require.Len(t, segs, 1)
		require.Equal(t, SegExpression, segs[0].Category)
		require.Equal(t, `concat("}", "{")`, segs[0].Text)
	})

	t.Run("nested braces balance", func(t *testing.T) {
		segs := Split("{ if(a, {b}, c) }")
		require.Len(t, segs, 1)
		require.Equal(t, SegExpression, segs[0].Category)
	})
}
