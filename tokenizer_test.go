package exprsafe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	t.Run("arithmetic and parens", func(t *testing.T) {
		toks := Tokenize("(1 + 2) * 3")
		var cats []Category
		var lexemes []string
		for _, tok := range toks {
			cats = append(cats, tok.Category)
			lexemes = append(lexemes, tok.Lexeme)
		}
		require.Equal(t, []Category{CatLP, CatNUMBER, CatBINARYOP, CatNUMBER, CatRP, CatBINARYOP, CatNUMBER}, cats)
		require.Equal(t, []string{"(", "1", "+", "2", ")", "*", "3"}, lexemes)
	})

	t.Run("space tokens are dropped", func(t *testing.T) {
		toks := Tokenize("  a   b  ")
		require.Len(t, toks, 2)
		require.Equal(t, 2, toks[0].Offset)
		require.Equal(t, 6, toks[1].Offset)
	})

	t.Run("string literal escapes", func(t *testing.T) {
		toks := Tokenize(`"hi \"there\""`)
		require.Len(t, toks, 1)
		require.Equal(t, CatSTRING, toks[0].Category)
		require.Equal(t, `hi "there"`, toks[0].Lexeme)
	})

	t.Run("sgqa pattern wins over word", func(t *testing.T) {
		toks := Tokenize("12X34X56")
		require.Len(t, toks, 1)
		require.Equal(t, CatSGQA, toks[0].Category)
	})

	t.Run("keyword comparators are case-insensitive", func(t *testing.T) {
		toks := Tokenize("a LT b")
		require.Len(t, toks, 3)
		require.Equal(t, CatCOMPARE, toks[1].Category)
		require.Equal(t, "LT", toks[1].Lexeme)
	})

	t.Run("unrecognized input becomes OTHER", func(t *testing.T) {
		toks := Tokenize("++a")
		require.NotEmpty(t, toks)
		require.Equal(t, CatOTHER, toks[0].Category)
		require.Equal(t, 0, toks[0].Offset)
	})

	t.Run("offsets survive multi-byte lexemes", func(t *testing.T) {
		toks := Tokenize("one + two")
		require.Equal(t, 0, toks[0].Offset)
		require.Equal(t, 4, toks[1].Offset)
		require.Equal(t, 6, toks[2].Offset)
	})
}
