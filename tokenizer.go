package exprsafe

import (
	"regexp"
	"strconv"
	"strings"
)

// lexRule pairs a compiled pattern with the category it produces. Rules are
// tried in order at each cursor position; the first match wins, so more
// specific patterns (keyword comparators, SGQA) are listed ahead of the
// generic WORD pattern they would otherwise be swallowed by.
type lexRule struct {
	category Category
	pattern  *regexp.Regexp
}

// Patterns are anchored at the start of the remaining input (`\A`) so a
// match always begins exactly at the cursor; regexp.FindString on an
// unanchored pattern would happily skip ahead and silently drop bytes.
var lexRules = []lexRule{
	{CatSTRING, regexp.MustCompile(`\A"(?:\\"|[^"])*"`)},
	{CatSTRING, regexp.MustCompile(`\A'(?:\\'|[^'])*'`)},
	{CatSPACE, regexp.MustCompile(`\A[ \t\r\n]+`)},
	{CatOTHER, regexp.MustCompile(`\A(?:\+\+|--)`)},
	{CatLP, regexp.MustCompile(`\A\(`)},
	{CatRP, regexp.MustCompile(`\A\)`)},
	{CatCOMMA, regexp.MustCompile(`\A,`)},
	{CatCOMPARE, regexp.MustCompile(`\A(?:<=|>=|==|!=|<|>)`)},
	{CatASSIGN, regexp.MustCompile(`\A(?:\+=|-=|\*=|/=|=)`)},
	{CatAND_OR, regexp.MustCompile(`\A(?:&&|\|\|)`)},
	{CatCOMPARE, regexp.MustCompile(`(?i)\A(?:le|lt|ge|gt|eq|ne)\b`)},
	{CatAND_OR, regexp.MustCompile(`(?i)\A(?:and|or)\b`)},
	{CatNOT, regexp.MustCompile(`\A!`)},
	{CatBINARYOP, regexp.MustCompile(`\A[+\-*/]`)},
	{CatSGQA, regexp.MustCompile(`(?i)\A[0-9]+[x][0-9]+[x][0-9]+(?:[a-z0-9_]+)?(?:#[12])?`)},
	{CatWORD, regexp.MustCompile(`\A[A-Za-z][A-Za-z0-9_]*(?::[A-Za-z0-9_]+)?(?:\.[A-Za-z0-9_]+){0,4}`)},
	{CatNUMBER, regexp.MustCompile(`\A(?:[0-9]+\.[0-9]+|\.[0-9]+|[0-9]+)`)},
}

// otherRule catches anything the patterns above fail to classify, so the
// parser always has something to point an "unsupported syntax" error at
// instead of the tokenizer simply stalling.
var otherRule = regexp.MustCompile(`\A.`)

var stringEscapeReplacer = strings.NewReplacer(
	`\\`, `\`,
	`\"`, `"`,
	`\'`, `'`,
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
)

// Tokenize splits an expression string into an ordered Token list,
// discarding SPACE tokens, preserving exact byte offsets, and classifying
// each lexeme per the longest-match-first rule list above. It never
// returns an error: unrecognized input is retained as a CatOTHER token so
// the parser's pre-parse check can report a located syntax error.
func Tokenize(src string) []*Token {
	tokens := make([]*Token, 0, len(src)/2+1)
	pos := 0
	for pos < len(src) {
		rest := src[pos:]

		matched := false
		for _, rule := range lexRules {
			loc := rule.pattern.FindStringIndex(rest)
			if loc == nil || loc[0] != 0 {
				continue
			}
			lexeme := rest[:loc[1]]
			if rule.category != CatSPACE {
				tok := &Token{
					Lexeme:   lexeme,
					Offset:   pos,
					Category: rule.category,
				}
				if rule.category == CatSTRING {
					tok.Lexeme = decodeStringLiteral(lexeme)
				}
				tokens = append(tokens, tok)
			}
			pos += loc[1]
			matched = true
			break
		}
		if matched {
			continue
		}

		loc := otherRule.FindStringIndex(rest)
		width := 1
		if loc != nil {
			width = loc[1]
		}
		tokens = append(tokens, &Token{
			Lexeme:   rest[:width],
			Offset:   pos,
			Category: CatOTHER,
		})
		pos += width
	}
	return tokens
}

// decodeStringLiteral strips the surrounding quotes from a matched STRING
// lexeme and decodes the two same-quote escapes plus the standard
// backslash escapes.
func decodeStringLiteral(lexeme string) string {
	if len(lexeme) < 2 {
		return lexeme
	}
	inner := lexeme[1 : len(lexeme)-1]
	return stringEscapeReplacer.Replace(inner)
}

// parseNumberLexeme converts a NUMBER token's lexeme to its float64 value.
func parseNumberLexeme(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}
