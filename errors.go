package exprsafe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// EvalError is one located diagnostic: a message and the offending Token,
// when one is available (some errors, like "unbalanced equation", are
// reported without a specific token).
type EvalError struct {
	Message string
	Token   *Token
}

func (e *EvalError) Error() string {
	if e.Token == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (near %s)", e.Message, e.Token.String())
}

// errorCollector accumulates EvalErrors for one Evaluate call and can
// render them alongside the original source for inspection.
type errorCollector struct {
	errors []*EvalError
	source string
	log    logrus.FieldLogger
}

func newErrorCollector(source string, log logrus.FieldLogger) *errorCollector {
	return &errorCollector{source: source, log: log}
}

// add appends a new error with the given token (nil when position-less).
func (c *errorCollector) add(msg string, tok *Token) {
	e := &EvalError{Message: msg, Token: tok}
	c.errors = append(c.errors, e)
	if c.log != nil {
		fields := logrus.Fields{"message": msg}
		if tok != nil {
			fields["offset"] = tok.Offset
			fields["lexeme"] = tok.Lexeme
		}
		c.log.WithFields(fields).Debug("expression evaluation error")
	}
}

func (c *errorCollector) hasErrors() bool { return len(c.errors) > 0 }

func (c *errorCollector) errs() []*EvalError {
	out := make([]*EvalError, len(c.errors))
	copy(out, c.errors)
	return out
}

// readable renders the collected errors: positioned errors are sorted by
// source offset and each one is shown with a caret under the offending
// lexeme in the original source; position-less errors are listed after,
// in a trailing bucket.
func (c *errorCollector) readable() string {
	if len(c.errors) == 0 {
		return ""
	}

	positioned := make([]*EvalError, 0, len(c.errors))
	general := make([]*EvalError, 0)
	for _, e := range c.errors {
		if e.Token != nil {
			positioned = append(positioned, e)
		} else {
			general = append(general, e)
		}
	}
	sort.SliceStable(positioned, func(i, j int) bool {
		return positioned[i].Token.Offset < positioned[j].Token.Offset
	})

	var b strings.Builder
	b.WriteString(c.source)
	b.WriteByte('\n')
	for _, e := range positioned {
		col := e.Token.Offset
		if col < 0 {
			col = 0
		}
		if col > len(c.source) {
			col = len(c.source)
		}
		b.WriteString(strings.Repeat(" ", col))
		b.WriteString("^-- ")
		b.WriteString(e.Message)
		b.WriteByte('\n')
	}
	if len(general) > 0 {
		b.WriteString("General errors:\n")
		for _, e := range general {
			b.WriteString(" - ")
			b.WriteString(e.Message)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
