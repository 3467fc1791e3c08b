package builtins

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/surveyrt/exprsafe"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatLog receives diagnostics from number_format when a requested
// locale tag cannot be parsed; nil (the default) means "don't log".
var formatLog logrus.FieldLogger

// numberFormatImpl renders a number with locale-aware grouping and decimal
// separators. The optional second argument is a BCP 47 locale tag (e.g.
// "de", "en-US"); it defaults to "en" when omitted or unparseable.
func numberFormatImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	n := args[0].ToNumber()
	tag := language.English
	if len(args) == 2 {
		raw := args[1].ToText()
		parsed, err := language.Parse(raw)
		if err != nil {
			if formatLog != nil {
				formatLog.WithFields(logrus.Fields{"locale": raw, "error": err}).
					Warn("number_format: unsupported locale tag, falling back to en")
			}
		} else {
			tag = parsed
		}
	}
	p := message.NewPrinter(tag)
	return exprsafe.TextValue(p.Sprintf("%v", number(n)), 0), nil
}

// number hands an integral n to message.Printer as an int64, so it is
// formatted as an integer; any other value is passed through unchanged as
// a float64.
func number(n float64) any {
	if n == float64(int64(n)) {
		return int64(n)
	}
	return n
}

// fixnumImpl renders a number with exactly the requested number of
// decimal places and no locale-specific grouping, for contexts (e.g.
// machine-readable output) where number_format's grouping is unwanted.
func fixnumImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	n := args[0].ToNumber()
	places := int(args[1].ToNumber())
	if places < 0 {
		places = 0
	}
	return exprsafe.TextValue(strconv.FormatFloat(n, 'f', places, 64), 0), nil
}
