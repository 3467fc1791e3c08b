package builtins

import (
	"fmt"
	"strings"

	"github.com/surveyrt/exprsafe"
)

func strlenImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.NumberValue(float64(len([]rune(args[0].ToText()))), 0), nil
}

func trimImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.TextValue(strings.TrimSpace(args[0].ToText()), 0), nil
}

func strtolowerImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.TextValue(strings.ToLower(args[0].ToText()), 0), nil
}

func strtoupperImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.TextValue(strings.ToUpper(args[0].ToText()), 0), nil
}

func concatImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(a.ToText())
	}
	return exprsafe.TextValue(b.String(), 0), nil
}

func substrImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	runes := []rune(args[0].ToText())
	start := int(args[1].ToNumber())
	if start < 0 {
		start += len(runes)
	}
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}
	end := len(runes)
	if len(args) == 3 {
		length := int(args[2].ToNumber())
		if length < 0 {
			length = 0
		}
		if start+length < end {
			end = start + length
		}
	}
	return exprsafe.TextValue(string(runes[start:end]), 0), nil
}

func strReplaceImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	search := args[0].ToText()
	replace := args[1].ToText()
	subject := args[2].ToText()
	return exprsafe.TextValue(strings.ReplaceAll(subject, search, replace), 0), nil
}

func sprintfImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	if len(args) == 0 {
		return exprsafe.Value{}, fmt.Errorf("sprintf() requires a format string")
	}
	format := args[0].ToText()
	rest := make([]any, 0, len(args)-1)
	for _, a := range args[1:] {
		if a.IsText {
			rest = append(rest, a.ToText())
		} else {
			rest = append(rest, a.ToNumber())
		}
	}
	return exprsafe.TextValue(fmt.Sprintf(format, rest...), 0), nil
}
