package builtins

import "github.com/surveyrt/exprsafe"

func isNumericImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.BoolValue(args[0].IsNumber(), 0), nil
}

func isEmptyImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.BoolValue(!args[0].Truthy(), 0), nil
}
