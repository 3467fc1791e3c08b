package builtins

import (
	"fmt"
	"math"

	"github.com/surveyrt/exprsafe"
)

func absImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.NumberValue(math.Abs(args[0].ToNumber()), 0), nil
}

func ceilImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.NumberValue(math.Ceil(args[0].ToNumber()), 0), nil
}

func floorImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.NumberValue(math.Floor(args[0].ToNumber()), 0), nil
}

func roundImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	n := args[0].ToNumber()
	if len(args) == 1 {
		return exprsafe.NumberValue(math.Round(n), 0), nil
	}
	places := int(args[1].ToNumber())
	scale := math.Pow(10, float64(places))
	return exprsafe.NumberValue(math.Round(n*scale)/scale, 0), nil
}

func minImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	if len(args) == 0 {
		return exprsafe.Value{}, fmt.Errorf("min() requires at least one argument")
	}
	best := args[0].ToNumber()
	for _, a := range args[1:] {
		if v := a.ToNumber(); v < best {
			best = v
		}
	}
	return exprsafe.NumberValue(best, 0), nil
}

func maxImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	if len(args) == 0 {
		return exprsafe.Value{}, fmt.Errorf("max() requires at least one argument")
	}
	best := args[0].ToNumber()
	for _, a := range args[1:] {
		if v := a.ToNumber(); v > best {
			best = v
		}
	}
	return exprsafe.NumberValue(best, 0), nil
}

func sumImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	total := 0.0
	for _, a := range args {
		total += a.ToNumber()
	}
	return exprsafe.NumberValue(total, 0), nil
}

func piImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.NumberValue(math.Pi, 0), nil
}

func powImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.NumberValue(math.Pow(args[0].ToNumber(), args[1].ToNumber()), 0), nil
}

func sqrtImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	n := args[0].ToNumber()
	if n < 0 {
		return exprsafe.Value{}, fmt.Errorf("sqrt() of a negative number")
	}
	return exprsafe.NumberValue(math.Sqrt(n), 0), nil
}

func intvalImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.NumberValue(math.Trunc(args[0].ToNumber()), 0), nil
}

func floatvalImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	return exprsafe.NumberValue(args[0].ToNumber(), 0), nil
}
