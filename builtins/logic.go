package builtins

import "github.com/surveyrt/exprsafe"

// ifImpl selects between two already-evaluated branches by the first
// argument's truthiness. Both branches are evaluated by the time a
// function call's arguments reach any FunctionImpl (spec.md §9: no
// short-circuit evaluation anywhere, including if()), so this only picks
// which already-computed Value to return.
func ifImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	if args[0].Truthy() {
		return args[1], nil
	}
	return args[2], nil
}

// listImpl comma-joins the string form of every argument.
func listImpl(args []exprsafe.Value) (exprsafe.Value, error) {
	var out string
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a.ToText()
	}
	return exprsafe.TextValue(out, 0), nil
}
