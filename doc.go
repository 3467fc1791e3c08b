// Package exprsafe implements a sandboxed expression evaluator for the
// text-substitution template language used by the host survey/template
// runtime: plain text interleaved with `{ ... }` expressions, evaluated
// against a fixed grammar over pre-registered functions, variables and
// reserved words only. Arbitrary host-language calls are never reachable
// from an expression.
//
// The pipeline is: Splitter (splitter.go) isolates EXPRESSION segments from
// surrounding text; Tokenizer (tokenizer.go) turns an expression string into
// an ordered, position-preserving Token list; the recursive-descent Parser
// (parser.go, ast.go) walks that list against the grammar, building a tree
// of nodes that is then evaluated; Registry (registry.go) is the only place names are looked up;
// Collector (errors.go) accumulates and renders diagnostics. Evaluator
// (evaluator.go) is the public driver tying all of this together.
//
//	ev := exprsafe.NewEvaluator()
//	ev.RegisterFunctions(builtins.Catalog())
//	ev.RegisterVariablesMerge(map[string]exprsafe.Scalar{"name": "Sergei", "age": 45})
//	out := ev.ProcessTemplate("{name}, you are {age}", 0)
//	fmt.Println(out) // Output: Sergei, you are 45
package exprsafe
