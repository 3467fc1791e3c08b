package exprsafe

import (
	"fmt"
	"strings"
)

// node is one AST production from spec.md §4.4's grammar. Every node
// evaluates to exactly one Value, matching the "each rule leaves exactly
// one Value on the stack on success" evaluation model.
type node interface {
	Eval(ctx *evalCtx) (Value, error)
}

// evalCtx is the per-call transient state threaded through one Evaluate
// invocation: the registry being consulted, the parse-only flag, and the
// name-usage lists. Name lists retain insertion order (including repeats)
// and are deduplicated only on retrieval, matching spec.md §9's "Name
// tracking lists" guidance.
type evalCtx struct {
	reg          *Registry
	parseOnly    bool
	varsUsed     []string
	reservedUsed []string
}

func newEvalCtx(reg *Registry, parseOnly bool) *evalCtx {
	return &evalCtx{reg: reg, parseOnly: parseOnly}
}

func (c *evalCtx) noteVar(name string)      { c.varsUsed = append(c.varsUsed, name) }
func (c *evalCtx) noteReserved(name string) { c.reservedUsed = append(c.reservedUsed, name) }

// push implements spec.md §4.4's parse-only "push" rule: every value a
// node would place on the stack has its payload replaced by the literal
// number 1 (text "1" when the payload is text), while its Category tag is
// preserved. In normal mode push is a no-op.
func (c *evalCtx) push(v Value) Value {
	if !c.parseOnly {
		return v
	}
	if v.IsText {
		return Value{Text: "1", IsText: true, Category: v.Category, Offset: v.Offset}
	}
	return Value{Num: 1, IsText: false, Category: v.Category, Offset: v.Offset}
}

func dedupPreserveOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// --- leaf nodes ---

type numberLit struct {
	val float64
	tok *Token
}

func (n *numberLit) Eval(ctx *evalCtx) (Value, error) {
	return ctx.push(NumberValue(n.val, n.tok.Offset)), nil
}

type stringLit struct {
	val string
	tok *Token
}

func (n *stringLit) Eval(ctx *evalCtx) (Value, error) {
	return ctx.push(TextValue(n.val, n.tok.Offset)), nil
}

type variableRef struct {
	name string
	tok  *Token
}

func (n *variableRef) Eval(ctx *evalCtx) (Value, error) {
	scalar, ok := ctx.reg.Variable(n.name)
	if !ok {
		return Value{}, &EvalError{Message: fmt.Sprintf("undefined variable: %s", n.name), Token: n.tok}
	}
	ctx.noteVar(n.name)
	return ctx.push(FromScalar(scalar, n.tok.Offset)), nil
}

type reservedRef struct {
	name string
	tok  *Token
}

func (n *reservedRef) Eval(ctx *evalCtx) (Value, error) {
	scalar, ok := ctx.reg.Reserved(n.name)
	if !ok {
		return Value{}, &EvalError{Message: fmt.Sprintf("undefined reserved word: %s", n.name), Token: n.tok}
	}
	ctx.noteReserved(n.name)
	return ctx.push(FromScalar(scalar, n.tok.Offset)), nil
}

// --- function call ---

type functionCall struct {
	name string
	tok  *Token
	args []node
}

func (n *functionCall) Eval(ctx *evalCtx) (Value, error) {
	argVals := make([]Value, len(n.args))
	for i, a := range n.args {
		v, err := a.Eval(ctx)
		if err != nil {
			return Value{}, err
		}
		argVals[i] = v
	}

	fn, ok := ctx.reg.Function(n.name)
	if !ok {
		return Value{}, &EvalError{Message: fmt.Sprintf("undefined function: %s", n.name), Token: n.tok}
	}
	if !fn.Accepts.Accepts(len(argVals)) {
		return Value{}, &EvalError{Message: fmt.Sprintf("wrong number of arguments to %s(): got %d", n.name, len(argVals)), Token: n.tok}
	}

	if ctx.parseOnly {
		// Grammar and arity are exercised above; the host implementation
		// is never invoked so side effects and real-data dependencies
		// cannot leak into a syntax-only check.
		return Value{Num: 1, Category: ValNumber, Offset: n.tok.Offset}, nil
	}

	result, err := fn.Impl(argVals)
	if err != nil {
		return Value{}, &EvalError{Message: fmt.Sprintf("%s(): %v", n.name, err), Token: n.tok}
	}
	result.Category = ValNumber // spec.md §4.4: call results are always NUMBER-categorized
	result.Offset = n.tok.Offset
	return ctx.push(result), nil
}

// --- assignment ---

type assignment struct {
	nameTok *Token
	op      string // "=", "+=", "-=", "*=", "/="
	rhs     node
}

func (n *assignment) Eval(ctx *evalCtx) (Value, error) {
	name := n.nameTok.Lexeme
	if !ctx.reg.IsVariable(name) {
		return Value{}, &EvalError{Message: fmt.Sprintf("cannot assign to %q: not a known variable", name), Token: n.nameTok}
	}

	rhsVal, err := n.rhs.Eval(ctx)
	if err != nil {
		return Value{}, err
	}

	var newVal Value
	if n.op == "=" {
		newVal = rhsVal
	} else {
		curScalar, _ := ctx.reg.Variable(name)
		curVal := FromScalar(curScalar, n.nameTok.Offset)
		newVal, err = arith(strings.TrimSuffix(n.op, "="), curVal, rhsVal, n.nameTok)
		if err != nil {
			return Value{}, err
		}
	}

	if !ctx.parseOnly {
		ctx.reg.SetVariable(name, newVal.AsScalar())
	}
	ctx.noteVar(name)
	newVal.Offset = n.nameTok.Offset
	return ctx.push(newVal), nil
}

// --- logical (no short-circuit, per spec.md §9) ---

type logical struct {
	op          string // "and" | "or"
	tok         *Token
	left, right node
}

func (n *logical) Eval(ctx *evalCtx) (Value, error) {
	lv, err := n.left.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	rv, err := n.right.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	var result bool
	if n.op == "and" {
		result = lv.Truthy() && rv.Truthy()
	} else {
		result = lv.Truthy() || rv.Truthy()
	}
	return ctx.push(BoolValue(result, n.tok.Offset)), nil
}

// --- equality ---

type equality struct {
	op          string // "==" | "!="
	tok         *Token
	left, right node
}

func (n *equality) Eval(ctx *evalCtx) (Value, error) {
	lv, err := n.left.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	rv, err := n.right.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	eq := lv.EqualTo(rv)
	if n.op == "!=" {
		eq = !eq
	}
	return ctx.push(BoolValue(eq, n.tok.Offset)), nil
}

// --- relational ---

type relational struct {
	op          string // "<" | "<=" | ">" | ">="
	tok         *Token
	left, right node
}

func (n *relational) Eval(ctx *evalCtx) (Value, error) {
	lv, err := n.left.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	rv, err := n.right.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	a, b := lv.ToNumber(), rv.ToNumber()
	var result bool
	switch n.op {
	case "<":
		result = a < b
	case "<=":
		result = a <= b
	case ">":
		result = a > b
	case ">=":
		result = a >= b
	}
	return ctx.push(BoolValue(result, n.tok.Offset)), nil
}

// --- additive / multiplicative ---

type binaryArith struct {
	op          string // "+" | "-" | "*" | "/"
	tok         *Token
	left, right node
}

func (n *binaryArith) Eval(ctx *evalCtx) (Value, error) {
	lv, err := n.left.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	rv, err := n.right.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	result, err := arith(n.op, lv, rv, n.tok)
	if err != nil {
		return Value{}, err
	}
	return ctx.push(result), nil
}

// arith implements the four arithmetic operators over coerced NUMBER
// operands. Division by zero is an explicit reported runtime error, per
// spec.md §4.4/§7 ("captured from the host arithmetic"), rather than
// silently propagating +/-Inf or NaN.
func arith(op string, a, b Value, tok *Token) (Value, error) {
	x, y := a.ToNumber(), b.ToNumber()
	switch op {
	case "+":
		return NumberValue(x+y, tok.Offset), nil
	case "-":
		return NumberValue(x-y, tok.Offset), nil
	case "*":
		return NumberValue(x*y, tok.Offset), nil
	case "/":
		if y == 0 {
			return Value{}, &EvalError{Message: "division by zero", Token: tok}
		}
		return NumberValue(x/y, tok.Offset), nil
	}
	panic("exprsafe: unreachable arithmetic operator " + op)
}

// --- unary ---

type unary struct {
	op      string // "+" | "-" | "!"
	tok     *Token
	operand node
}

func (n *unary) Eval(ctx *evalCtx) (Value, error) {
	v, err := n.operand.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	switch n.op {
	case "+":
		return ctx.push(NumberValue(v.ToNumber(), n.tok.Offset)), nil
	case "-":
		return ctx.push(NumberValue(-v.ToNumber(), n.tok.Offset)), nil
	case "!":
		return ctx.push(BoolValue(!v.Truthy(), n.tok.Offset)), nil
	}
	panic("exprsafe: unreachable unary operator " + n.op)
}

// --- parenthesized comma group ---

// group evaluates a parenthesized "Expressions" list left to right and
// keeps only the last value, discarding the rest — the "caller of
// Expressions pops the surplus" behavior spec.md §4.4 describes, as
// opposed to the top-level Evaluate entry point, which has no such caller
// and instead reports "unbalanced equation" on surplus.
type group struct {
	items []node
}

func (n *group) Eval(ctx *evalCtx) (Value, error) {
	var last Value
	for _, item := range n.items {
		v, err := item.Eval(ctx)
		if err != nil {
			return Value{}, err
		}
		last = v
	}
	return last, nil
}
