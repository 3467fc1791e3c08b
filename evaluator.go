package exprsafe

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// defaultTemplateDepth bounds ProcessTemplate's recursive re-splitting of
// expression results that themselves look like templates (spec.md's
// domain-stack template driver), guarding against a variable whose value
// contains a brace expression that expands into itself forever.
const defaultTemplateDepth = 5

// Evaluator is the public driver: it owns one Registry and the state left
// behind by the most recent Evaluate/EvaluateContext call (result, errors,
// name-usage lists), mirroring a single-shot compiler/VM pair rather than
// a reentrant one — concurrent callers should use one Evaluator per
// goroutine, sharing a Registry only if they coordinate writes themselves.
type Evaluator struct {
	reg *Registry
	log logrus.FieldLogger

	lastSource    string
	lastHasResult bool
	lastResult    Value
	lastErrors    *errorCollector
	lastVarsUsed  []string
	lastReserved  []string
}

// NewEvaluator returns an Evaluator with an empty Registry and a logrus
// logger; callers typically follow with RegisterFunctions/Variables/etc.
// before the first Evaluate call.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		reg: NewRegistry(),
		log: logrus.StandardLogger(),
	}
}

// SetLogger overrides the diagnostic logger; pass nil to silence logging.
func (e *Evaluator) SetLogger(log logrus.FieldLogger) { e.log = log }

// Registry exposes the underlying Registry for callers that want direct
// introspection beyond the Register* convenience wrappers below.
func (e *Evaluator) Registry() *Registry { return e.reg }

func (e *Evaluator) RegisterFunctions(fns map[string]Function)       { e.reg.RegisterFunctions(fns) }
func (e *Evaluator) RegisterVariablesMerge(vars map[string]Scalar)   { e.reg.RegisterVariablesMerge(vars) }
func (e *Evaluator) RegisterVariablesReplace(vars map[string]Scalar) { e.reg.RegisterVariablesReplace(vars) }
func (e *Evaluator) RegisterReservedMerge(words map[string]Scalar)   { e.reg.RegisterReservedMerge(words) }
func (e *Evaluator) RegisterReservedReplace(words map[string]Scalar) { e.reg.RegisterReservedReplace(words) }

// Evaluate parses and (unless parseOnly) evaluates expr against the
// Evaluator's current Registry, returning whether it succeeded. Results,
// errors and name-usage lists from this call are retained and retrievable
// via GetResult/GetErrors/GetVarsUsed/GetReservedUsed until the next call.
func (e *Evaluator) Evaluate(expr string, parseOnly bool) bool {
	ok, _ := e.EvaluateContext(context.Background(), expr, parseOnly)
	return ok
}

// EvaluateContext is Evaluate with cancellation support: ctx is checked
// once before parsing and once before evaluation begins, so a caller
// bounding wall-clock time around a batch of expressions can bail out
// between expressions without the grammar itself needing to be
// context-aware (the grammar has no unbounded loops: recursion depth is
// bounded by expression length, and no user-level looping construct
// exists per spec.md's Non-goals).
func (e *Evaluator) EvaluateContext(ctx context.Context, expr string, parseOnly bool) (bool, error) {
	collector := newErrorCollector(expr, e.log)
	e.lastSource = expr
	e.lastHasResult = false
	e.lastVarsUsed = nil
	e.lastReserved = nil

	if err := ctx.Err(); err != nil {
		collector.add("evaluation cancelled", nil)
		e.lastErrors = collector
		return false, err
	}

	tokens := Tokenize(expr)

	if errs := precheck(tokens, e.reg); len(errs) > 0 {
		for _, pe := range errs {
			collector.add(pe.Message, pe.Token)
		}
		e.lastErrors = collector
		return false, nil
	}

	p := newParser(tokens, e.reg)
	items, err := p.parseExpressions()
	if err != nil {
		if ee, ok := err.(*EvalError); ok {
			collector.add(ee.Message, ee.Token)
		} else {
			collector.add(err.Error(), nil)
		}
		e.lastErrors = collector
		return false, nil
	}
	if !p.atEnd() {
		collector.add("unbalanced equation: unexpected trailing input", p.current())
		e.lastErrors = collector
		return false, nil
	}
	if len(items) > 1 {
		collector.add("unbalanced equation: multiple top-level expressions", nil)
		e.lastErrors = collector
		return false, nil
	}

	if err := ctx.Err(); err != nil {
		collector.add("evaluation cancelled", nil)
		e.lastErrors = collector
		return false, err
	}

	evCtx := newEvalCtx(e.reg, parseOnly)
	result, evalErr := items[0].Eval(evCtx)
	e.lastVarsUsed = evCtx.varsUsed
	e.lastReserved = evCtx.reservedUsed

	if evalErr != nil {
		if ee, ok := evalErr.(*EvalError); ok {
			collector.add(ee.Message, ee.Token)
		} else {
			collector.add(evalErr.Error(), nil)
		}
		e.lastErrors = collector
		return false, nil
	}

	e.lastResult = result
	e.lastHasResult = true
	e.lastErrors = collector
	return true, nil
}

// GetResult returns the most recent successful Evaluate call's result as a
// Scalar, and whether a result is available at all.
func (e *Evaluator) GetResult() (Scalar, bool) {
	if !e.lastHasResult {
		return nil, false
	}
	return e.lastResult.AsScalar(), true
}

// GetErrors returns the located diagnostics from the most recent Evaluate
// call, empty when it succeeded.
func (e *Evaluator) GetErrors() []*EvalError {
	if e.lastErrors == nil {
		return nil
	}
	return e.lastErrors.errs()
}

// GetReadableErrors renders the most recent Evaluate call's diagnostics
// with carets under the offending source positions, per errorCollector's
// rendering rules.
func (e *Evaluator) GetReadableErrors() string {
	if e.lastErrors == nil {
		return ""
	}
	return e.lastErrors.readable()
}

// GetVarsUsed returns the distinct variable names referenced during the
// most recent Evaluate call, in first-seen order.
func (e *Evaluator) GetVarsUsed() []string { return dedupPreserveOrder(e.lastVarsUsed) }

// GetReservedUsed returns the distinct reserved words referenced during
// the most recent Evaluate call, in first-seen order.
func (e *Evaluator) GetReservedUsed() []string { return dedupPreserveOrder(e.lastReserved) }

// ProcessTemplate renders a `{ ... }` template against the Evaluator's
// Registry: each expression segment is evaluated and substituted with its
// text form, or with a rendered error block on failure; literal segments
// pass through unchanged. maxDepth bounds re-splitting of a substituted
// result that itself contains `{ ... }` markers (0 or negative selects
// defaultTemplateDepth).
func (e *Evaluator) ProcessTemplate(text string, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = defaultTemplateDepth
	}
	return e.processTemplateDepth(text, maxDepth)
}

func (e *Evaluator) processTemplateDepth(text string, depth int) string {
	segments := Split(text)
	var b strings.Builder
	for _, seg := range segments {
		if seg.Category == SegString {
			b.WriteString(seg.Text)
			continue
		}
		ok := e.Evaluate(seg.Text, false)
		if !ok {
			b.WriteString(e.GetReadableErrors())
			continue
		}
		result, _ := e.GetResult()
		rendered := FromScalar(result, seg.Offset).ToText()
		if depth > 1 && strings.ContainsAny(rendered, "{}") {
			rendered = e.processTemplateDepth(rendered, depth-1)
		}
		b.WriteString(rendered)
	}
	return b.String()
}

// AllUsedAcrossTemplate re-runs the var/reserved-word usage accounting
// that ProcessTemplate's per-expression Evaluate calls overwrite on every
// call, aggregating usage across the expression segments of text so a
// caller can ask "what did this whole template touch" in one pass. A
// segment that fails to evaluate contributes no names.
func (e *Evaluator) AllUsedAcrossTemplate(text string) (vars []string, reserved []string) {
	var varAcc, resAcc []string
	for _, seg := range Split(text) {
		if seg.Category != SegExpression {
			continue
		}
		if !e.Evaluate(seg.Text, false) {
			continue
		}
		varAcc = append(varAcc, e.lastVarsUsed...)
		resAcc = append(resAcc, e.lastReserved...)
	}
	return dedupPreserveOrder(varAcc), dedupPreserveOrder(resAcc)
}
