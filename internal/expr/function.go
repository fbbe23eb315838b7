package expr

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// mathFunctions is the allowlist of pure functions available to inline
// transform expressions. All come from the cty stdlib.
var mathFunctions = map[string]function.Function{
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"log":    stdlib.LogFunc,
	"max":    stdlib.MaxFunc,
	"min":    stdlib.MinFunc,
	"pow":    stdlib.PowFunc,
	"signum": stdlib.SignumFunc,
}

// Function is a compiled inline callable literal of the form
// "params -> expression", e.g. "x -> x / 1000". Arity is fixed by the
// parameter list at compile time.
type Function struct {
	src    string
	params []string
	expr   hclsyntax.Expression
}

// CompileFunction compiles inline function source. Compilation failures are
// configuration errors and must surface before first use; the caller wraps
// them with the offending argument path.
func CompileFunction(src string) (*Function, error) {
	head, body, ok := strings.Cut(src, "->")
	if !ok {
		return nil, fmt.Errorf("function literal %q must have the form \"params -> expression\"", src)
	}

	var params []string
	for _, raw := range strings.Split(head, ",") {
		name := strings.TrimSpace(raw)
		if !hclsyntax.ValidIdentifier(name) {
			return nil, fmt.Errorf("function literal %q: invalid parameter name %q", src, name)
		}
		params = append(params, name)
	}

	syn, diags := hclsyntax.ParseExpression([]byte(body), "function", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to compile function literal %q: %w", src, diags)
	}

	allowed := make(map[string]bool, len(params))
	for _, p := range params {
		allowed[p] = true
	}
	if err := validateFunctionBody(syn, allowed); err != nil {
		return nil, fmt.Errorf("function literal %q: %w", src, err)
	}

	return &Function{src: src, params: params, expr: syn}, nil
}

// Arity returns the number of parameters the function was compiled with.
func (f *Function) Arity() int { return len(f.params) }

// Source returns the original literal text, used when a live object graph is
// serialized back into configuration nodes.
func (f *Function) Source() string { return f.src }

// Call evaluates the function for one set of scalar arguments.
func (f *Function) Call(args ...float64) (float64, error) {
	if len(args) != len(f.params) {
		return 0, fmt.Errorf("function %q expects %d argument(s), got %d", f.src, len(f.params), len(args))
	}

	vars := make(map[string]cty.Value, len(f.params))
	for i, p := range f.params {
		vars[p] = cty.NumberFloatVal(args[i])
	}
	evalCtx := &hcl.EvalContext{Variables: vars, Functions: mathFunctions}

	v, diags := f.expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, fmt.Errorf("failed to evaluate function %q: %w", f.src, diags)
	}
	if !v.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("function %q evaluated to %s, expected number", f.src, v.Type().FriendlyName())
	}

	out, _ := v.AsBigFloat().Float64()
	return out, nil
}

// Apply maps a single-parameter function elementwise over a column.
func (f *Function) Apply(xs []float64) ([]float64, error) {
	if len(f.params) != 1 {
		return nil, fmt.Errorf("function %q has arity %d, elementwise application requires arity 1", f.src, len(f.params))
	}

	out := make([]float64, len(xs))
	for i, x := range xs {
		y, err := f.Call(x)
		if err != nil {
			return nil, err
		}
		out[i] = y
	}
	return out, nil
}

// validateFunctionBody enforces the restricted grammar for transform
// expressions: the selection-predicate grammar extended with calls to the
// allowlisted math functions.
func validateFunctionBody(expr hclsyntax.Expression, allowedVars map[string]bool) error {
	if call, ok := expr.(*hclsyntax.FunctionCallExpr); ok {
		if _, known := mathFunctions[call.Name]; !known {
			return fmt.Errorf("function %q is not in the allowlist", call.Name)
		}
		for _, arg := range call.Args {
			if err := validateFunctionBody(arg, allowedVars); err != nil {
				return err
			}
		}
		return nil
	}

	switch e := expr.(type) {
	case *hclsyntax.UnaryOpExpr:
		return validateFunctionBody(e.Val, allowedVars)
	case *hclsyntax.BinaryOpExpr:
		if err := validateFunctionBody(e.LHS, allowedVars); err != nil {
			return err
		}
		return validateFunctionBody(e.RHS, allowedVars)
	case *hclsyntax.ParenthesesExpr:
		return validateFunctionBody(e.Expression, allowedVars)
	case *hclsyntax.ConditionalExpr:
		if err := validateFunctionBody(e.Condition, allowedVars); err != nil {
			return err
		}
		if err := validateFunctionBody(e.TrueResult, allowedVars); err != nil {
			return err
		}
		return validateFunctionBody(e.FalseResult, allowedVars)
	case *hclsyntax.LiteralValueExpr:
		return nil
	case *hclsyntax.ScopeTraversalExpr:
		root := e.Traversal.RootName()
		if !allowedVars[root] {
			return fmt.Errorf("reference to %q is not a declared parameter", root)
		}
		if len(e.Traversal) != 1 {
			return fmt.Errorf("reference to %q must be a bare variable", root)
		}
		return nil
	default:
		return fmt.Errorf("expression construct %T is not allowed in function literals", expr)
	}
}
