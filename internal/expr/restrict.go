package expr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// validateRestricted walks an expression's syntax tree and rejects every
// construct outside the deterministic arithmetic/comparison grammar:
// literals, references to the allowed variables, unary and binary operators,
// parentheses, and conditionals. Function calls, templates, iteration, and
// collection constructors are all rejected so a predicate cannot smuggle in
// nondeterminism or arbitrary computation.
func validateRestricted(expr hclsyntax.Expression, allowedVars map[string]bool) error {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return nil
	case *hclsyntax.ScopeTraversalExpr:
		root := e.Traversal.RootName()
		if !allowedVars[root] {
			return fmt.Errorf("reference to %q is not allowed; predicates may only use the index column and %q", root, SeedVariable)
		}
		if len(e.Traversal) != 1 {
			return fmt.Errorf("reference to %q must be a bare variable", root)
		}
		return nil
	case *hclsyntax.UnaryOpExpr:
		return validateRestricted(e.Val, allowedVars)
	case *hclsyntax.BinaryOpExpr:
		if err := validateRestricted(e.LHS, allowedVars); err != nil {
			return err
		}
		return validateRestricted(e.RHS, allowedVars)
	case *hclsyntax.ParenthesesExpr:
		return validateRestricted(e.Expression, allowedVars)
	case *hclsyntax.ConditionalExpr:
		if err := validateRestricted(e.Condition, allowedVars); err != nil {
			return err
		}
		if err := validateRestricted(e.TrueResult, allowedVars); err != nil {
			return err
		}
		return validateRestricted(e.FalseResult, allowedVars)
	case *hclsyntax.FunctionCallExpr:
		return fmt.Errorf("function call %q is not allowed in selection predicates", e.Name)
	default:
		return fmt.Errorf("expression construct %T is not allowed in selection predicates", expr)
	}
}
