package expr

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// SeedVariable is the name under which the partition seed is visible to
// selection predicates, alongside the schema's index column.
const SeedVariable = "seed"

// Predicate is a compiled partition-selection rule: a pure boolean function
// of an event index and a seed.
type Predicate struct {
	src      string
	indexVar string
	expr     hclsyntax.Expression
}

// CompilePredicate parses and validates a selection predicate. The source
// may reference exactly two variables, the schema's index column and "seed",
// and is confined to the restricted grammar enforced by validateRestricted.
func CompilePredicate(src, indexColumn string) (*Predicate, error) {
	syn, diags := hclsyntax.ParseExpression([]byte(src), "selection", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse selection predicate %q: %w", src, diags)
	}

	allowed := map[string]bool{indexColumn: true, SeedVariable: true}
	if err := validateRestricted(syn, allowed); err != nil {
		return nil, fmt.Errorf("selection predicate %q: %w", src, err)
	}

	return &Predicate{src: src, indexVar: indexColumn, expr: syn}, nil
}

// Match evaluates the predicate for one event index. It is deterministic:
// the result depends only on the index and the seed.
func (p *Predicate) Match(index, seed int64) (bool, error) {
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			p.indexVar:   cty.NumberIntVal(index),
			SeedVariable: cty.NumberIntVal(seed),
		},
	}

	v, diags := p.expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, fmt.Errorf("failed to evaluate selection predicate %q: %w", p.src, diags)
	}
	if !v.Type().Equals(cty.Bool) {
		return false, fmt.Errorf("selection predicate %q evaluated to %s, expected bool", p.src, v.Type().FriendlyName())
	}
	return v.True(), nil
}

// Source returns the predicate's original expression text.
func (p *Predicate) Source() string { return p.src }
