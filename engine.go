package verdict

import (
	"context"
	"fmt"

	"github.com/verdict-rules/verdict/ruleql"
)

// Engine ties the ruleql core to a rule store. It exposes the three service
// operations: create a named rule, combine several rule texts into one
// tree, and evaluate a stored rule against a data record.
//
// The engine holds no mutable state of its own; concurrency control is the
// store's concern, and evaluation of the immutable trees needs none.
type Engine struct {
	store Store
}

// NewEngine initializes an engine backed by the store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// CreateRule parses expr and hands the parsed rule to the store for id
// assignment and persistence. The returned rule carries the tree for
// display. A parse failure is returned as-is and nothing is stored.
func (e *Engine) CreateRule(ctx context.Context, name, expr string) (*Rule, error) {
	root, err := ruleql.Parse(expr)
	if err != nil {
		return nil, err
	}
	return e.store.SaveRule(ctx, name, expr, root)
}

// CombineRules parses each expression independently and merges the
// resulting trees under their dominant logical operator. Parsing stops at
// the first failure, which is reported with the 1-based position of the
// offending rule. The merged tree is not persisted and has no id; the
// store is not touched.
func (e *Engine) CombineRules(exprs []string) (ruleql.Node, error) {
	roots := make([]ruleql.Node, 0, len(exprs))
	for i, expr := range exprs {
		root, err := ruleql.Parse(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		roots = append(roots, root)
	}
	return ruleql.Combine(roots)
}

// Evaluate resolves id through the store and walks the rule's tree against
// data. The error wraps ErrRuleNotFound if the store has no such rule.
func (e *Engine) Evaluate(ctx context.Context, id string, data ruleql.Record) (bool, error) {
	r, err := e.store.Rule(ctx, id)
	if err != nil {
		return false, err
	}
	return ruleql.Evaluate(r.Root, data)
}

// Rules lists the stored rules, ordered by id.
func (e *Engine) Rules(ctx context.Context) ([]*Rule, error) {
	return e.store.Rules(ctx)
}
