package ruleql

// Combine merges several rule trees into a single evaluable tree whose root
// is the dominant logical operator of the inputs.
//
// The dominant operator is decided by a vote: every input whose own root is
// an operator node votes for that operator; comparison-only roots abstain.
// The operator with the strictly higher count wins. A tie resolves to AND,
// as does an input set with no votes at all.
//
// The merged tree is built by folding the input roots pairwise under the
// chosen operator into a balanced binary tree, keeping evaluation depth at
// O(log n) rather than the chained depth a naive left fold would produce
// for large inputs.
//
// Combine never mutates its inputs: for two or more rules it allocates new
// operator nodes on top of the existing roots, and for a single rule it
// returns a structural copy. Nothing is persisted.
func Combine(roots []Node) (Node, error) {
	if len(roots) == 0 {
		return nil, &CombineError{Reason: "empty input"}
	}
	if len(roots) == 1 {
		return Clone(roots[0]), nil
	}
	return fold(roots, dominantOp(roots)), nil
}

func dominantOp(roots []Node) LogicalOp {
	var and, or int
	for _, r := range roots {
		b, ok := r.(*BinaryNode)
		if !ok {
			continue
		}
		switch b.Op {
		case And:
			and++
		case Or:
			or++
		}
	}
	if or > and {
		return Or
	}
	return And
}

func fold(roots []Node, op LogicalOp) Node {
	if len(roots) == 1 {
		return roots[0]
	}
	mid := len(roots) / 2
	return &BinaryNode{Op: op, Left: fold(roots[:mid], op), Right: fold(roots[mid:], op)}
}
