package ruleql

import "fmt"

// Record is the set of attribute values a rule is evaluated against.
// Values may be numbers (any Go integer or float type), strings or bools.
// Records are supplied per evaluation and never retained.
type Record map[string]any

// Evaluate walks the tree against the record and returns the verdict.
//
// An attribute referenced by the tree but absent from the record is an
// error, not false, so a mis-supplied record cannot masquerade as a
// definite "no match". Comparing values of different kinds is likewise an
// error rather than a coercion; ordering is defined for number/number and
// string/string, booleans support only = and !=.
//
// AND and OR short-circuit on the left operand. A right subtree that the
// short circuit skips is never touched, so a missing attribute there does
// not raise.
func Evaluate(root Node, data Record) (bool, error) {
	switch n := root.(type) {
	case *BinaryNode:
		left, err := Evaluate(n.Left, data)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case And:
			if !left {
				return false, nil
			}
		case Or:
			if left {
				return true, nil
			}
		default:
			return false, &EvalError{Kind: UnsupportedOperator, Detail: fmt.Sprintf("logical operator %q", string(n.Op))}
		}
		return Evaluate(n.Right, data)

	case *CompareNode:
		return evalCompare(n, data)

	default:
		return false, &EvalError{Kind: UnsupportedOperator, Detail: fmt.Sprintf("unknown node %T", root)}
	}
}

func evalCompare(n *CompareNode, data Record) (bool, error) {
	raw, ok := data[n.Attr]
	if !ok {
		return false, &EvalError{Kind: MissingAttribute, Attr: n.Attr}
	}

	switch n.Value.Kind {
	case NumberLiteral:
		f, ok := numberValue(raw)
		if !ok {
			return false, &EvalError{
				Kind:   TypeMismatch,
				Attr:   n.Attr,
				Detail: fmt.Sprintf("rule compares a number, data has %T", raw),
			}
		}
		return compareNumbers(n.Op, f, n.Value.Num, n.Attr)

	case StringLiteral:
		s, ok := raw.(string)
		if !ok {
			return false, &EvalError{
				Kind:   TypeMismatch,
				Attr:   n.Attr,
				Detail: fmt.Sprintf("rule compares a string, data has %T", raw),
			}
		}
		return compareStrings(n.Op, s, n.Value.Str, n.Attr)

	case BoolLiteral:
		b, ok := raw.(bool)
		if !ok {
			return false, &EvalError{
				Kind:   TypeMismatch,
				Attr:   n.Attr,
				Detail: fmt.Sprintf("rule compares a boolean, data has %T", raw),
			}
		}
		switch n.Op {
		case EQ:
			return b == n.Value.Bool, nil
		case NE:
			return b != n.Value.Bool, nil
		default:
			return false, &EvalError{
				Kind:   UnsupportedOperator,
				Attr:   n.Attr,
				Detail: fmt.Sprintf("%s is not defined for booleans", n.Op),
			}
		}

	default:
		return false, &EvalError{Kind: TypeMismatch, Attr: n.Attr, Detail: "unknown literal kind"}
	}
}

func compareNumbers(op CompareOp, a, b float64, attr string) (bool, error) {
	switch op {
	case LT:
		return a < b, nil
	case LE:
		return a <= b, nil
	case GT:
		return a > b, nil
	case GE:
		return a >= b, nil
	case EQ:
		return a == b, nil
	case NE:
		return a != b, nil
	default:
		return false, &EvalError{Kind: UnsupportedOperator, Attr: attr, Detail: string(op)}
	}
}

func compareStrings(op CompareOp, a, b string, attr string) (bool, error) {
	switch op {
	case LT:
		return a < b, nil
	case LE:
		return a <= b, nil
	case GT:
		return a > b, nil
	case GE:
		return a >= b, nil
	case EQ:
		return a == b, nil
	case NE:
		return a != b, nil
	default:
		return false, &EvalError{Kind: UnsupportedOperator, Attr: attr, Detail: string(op)}
	}
}

// numberValue normalizes any Go numeric type to float64. JSON decoding
// produces float64 directly; callers constructing records in Go code may
// use plain ints.
func numberValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}
