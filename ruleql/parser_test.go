package ruleql

import (
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, input string) Node {
	t.Helper()
	n, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	return n
}

func TestParseBareComparison(t *testing.T) {
	got := mustParse(t, "age >= 18")
	want := &CompareNode{Attr: "age", Op: GE, Value: NumberLit(18)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParseLiterals(t *testing.T) {
	cases := map[string]struct {
		input string
		want  Literal
	}{
		"integer":       {input: "a = 42", want: NumberLit(42)},
		"decimal":       {input: "a = 3.25", want: NumberLit(3.25)},
		"negative":      {input: "a = -7", want: NumberLit(-7)},
		"single quoted": {input: "a = 'x y'", want: StringLit("x y")},
		"double quoted": {input: `a = "x"`, want: StringLit("x")},
		"boolean true":  {input: "a = true", want: BoolLit(true)},
		"boolean false": {input: "a != FALSE", want: BoolLit(false)},
		"empty string":  {input: "a = ''", want: StringLit("")},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			n := mustParse(t, c.input)
			cmp, ok := n.(*CompareNode)
			if !ok {
				t.Fatalf("expected *CompareNode, got %T", n)
			}
			if !reflect.DeepEqual(cmp.Value, c.want) {
				t.Errorf("literal = %+v, want %+v", cmp.Value, c.want)
			}
		})
	}
}

// AND binds tighter than OR: a > 1 OR b > 2 AND c > 3 groups as
// a > 1 OR (b > 2 AND c > 3).
func TestParsePrecedence(t *testing.T) {
	n := mustParse(t, "a > 1 OR b > 2 AND c > 3")

	root, ok := n.(*BinaryNode)
	if !ok || root.Op != Or {
		t.Fatalf("expected OR at root, got %s", ExprString(n))
	}
	right, ok := root.Right.(*BinaryNode)
	if !ok || right.Op != And {
		t.Fatalf("expected AND below OR, got %s", ExprString(n))
	}
	if ExprString(n) != "(a > 1 OR (b > 2 AND c > 3))" {
		t.Errorf("grouping = %s", ExprString(n))
	}
}

// Parentheses override precedence, pushing the OR below the AND.
func TestParseParenthesisOverride(t *testing.T) {
	n := mustParse(t, "(a > 1 OR b > 2) AND c > 3")

	root, ok := n.(*BinaryNode)
	if !ok || root.Op != And {
		t.Fatalf("expected AND at root, got %s", ExprString(n))
	}
	left, ok := root.Left.(*BinaryNode)
	if !ok || left.Op != Or {
		t.Fatalf("expected OR below AND, got %s", ExprString(n))
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	n := mustParse(t, "a = 1 AND b = 2 AND c = 3")
	if ExprString(n) != "((a = 1 AND b = 2) AND c = 3)" {
		t.Errorf("grouping = %s", ExprString(n))
	}
}

func TestParseDeterministic(t *testing.T) {
	const input = "((age > 30 AND department = 'Sales') OR (age < 25 AND department = 'Marketing')) AND (salary > 50000 OR experience > 5)"
	first := mustParse(t, input)
	second := mustParse(t, input)
	if !reflect.DeepEqual(first, second) {
		t.Error("two parses of the same input produced different trees")
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]struct {
		input      string
		wantOffset int
	}{
		"empty input":            {input: "", wantOffset: 0},
		"missing right operand":  {input: "a > ", wantOffset: 4},
		"unbalanced parenthesis": {input: "(a > 1", wantOffset: 6},
		"leading operator":       {input: "AND a > 1", wantOffset: 0},
		"trailing operator":      {input: "a > 1 AND", wantOffset: 9},
		"trailing tokens":        {input: "a > 1 b", wantOffset: 6},
		"missing comparison op":  {input: "a 1", wantOffset: 2},
		"literal as left side":   {input: "1 > a", wantOffset: 0},
		"comparison of keywords": {input: "a > AND", wantOffset: 4},
		"bare parentheses":       {input: "()", wantOffset: 1},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			n, err := Parse(c.input)
			if err == nil {
				t.Fatalf("expected error for %q, got %s", c.input, ExprString(n))
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Offset != c.wantOffset {
				t.Errorf("offset = %d, want %d (%v)", parseErr.Offset, c.wantOffset, err)
			}
			if len(parseErr.Expected) == 0 {
				t.Error("error does not say what was expected")
			}
		})
	}
}

// Well-formedness: every parsed tree is strictly binary with comparison
// leaves and non-nil operator children.
func TestParseWellFormed(t *testing.T) {
	inputs := []string{
		"a = 1",
		"a = 1 AND b = 2",
		"(a = 1 OR b = 2) AND (c = 3 OR d = 4)",
		"((a>1 AND b<2) OR (c>=3 AND d<=4)) AND e != 'x'",
	}

	var check func(t *testing.T, n Node)
	check = func(t *testing.T, n Node) {
		switch v := n.(type) {
		case *BinaryNode:
			if !v.Op.Valid() {
				t.Errorf("invalid logical operator %q", v.Op)
			}
			if v.Left == nil || v.Right == nil {
				t.Fatal("operator node with nil child")
			}
			check(t, v.Left)
			check(t, v.Right)
		case *CompareNode:
			if !v.Op.Valid() {
				t.Errorf("invalid comparison operator %q", v.Op)
			}
			if v.Attr == "" {
				t.Error("comparison node with empty attribute")
			}
		default:
			t.Fatalf("unexpected node type %T", n)
		}
	}

	for _, input := range inputs {
		check(t, mustParse(t, input))
	}
}

func TestExprStringRoundTrip(t *testing.T) {
	n := mustParse(t, "a > 1 OR b > 2 AND c > 3")
	again := mustParse(t, ExprString(n))
	if !reflect.DeepEqual(n, again) {
		t.Errorf("re-parsing %s changed the tree", ExprString(n))
	}
}
