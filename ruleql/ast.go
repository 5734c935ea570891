package ruleql

import (
	"strconv"
	"strings"
)

// Node is the interface implemented by all AST nodes. The node set is
// closed: a node is either a *BinaryNode or a *CompareNode.
//
// A tree is strictly binary and finite; comparison nodes are always leaves,
// operator nodes always have two non-nil children. Nodes are never mutated
// after construction, so a tree may be shared freely between goroutines and
// evaluated concurrently without locking.
type Node interface {
	node()
}

// LogicalOp is a logical connective joining two subtrees.
type LogicalOp string

const (
	And LogicalOp = "AND"
	Or  LogicalOp = "OR"
)

// Valid reports whether the operator is a known connective.
func (op LogicalOp) Valid() bool {
	return op == And || op == Or
}

// CompareOp is a comparison applied at a leaf.
type CompareOp string

const (
	LT CompareOp = "<"
	LE CompareOp = "<="
	GT CompareOp = ">"
	GE CompareOp = ">="
	EQ CompareOp = "="
	NE CompareOp = "!="
)

// Valid reports whether the operator is a known comparison.
func (op CompareOp) Valid() bool {
	switch op {
	case LT, LE, GT, GE, EQ, NE:
		return true
	}
	return false
}

// LiteralKind tags the type held by a Literal.
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BoolLiteral
)

func (k LiteralKind) String() string {
	switch k {
	case NumberLiteral:
		return "number"
	case StringLiteral:
		return "string"
	case BoolLiteral:
		return "boolean"
	default:
		return "unknown"
	}
}

// Literal is the typed constant on the right side of a comparison.
// Only the field selected by Kind is meaningful.
type Literal struct {
	Kind LiteralKind
	Num  float64
	Str  string
	Bool bool
}

func NumberLit(f float64) Literal { return Literal{Kind: NumberLiteral, Num: f} }
func StringLit(s string) Literal  { return Literal{Kind: StringLiteral, Str: s} }
func BoolLit(b bool) Literal      { return Literal{Kind: BoolLiteral, Bool: b} }

func (l Literal) String() string {
	switch l.Kind {
	case NumberLiteral:
		return strconv.FormatFloat(l.Num, 'f', -1, 64)
	case StringLiteral:
		return "'" + l.Str + "'"
	case BoolLiteral:
		return strconv.FormatBool(l.Bool)
	default:
		return "?"
	}
}

// BinaryNode joins two subtrees under a logical operator.
type BinaryNode struct {
	Op    LogicalOp
	Left  Node
	Right Node
}

func (*BinaryNode) node() {}

// String renders the subtree as fully parenthesized rule text.
func (n *BinaryNode) String() string {
	return "(" + exprString(n.Left) + " " + string(n.Op) + " " + exprString(n.Right) + ")"
}

// CompareNode compares one attribute of the input data against a literal.
type CompareNode struct {
	Attr  string
	Op    CompareOp
	Value Literal
}

func (*CompareNode) node() {}

func (n *CompareNode) String() string {
	return n.Attr + " " + string(n.Op) + " " + n.Value.String()
}

func exprString(n Node) string {
	switch t := n.(type) {
	case *BinaryNode:
		return t.String()
	case *CompareNode:
		return t.String()
	default:
		return ""
	}
}

// ExprString renders the tree as rule text. Logical groupings are fully
// parenthesized, so the output parses back to a structurally identical tree.
func ExprString(n Node) string {
	return exprString(n)
}

// Clone returns a structural copy of the tree rooted at n.
func Clone(n Node) Node {
	switch t := n.(type) {
	case *BinaryNode:
		return &BinaryNode{Op: t.Op, Left: Clone(t.Left), Right: Clone(t.Right)}
	case *CompareNode:
		c := *t
		return &c
	default:
		return nil
	}
}

// Tree returns a tree representation of the AST using box-drawing
// characters. Operator nodes are labeled with their connective, leaves with
// their comparison. Recursion is limited to a maximum depth of 20 levels.
//
// Example output:
//
//	AND
//	├── OR
//	│   ├── age > 30
//	│   └── experience >= 5
//	└── country = 'US'
func Tree(n Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(nodeLabel(n))
	sb.WriteString("\n")
	buildTree(&sb, n, "", 0)
	return sb.String()
}

func nodeLabel(n Node) string {
	switch t := n.(type) {
	case *BinaryNode:
		return string(t.Op)
	case *CompareNode:
		return t.String()
	default:
		return "?"
	}
}

// buildTree recursively writes the children of n with proper indentation
// and tree characters (├──, └──, │).
// depth limits recursion to a maximum of 20 levels.
func buildTree(sb *strings.Builder, n Node, prefix string, depth int) {
	if depth >= 20 {
		return
	}
	b, ok := n.(*BinaryNode)
	if !ok {
		return
	}
	children := []Node{b.Left, b.Right}
	for i, child := range children {
		isLast := i == len(children)-1
		var connector, childPrefix string
		if isLast {
			connector = "└── "
			childPrefix = "    "
		} else {
			connector = "├── "
			childPrefix = "│   "
		}

		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(nodeLabel(child))
		sb.WriteString("\n")
		buildTree(sb, child, prefix+childPrefix, depth+1)
	}
}
