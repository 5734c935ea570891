package ruleql

import (
	"reflect"
	"testing"
)

func TestClone(t *testing.T) {
	root := mustParse(t, "(a > 1 OR b > 2) AND c = 'x'")
	copied := Clone(root)

	if !reflect.DeepEqual(copied, root) {
		t.Error("clone is not structurally identical")
	}

	// No node may be shared between the trees.
	rb := root.(*BinaryNode)
	cb := copied.(*BinaryNode)
	if rb == cb || rb.Left == cb.Left || rb.Right == cb.Right {
		t.Error("clone shares nodes with the original")
	}
}

func TestTree(t *testing.T) {
	root := mustParse(t, "(age > 30 OR experience >= 5) AND country = 'US'")

	want := "AND\n" +
		"├── OR\n" +
		"│   ├── age > 30\n" +
		"│   └── experience >= 5\n" +
		"└── country = 'US'\n"

	if got := Tree(root); got != want {
		t.Errorf("Tree() =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeNil(t *testing.T) {
	if got := Tree(nil); got != "" {
		t.Errorf("Tree(nil) = %q", got)
	}
}
