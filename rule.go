package verdict

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/verdict-rules/verdict/ruleql"
)

// A Rule is a named, persisted expression together with its parsed tree.
// The store assigns the ID when the rule is created; nothing modifies a
// rule afterwards. The tree is immutable and may be evaluated concurrently.
type Rule struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Expr string      `json:"expr"`
	Root ruleql.Node `json:"root"`
}

// UnmarshalJSON decodes a rule, reconstructing the tagged-variant tree.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID   string          `json:"id"`
		Name string          `json:"name"`
		Expr string          `json:"expr"`
		Root json.RawMessage `json:"root"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = raw.ID
	r.Name = raw.Name
	r.Expr = raw.Expr
	r.Root = nil
	if len(raw.Root) > 0 && string(raw.Root) != "null" {
		root, err := ruleql.UnmarshalNode(raw.Root)
		if err != nil {
			return err
		}
		r.Root = root
	}
	return nil
}

// String renders the rule as a single-row table.
func (r *Rule) String() string {
	return RulesTable([]*Rule{r})
}

// RulesTable produces a tabular listing of the rules.
func RulesTable(rules []*Rule) string {
	tw := table.NewWriter()
	tw.SetTitle("\nVERDICT RULES\n")
	tw.AppendHeader(table.Row{"\nID", "\nName", "\nExpression"})

	maxWidthOfExpressionColumn := 50
	maxExprLength := 0
	for _, r := range rules {
		tw.AppendRow(table.Row{r.ID, r.Name, r.Expr})
		if len(r.Expr) > maxExprLength {
			maxExprLength = len(r.Expr)
		}
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1},
		{Number: 2},
		{Number: 3, WidthMax: maxWidthOfExpressionColumn},
	})

	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	// Only add the row separator if an expression is wide enough to wrap.
	if maxExprLength > maxWidthOfExpressionColumn {
		style.Options.SeparateRows = true
	}
	tw.SetStyle(style)
	return tw.Render()
}
