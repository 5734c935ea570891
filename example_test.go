package verdict_test

import (
	"context"
	"fmt"

	verdict "github.com/verdict-rules/verdict"
	"github.com/verdict-rules/verdict/ruleql"
)

// Basic use: create a named rule, then evaluate it against data records.
func Example() {
	ctx := context.Background()
	engine := verdict.NewEngine(verdict.NewMemoryStore())

	rule, err := engine.CreateRule(ctx, "eligible",
		"(age > 30 AND department = 'Sales') OR (experience >= 5 AND salary > 50000)")
	if err != nil {
		fmt.Println(err)
		return
	}

	ok, err := engine.Evaluate(ctx, rule.ID, ruleql.Record{
		"age":        35,
		"department": "Sales",
		"experience": 3,
		"salary":     60000,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ok)

	ok, err = engine.Evaluate(ctx, rule.ID, ruleql.Record{
		"age":        25,
		"department": "Marketing",
		"experience": 3,
		"salary":     60000,
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ok)
	// Output:
	// true
	// false
}

// Merging several rule texts into one tree under their dominant operator.
func ExampleEngine_CombineRules() {
	engine := verdict.NewEngine(verdict.NewMemoryStore())

	combined, err := engine.CombineRules([]string{
		"age > 30",
		"department = 'Sales'",
		"salary > 50000",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(ruleql.ExprString(combined))
	// Output:
	// (age > 30 AND (department = 'Sales' AND salary > 50000))
}
