package verdict_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	verdict "github.com/verdict-rules/verdict"
	"github.com/verdict-rules/verdict/ruleql"
)

// A parsed tree is immutable, so one stored rule may be evaluated from any
// number of goroutines without locking. Run with -race.
func TestParallelEvaluation(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine()

	rule, err := e.CreateRule(ctx, "adults_us",
		"(age > 30 AND department = 'Sales') OR (experience >= 5 AND country = 'US')")
	if err != nil {
		t.Fatal(err)
	}

	const goroutines = 50
	const rounds = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				data := ruleql.Record{
					"age":        20 + g,
					"department": "Sales",
					"experience": i % 10,
					"country":    "US",
				}
				want := (20+g > 30) || (i%10 >= 5)
				got, err := e.Evaluate(ctx, rule.ID, data)
				if err != nil {
					t.Error(err)
					return
				}
				if got != want {
					t.Errorf("goroutine %d round %d: got %t, want %t", g, i, got, want)
					return
				}
			}
		}(g)
	}
	wg.Wait()
}

// Creation and evaluation may interleave; the store serializes writes and
// readers never observe a half-written rule.
func TestParallelCreateAndEvaluate(t *testing.T) {
	ctx := context.Background()
	store := verdict.NewMemoryStore()
	e := verdict.NewEngine(store)

	seed, err := e.CreateRule(ctx, "seed", "age > 1")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if g%2 == 0 {
					_, err := e.CreateRule(ctx, fmt.Sprintf("r_%d_%d", g, i), "salary > 50000")
					if err != nil {
						t.Error(err)
						return
					}
					continue
				}
				got, err := e.Evaluate(ctx, seed.ID, ruleql.Record{"age": 10})
				if err != nil {
					t.Error(err)
					return
				}
				if !got {
					t.Error("seed rule stopped matching")
					return
				}
			}
		}(g)
	}
	wg.Wait()

	// 10 writer goroutines at 50 creates each, plus the seed.
	if n := store.RuleCount(); n != 501 {
		t.Errorf("store has %d rules, want 501", n)
	}
}
