package verdict

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/verdict-rules/verdict/ruleql"
)

// ErrRuleNotFound is returned by stores when no rule has the requested id.
var ErrRuleNotFound = errors.New("rule not found")

// Store is the collaborator that owns rule persistence and id assignment.
// The engine is handed a Store rather than reaching for a global one, so
// the core stays testable without a real backing database.
//
// Implementations must not mutate a rule after returning it; the engine
// relies on rules being immutable once created.
type Store interface {
	// SaveRule persists a parsed rule, assigns it an id, and returns it.
	SaveRule(ctx context.Context, name, expr string, root ruleql.Node) (*Rule, error)

	// Rule returns the rule with the id. The error wraps ErrRuleNotFound
	// when no such rule exists.
	Rule(ctx context.Context, id string) (*Rule, error)

	// Rules returns all stored rules, ordered by id.
	Rules(ctx context.Context) ([]*Rule, error)
}

// MemoryStore keeps rules in a map guarded by a RWMutex. Ids are assigned
// from a process-local counter. Suitable for tests and single-process use.
type MemoryStore struct {
	mu    sync.RWMutex
	rules map[string]*Rule
	next  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rules: make(map[string]*Rule),
	}
}

func (s *MemoryStore) SaveRule(ctx context.Context, name, expr string, root ruleql.Node) (*Rule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	r := &Rule{
		ID:   strconv.Itoa(s.next),
		Name: name,
		Expr: expr,
		Root: root,
	}
	s.rules[r.ID] = r
	return r, nil
}

func (s *MemoryStore) Rule(ctx context.Context, id string) (*Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
	}
	return r, nil
}

func (s *MemoryStore) Rules(ctx context.Context) ([]*Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.rules))
	for k := range s.rules {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	out := make([]*Rule, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.rules[k])
	}
	return out, nil
}

// RuleCount is the number of rules in the store.
func (s *MemoryStore) RuleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rules)
}
