// Package ruleql implements the rule expression language: a lexer and
// recursive-descent parser producing an immutable AST, a combiner that
// merges several trees under their dominant logical operator, and an
// evaluator that walks a tree against a record of attribute values.
//
// Expressions compare named attributes against typed literals and join
// comparisons with AND and OR:
//
//	age >= 18 AND (country = 'US' OR country = 'CA')
//
// All operations here are pure, synchronous computations with no I/O and no
// shared mutable state. A parsed or combined tree is an immutable value;
// the same tree may be evaluated concurrently against different records
// with no locking.
package ruleql
