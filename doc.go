// Package verdict provides a small attribute-rule engine. Rules are written
// as boolean expressions over named attributes, parsed into immutable
// syntax trees by the ruleql subpackage, persisted by a pluggable store,
// and evaluated against per-request data records.
//
// Typical use is as follows:
//
//  1. Create a store (in-memory, or SQL-backed for persistence)
//  2. Create an engine around the store
//  3. CreateRule to parse and persist a named rule
//  4. Evaluate the rule by id against a data record
//
// Several saved rule texts can also be merged into one evaluable tree with
// CombineRules; the merged tree is a plain value and is not persisted.
//
// Rule Ownership and Concurrency
//
// A rule and its tree are immutable once created. The engine and stores
// never modify a rule after SaveRule returns, and evaluation only reads the
// tree, so the same rule may be evaluated by any number of goroutines
// concurrently with no coordination. Store implementations guard only their
// own bookkeeping (the id counter and rule index).
//
// The engine performs no I/O besides store calls, never retries, and never
// logs; errors are returned to the caller as typed values for the hosting
// service to surface.
package verdict
