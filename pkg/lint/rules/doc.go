// Package rules provides the relational-integrity rule implementations
// for ddlint.
//
// Rules are organized by group:
//   - integrity: missing primary keys, unresolvable foreign keys (SC01-SC02)
//   - relationship: implicit relationship heuristics (SC03)
//   - performance: index coverage of key columns (SC04)
//   - convention: foreign key naming (SC05)
//   - cardinality: relationship shape inference (SC06-SC07)
//
// To register all rules with the global lint registry, import this
// package with a blank identifier:
//
//	import _ "github.com/leapstack-labs/ddlint/pkg/lint/rules"
package rules
