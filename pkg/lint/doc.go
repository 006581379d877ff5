// Package lint provides the schema integrity analysis framework.
//
// # Architecture
//
// The package is split in two layers:
//
//  1. Root package (pkg/lint/): shared contracts, the rule registry,
//     and the analyzer that walks a parsed schema.
//  2. Rules (pkg/lint/rules/): one file per rule, registered via init().
//
// # Rule Registration
//
// Rules are automatically registered when their package is imported:
//
//	import _ "github.com/leapstack-labs/ddlint/pkg/lint/rules"
//
// The rule ID doubles as the execution rank. The analyzer evaluates
// each table against every rule in ascending ID order before moving to
// the next table, so finding order is stable across runs.
//
// # Rule Categories
//
//   - integrity: missing keys and unresolvable foreign key references
//   - relationship: implicit relationship heuristics
//   - performance: index coverage of key columns
//   - convention: naming conventions
//   - cardinality: one-to-many / many-to-many shape inference
//
// # Configuration
//
// Use Config to control which rules are enabled and their severity:
//
//	config := lint.NewConfig()
//	config.Disable("SC04")
//	config.SetSeverity("SC05", lint.SeverityError)
//	config.SetRuleOptions("SC03", map[string]any{"substrings": []string{"id"}})
//
// # Creating Custom Rules
//
// Define a RuleDef and register it:
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "custom.my_rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    lint.SeverityWarning,
//		Check:       checkMyRule,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint
