package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ddlint/pkg/lint"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

func init() {
	lint.Register(ImplicitForeignKeys)
}

// ImplicitForeignKeys flags tables with no declared foreign keys,
// surfacing columns that look like undeclared relationship columns.
var ImplicitForeignKeys = lint.RuleDef{
	ID:          "SC03",
	Name:        "relationship.implicit_foreign_keys",
	Group:       "relationship",
	Description: "Tables without foreign keys are scanned for columns that look like undeclared references.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"substrings"},
	Check:       checkImplicitForeignKeys,

	Rationale: `Column names containing fragments like 'id', 'fk', or 'ref' usually point
at rows in other tables. When no FOREIGN KEY constraint backs them, the database cannot
enforce the relationship and orphaned rows go undetected. A table with no relationships
at all, explicit or implied, is also worth a look: isolated tables are often a sign of
a missing join or an abandoned design.`,

	BadExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT
);`,

	GoodExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT,
    FOREIGN KEY (user_id) REFERENCES users (user_id)
);`,

	Fix: "Declare an explicit FOREIGN KEY constraint for each relationship column.",
}

// defaultCandidateSubstrings are the name fragments treated as
// relationship hints. Override with the "substrings" option.
var defaultCandidateSubstrings = []string{"id", "fk", "ref"}

func checkImplicitForeignKeys(tbl *schema.Table, _ *schema.Schema, opts map[string]any) []lint.Diagnostic {
	if len(tbl.ForeignKeys()) > 0 {
		return nil
	}

	substrings := lint.GetStringSliceOption(opts, "substrings", defaultCandidateSubstrings)

	var candidates []string
	for _, col := range tbl.Columns() {
		name := strings.ToLower(col.Name)
		for _, sub := range substrings {
			if strings.Contains(name, strings.ToLower(sub)) {
				candidates = append(candidates, col.Name)
				break
			}
		}
	}

	if len(candidates) == 0 {
		return []lint.Diagnostic{{
			RuleID:   "SC03",
			Severity: lint.SeverityWarning,
			Message: fmt.Sprintf("Table '%s' has no foreign key relationships detected, explicit or implicit",
				tbl.Name),
			Table: tbl.Name,
		}}
	}

	return []lint.Diagnostic{{
		RuleID:   "SC03",
		Severity: lint.SeverityWarning,
		Message: fmt.Sprintf("Table '%s' has possible foreign key columns: %s but no explicit foreign key constraint is defined",
			tbl.Name, strings.Join(candidates, ", ")),
		Table: tbl.Name,
	}}
}
