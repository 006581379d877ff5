package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/ddlint/pkg/lint"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

func init() {
	lint.Register(ForeignKeyNaming)
}

// ForeignKeyNaming enforces the {referenced_table}_id naming convention
// for foreign key columns.
var ForeignKeyNaming = lint.RuleDef{
	ID:          "SC05",
	Name:        "convention.foreign_key_naming",
	Group:       "convention",
	Description: "Foreign key columns should be named after the table they reference, with an _id suffix.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"suffix"},
	Check:       checkForeignKeyNaming,

	Rationale: `Naming a foreign key column '{referenced_table}_id' makes the relationship
readable from the column name alone and keeps joins self-documenting. Inconsistent
names force readers back to the constraint definitions to understand the model.`,

	BadExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    buyer INT,
    FOREIGN KEY (buyer) REFERENCES users (user_id)
);`,

	GoodExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    users_id INT,
    FOREIGN KEY (users_id) REFERENCES users (user_id)
);`,

	Fix: "Rename the foreign key column to '{referenced_table}_id'.",
}

func checkForeignKeyNaming(tbl *schema.Table, _ *schema.Schema, opts map[string]any) []lint.Diagnostic {
	suffix := lint.GetStringOption(opts, "suffix", "_id")

	var diagnostics []lint.Diagnostic
	for _, col := range tbl.ForeignKeys() {
		if strings.HasSuffix(strings.ToLower(col.Name), suffix) {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "SC05",
			Severity: lint.SeverityWarning,
			Message: fmt.Sprintf("Inconsistent foreign key naming: '%s' in table '%s' should be named '%s%s'",
				col.Name, tbl.Name, col.References.Table, suffix),
			Table: tbl.Name,
		})
	}
	return diagnostics
}
