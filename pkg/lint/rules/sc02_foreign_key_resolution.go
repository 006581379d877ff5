package rules

import (
	"fmt"

	"github.com/leapstack-labs/ddlint/pkg/lint"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

func init() {
	lint.Register(ForeignKeyResolution)
}

// ForeignKeyResolution verifies that every foreign key resolves to an
// existing primary key column elsewhere in the schema.
var ForeignKeyResolution = lint.RuleDef{
	ID:          "SC02",
	Name:        "integrity.foreign_key_resolution",
	Group:       "integrity",
	Description: "Foreign keys must reference an existing primary key column in another table.",
	Severity:    lint.SeverityError,
	Check:       checkForeignKeyResolution,

	Rationale: `A foreign key that points at a missing table or column is a latent runtime
failure: the constraint will be rejected by the database or silently enforce nothing.
Foreign keys targeting non-primary-key columns weaken referential integrity because
the referenced values are not guaranteed unique.`,

	BadExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT,
    FOREIGN KEY (user_id) REFERENCES user (user_id)
);`,

	GoodExample: `CREATE TABLE users (
    user_id INT PRIMARY KEY
);

CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT,
    FOREIGN KEY (user_id) REFERENCES users (user_id)
);`,

	Fix: "Point the REFERENCES clause at an existing table and at a column that is part of its primary key.",
}

func checkForeignKeyResolution(tbl *schema.Table, sch *schema.Schema, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, col := range tbl.ForeignKeys() {
		ref := col.References
		if ref == nil || ref.Table == "" || ref.Column == "" {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "SC02",
				Severity: lint.SeverityError,
				Message: fmt.Sprintf("Foreign key '%s' in table '%s' does not properly specify referenced table and column",
					col.Name, tbl.Name),
				Table: tbl.Name,
			})
			continue
		}

		target, ok := sch.Table(ref.Table)
		if !ok {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "SC02",
				Severity: lint.SeverityError,
				Message: fmt.Sprintf("Foreign key '%s' in table '%s' references non-existent table '%s'",
					col.Name, tbl.Name, ref.Table),
				Table: tbl.Name,
			})
			continue
		}

		if _, ok := target.Column(ref.Column); !ok {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "SC02",
				Severity: lint.SeverityError,
				Message: fmt.Sprintf("Foreign key '%s' in table '%s' references non-existent column '%s' in table '%s'",
					col.Name, tbl.Name, ref.Column, ref.Table),
				Table: tbl.Name,
			})
			continue
		}

		if !target.IsPrimaryKey(ref.Column) {
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "SC02",
				Severity: lint.SeverityWarning,
				Message: fmt.Sprintf("Foreign key '%s' in table '%s' references non-primary key column '%s' in table '%s'",
					col.Name, tbl.Name, ref.Column, ref.Table),
				Table: tbl.Name,
			})
		}
	}
	return diagnostics
}
