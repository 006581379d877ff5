package rules

import (
	"fmt"

	"github.com/leapstack-labs/ddlint/pkg/lint"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

func init() {
	lint.Register(MissingPrimaryKey)
}

// MissingPrimaryKey flags tables declared without any primary key.
var MissingPrimaryKey = lint.RuleDef{
	ID:          "SC01",
	Name:        "integrity.missing_primary_key",
	Group:       "integrity",
	Description: "Every table must declare a PRIMARY KEY.",
	Severity:    lint.SeverityError,
	Check:       checkMissingPrimaryKey,

	Rationale: `A table without a primary key has no reliable row identity. Foreign keys
cannot target it safely, replication and upserts degrade, and duplicate rows become
possible. Every table should declare a primary key, either inline on a column or as a
table-level PRIMARY KEY(...) clause.`,

	BadExample: `CREATE TABLE sessions (
    token VARCHAR(64),
    user_id INT
);`,

	GoodExample: `CREATE TABLE sessions (
    token VARCHAR(64) PRIMARY KEY,
    user_id INT
);`,

	Fix: "Add a PRIMARY KEY to the table, inline on a column or as a table-level clause.",
}

func checkMissingPrimaryKey(tbl *schema.Table, _ *schema.Schema, _ map[string]any) []lint.Diagnostic {
	if len(tbl.PrimaryKeys) > 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "SC01",
		Severity: lint.SeverityError,
		Message:  fmt.Sprintf("Table '%s' has no PRIMARY KEY defined", tbl.Name),
		Table:    tbl.Name,
	}}
}
