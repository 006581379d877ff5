package rules

import (
	"fmt"

	"github.com/leapstack-labs/ddlint/pkg/lint"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

func init() {
	lint.Register(UnindexedKey)
}

// UnindexedKey flags key columns that carry no INDEX marker.
var UnindexedKey = lint.RuleDef{
	ID:          "SC04",
	Name:        "performance.unindexed_key",
	Group:       "performance",
	Description: "Primary key and foreign key columns should carry an INDEX marker.",
	Severity:    lint.SeverityWarning,
	Check:       checkUnindexedKey,

	Rationale: `Key columns are the columns joins and lookups filter on. A foreign key
column without an index makes every join against it a sequential scan, and makes
cascading deletes on the parent table crawl. Most engines index primary keys
implicitly, but the DDL stating it makes the intent portable.`,

	BadExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT,
    FOREIGN KEY (user_id) REFERENCES users (user_id)
);`,

	GoodExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY INDEX,
    user_id INT INDEX,
    FOREIGN KEY (user_id) REFERENCES users (user_id)
);`,

	Fix: "Add an INDEX marker (or a table-level INDEX(...) clause) covering each key column.",
}

func checkUnindexedKey(tbl *schema.Table, _ *schema.Schema, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, col := range tbl.Columns() {
		solePK := len(tbl.PrimaryKeys) == 1 && tbl.IsPrimaryKey(col.Name)
		if !solePK && !col.IsForeignKey {
			continue
		}
		if col.HasConstraint("INDEX") {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "SC04",
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("Key column '%s' in table '%s' is not indexed", col.Name, tbl.Name),
			Table:    tbl.Name,
		})
	}
	return diagnostics
}
