package rules

import (
	"fmt"

	"github.com/leapstack-labs/ddlint/pkg/lint"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

func init() {
	lint.Register(RelationshipShape)
}

// RelationshipShape reports the relationship cardinality inferred from
// a table's foreign key count.
var RelationshipShape = lint.RuleDef{
	ID:          "SC07",
	Name:        "cardinality.relationship_shape",
	Group:       "cardinality",
	Description: "Report the one-to-many or many-to-many shape inferred from foreign key structure.",
	Severity:    lint.SeverityInfo,
	Check:       checkRelationshipShape,

	Rationale: `Making inferred cardinality visible lets authors confirm the schema
matches the domain. A single foreign key reads as the many side of a one-to-many
relationship. Multiple foreign keys read as a many-to-many junction, which deserves
a second look when that was not the intent.`,

	BadExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT,
    product_id INT,
    FOREIGN KEY (user_id) REFERENCES users (user_id),
    FOREIGN KEY (product_id) REFERENCES products (product_id)
);`,

	GoodExample: `CREATE TABLE orders (
    order_id INT PRIMARY KEY,
    user_id INT,
    FOREIGN KEY (user_id) REFERENCES users (user_id)
);`,

	Fix: "Confirm the inferred shape matches the intended relationship; split or re-key the table if it does not.",
}

func checkRelationshipShape(tbl *schema.Table, _ *schema.Schema, _ map[string]any) []lint.Diagnostic {
	fks := tbl.ForeignKeys()
	switch {
	case len(fks) == 1:
		return []lint.Diagnostic{{
			RuleID:   "SC07",
			Severity: lint.SeverityInfo,
			Message: fmt.Sprintf("Table '%s' seems to have a one-to-many relationship with table '%s'",
				tbl.Name, fks[0].References.Table),
			Table: tbl.Name,
		}}
	case len(fks) > 1:
		return []lint.Diagnostic{{
			RuleID:   "SC07",
			Severity: lint.SeverityWarning,
			Message: fmt.Sprintf("Table '%s' may have a many-to-many relationship or an incorrect FK setup",
				tbl.Name),
			Table: tbl.Name,
		}}
	default:
		return nil
	}
}
