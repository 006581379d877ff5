package rules

import (
	"fmt"

	"github.com/leapstack-labs/ddlint/pkg/lint"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

func init() {
	lint.Register(CompositeKey)
}

// CompositeKey flags join tables whose primary key is not the composite
// of their foreign keys.
var CompositeKey = lint.RuleDef{
	ID:          "SC06",
	Name:        "cardinality.composite_key",
	Group:       "cardinality",
	Description: "Tables with multiple foreign keys should use those keys as a composite primary key.",
	Severity:    lint.SeverityWarning,
	Check:       checkCompositeKey,

	Rationale: `A table holding two or more foreign keys is usually a junction table
realizing a many-to-many relationship. Its primary key should be the composite of
those foreign keys; a separate surrogate key permits duplicate pairings and hides
the relationship's true cardinality.`,

	BadExample: `CREATE TABLE enrollments (
    id INT PRIMARY KEY,
    student_id INT,
    course_id INT,
    FOREIGN KEY (student_id) REFERENCES students (student_id),
    FOREIGN KEY (course_id) REFERENCES courses (course_id)
);`,

	GoodExample: `CREATE TABLE enrollments (
    student_id INT,
    course_id INT,
    PRIMARY KEY (student_id, course_id),
    FOREIGN KEY (student_id) REFERENCES students (student_id),
    FOREIGN KEY (course_id) REFERENCES courses (course_id)
);`,

	Fix: "Make the primary key the composite of the table's foreign key columns.",
}

func checkCompositeKey(tbl *schema.Table, _ *schema.Schema, _ map[string]any) []lint.Diagnostic {
	fks := tbl.ForeignKeys()
	if len(fks) <= 1 {
		return nil
	}

	fkNames := make(map[string]bool, len(fks))
	for _, col := range fks {
		fkNames[schema.Fold(col.Name)] = true
	}

	if len(tbl.PrimaryKeys) == len(fkNames) {
		match := true
		for _, pk := range tbl.PrimaryKeys {
			if !fkNames[pk] {
				match = false
				break
			}
		}
		if match {
			return nil
		}
	}

	return []lint.Diagnostic{{
		RuleID:   "SC06",
		Severity: lint.SeverityWarning,
		Message: fmt.Sprintf("Table '%s' may have a cardinality issue: it has multiple foreign keys but the primary key is not a composite of these foreign keys. This could be a many-to-many relationship incorrectly modeled as one-to-many",
			tbl.Name),
		Table: tbl.Name,
	}}
}
