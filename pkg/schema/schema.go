// Package schema defines the relational schema model extracted from raw
// DDL text and the tolerant parser that produces it.
//
// Table and column lookups are case-insensitive: Users.user_id and
// USERS.USER_ID resolve to the same entity. The declared spelling is
// preserved for display in findings.
package schema

import "strings"

// Fold normalizes a table or column name for matching.
func Fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// =============================================================================
// Column
// =============================================================================

// ColumnRef names the table and column a foreign key points at.
type ColumnRef struct {
	Table  string
	Column string
}

// Column is a single column definition inside a table.
type Column struct {
	Name         string
	DataType     string   // raw type token, parenthesized precision kept attached, e.g. VARCHAR(50)
	Constraints  []string // recognized constraint tokens in declaration order
	IsPrimaryKey bool
	IsForeignKey bool
	References   *ColumnRef // populated iff IsForeignKey
}

// HasConstraint reports whether the column carries the given constraint
// token, matched case-insensitively.
func (c *Column) HasConstraint(name string) bool {
	for _, con := range c.Constraints {
		if strings.EqualFold(con, name) {
			return true
		}
	}
	return false
}

// addConstraint records a constraint token once, preserving order.
func (c *Column) addConstraint(name string) {
	if !c.HasConstraint(name) {
		c.Constraints = append(c.Constraints, name)
	}
}

// setReference marks the column as a foreign key. The flag and the
// reference are always set together so one implies the other.
func (c *Column) setReference(table, column string) {
	if table == "" || column == "" {
		return
	}
	c.IsForeignKey = true
	c.References = &ColumnRef{Table: table, Column: column}
}

// =============================================================================
// Table
// =============================================================================

// Table is one parsed CREATE TABLE statement. Columns keep their
// declaration order; duplicate column names replace the earlier
// definition in place.
type Table struct {
	Name string

	// PrimaryKeys holds the folded names of the key columns, in the
	// order they were declared. A length above one denotes a composite
	// key. Inline markers and a table-level PRIMARY KEY(...) clause
	// merge into the same de-duplicated list.
	PrimaryKeys []string

	columns map[string]*Column
	order   []string // folded column names, declaration order
}

// NewTable creates an empty table definition.
func NewTable(name string) *Table {
	return &Table{
		Name:    name,
		columns: make(map[string]*Column),
	}
}

// AddColumn inserts a column, replacing any earlier definition with the
// same folded name while keeping its original position.
func (t *Table) AddColumn(c *Column) {
	key := Fold(c.Name)
	if _, exists := t.columns[key]; !exists {
		t.order = append(t.order, key)
	}
	t.columns[key] = c
}

// Column looks up a column by name, case-insensitively.
func (t *Table) Column(name string) (*Column, bool) {
	c, ok := t.columns[Fold(name)]
	return c, ok
}

// Columns returns all columns in declaration order.
func (t *Table) Columns() []*Column {
	cols := make([]*Column, 0, len(t.order))
	for _, key := range t.order {
		cols = append(cols, t.columns[key])
	}
	return cols
}

// ForeignKeys returns the columns flagged as foreign keys, in
// declaration order.
func (t *Table) ForeignKeys() []*Column {
	var fks []*Column
	for _, c := range t.Columns() {
		if c.IsForeignKey {
			fks = append(fks, c)
		}
	}
	return fks
}

// AddPrimaryKey appends a column name to the primary key list unless it
// is already present.
func (t *Table) AddPrimaryKey(name string) {
	key := Fold(name)
	if key == "" {
		return
	}
	for _, existing := range t.PrimaryKeys {
		if existing == key {
			return
		}
	}
	t.PrimaryKeys = append(t.PrimaryKeys, key)
}

// IsPrimaryKey reports whether the named column is part of the primary key.
func (t *Table) IsPrimaryKey(name string) bool {
	key := Fold(name)
	for _, pk := range t.PrimaryKeys {
		if pk == key {
			return true
		}
	}
	return false
}

// prunePrimaryKeys drops primary key names that never resolved to a
// parsed column, keeping the invariant that every entry names a real
// column once parsing completes.
func (t *Table) prunePrimaryKeys() {
	kept := t.PrimaryKeys[:0]
	for _, pk := range t.PrimaryKeys {
		if _, ok := t.columns[pk]; ok {
			kept = append(kept, pk)
		}
	}
	t.PrimaryKeys = kept
}

// =============================================================================
// Schema
// =============================================================================

// Schema is the set of tables extracted from one DDL source. Iteration
// order is insertion order; a duplicate table name overwrites the
// earlier definition without moving its position.
type Schema struct {
	tables map[string]*Table
	order  []string // folded table names, insertion order
}

// New creates an empty schema.
func New() *Schema {
	return &Schema{tables: make(map[string]*Table)}
}

// Add inserts a table. Later definitions win.
func (s *Schema) Add(t *Table) {
	key := Fold(t.Name)
	if _, exists := s.tables[key]; !exists {
		s.order = append(s.order, key)
	}
	s.tables[key] = t
}

// Table looks up a table by name, case-insensitively.
func (s *Schema) Table(name string) (*Table, bool) {
	t, ok := s.tables[Fold(name)]
	return t, ok
}

// Tables returns all tables in insertion order.
func (s *Schema) Tables() []*Table {
	tables := make([]*Table, 0, len(s.order))
	for _, key := range s.order {
		tables = append(tables, s.tables[key])
	}
	return tables
}

// Len returns the number of tables.
func (s *Schema) Len() int {
	return len(s.order)
}
