package schema

import "strings"

// Parse extracts every well-formed CREATE TABLE statement from the
// input and returns the resulting schema.
//
// Parsing is best-effort and lossy on purpose: anything that does not
// match the CREATE TABLE <name> ( <body> ); shape is skipped silently,
// as are table-level clauses that name columns the statement never
// defines. Parse never fails on malformed input.
func Parse(input string) *Schema {
	s := New()
	for _, stmt := range scanStatements(stripComments(input)) {
		s.Add(parseCreateTable(stmt))
	}
	return s
}

// createStmt is one captured CREATE TABLE block.
type createStmt struct {
	name string
	body string // text between the outer parens, newlines included
}

// scanStatements walks the input and captures CREATE TABLE blocks. The
// closing paren is located by depth counting so nested parens in type
// parameters or CHECK expressions do not end the block early. A block
// whose closing paren is not followed by a semicolon is discarded.
func scanStatements(input string) []createStmt {
	var stmts []createStmt
	i := 0
	for i < len(input) {
		idx := indexWordFold(input[i:], "CREATE")
		if idx < 0 {
			break
		}
		pos := i + idx
		// Resume after this CREATE keyword whenever the block fails to
		// match; a later CREATE TABLE may still be well-formed.
		i = pos + len("CREATE")

		j := skipSpace(input, pos+len("CREATE"))
		word, j := readWord(input, j)
		if !strings.EqualFold(word, "TABLE") {
			continue
		}

		j = skipSpace(input, j)
		name, j := readWord(input, j)
		if strings.EqualFold(name, "IF") {
			// CREATE TABLE IF NOT EXISTS <name>
			var not, exists string
			not, j = readWord(input, skipSpace(input, j))
			exists, j = readWord(input, skipSpace(input, j))
			if !strings.EqualFold(not, "NOT") || !strings.EqualFold(exists, "EXISTS") {
				continue
			}
			name, j = readWord(input, skipSpace(input, j))
		}
		if name == "" {
			continue
		}

		j = skipSpace(input, j)
		if j >= len(input) || input[j] != '(' {
			continue
		}
		body, end, ok := readBalanced(input, j)
		if !ok {
			continue
		}

		j = skipSpace(input, end)
		if j >= len(input) || input[j] != ';' {
			i = end
			continue
		}

		stmts = append(stmts, createStmt{name: name, body: body})
		i = j + 1
	}
	return stmts
}

// parseCreateTable turns one captured block into a Table. Segments are
// split on top-level commas only, then classified as column definitions
// or table-level constraint clauses.
func parseCreateTable(stmt createStmt) *Table {
	t := NewTable(stmt.name)

	var clauses [][]string
	for _, seg := range splitTopLevel(stmt.body) {
		toks := tokenize(seg)
		if len(toks) == 0 {
			continue
		}
		if isConstraintLead(toks[0]) {
			// Column definitions are expected to precede table-level
			// clauses, so clause resolution is deferred until every
			// column has been seen.
			clauses = append(clauses, toks)
			continue
		}
		if c := parseColumn(toks); c != nil {
			t.AddColumn(c)
			if c.IsPrimaryKey {
				t.AddPrimaryKey(c.Name)
			}
		}
	}

	for _, toks := range clauses {
		applyTableConstraint(t, toks)
	}
	t.prunePrimaryKeys()
	return t
}

// constraint keywords that open a table-level clause rather than a
// column definition.
var constraintLeads = map[string]bool{
	"primary":    true,
	"foreign":    true,
	"unique":     true,
	"check":      true,
	"constraint": true,
	"index":      true,
	"key":        true,
}

func isConstraintLead(tok string) bool {
	return constraintLeads[strings.ToLower(tok)]
}

// parseColumn interprets a segment as <name> <type> [constraints...].
// Segments with fewer than two tokens are not column definitions.
func parseColumn(toks []string) *Column {
	if len(toks) < 2 || isParenGroup(toks[0]) || isParenGroup(toks[1]) {
		return nil
	}
	c := &Column{Name: unquote(toks[0]), DataType: toks[1]}

	i := 2
	// A detached precision like VARCHAR (50) belongs to the type.
	if i < len(toks) && isParenGroup(toks[i]) {
		c.DataType += toks[i]
		i++
	}

	for ; i < len(toks); i++ {
		switch strings.ToLower(toks[i]) {
		case "primary":
			if nextFold(toks, i) == "key" {
				c.IsPrimaryKey = true
				c.addConstraint("PRIMARY KEY")
				i++
			}
		case "foreign":
			if nextFold(toks, i) == "key" {
				c.addConstraint("FOREIGN KEY")
				i++
			}
		case "not":
			if nextFold(toks, i) == "null" {
				c.addConstraint("NOT NULL")
				i++
			}
		case "unique":
			c.addConstraint("UNIQUE")
		case "index":
			c.addConstraint("INDEX")
		case "references":
			table, column, consumed := parseReference(toks[i+1:])
			if consumed > 0 {
				c.setReference(table, column)
				c.addConstraint("REFERENCES")
				i += consumed
			}
		default:
			// Parenthesized groups here belong to expressions such as
			// DEFAULT (0) or an inline CHECK; they are not constraint
			// tokens themselves.
			if !isParenGroup(toks[i]) {
				c.addConstraint(strings.ToUpper(toks[i]))
			}
		}
	}
	return c
}

// parseReference reads the "<table> (<column>)" tail of a REFERENCES
// constraint and reports how many tokens it consumed. Zero means the
// tail was malformed and the reference should be ignored.
func parseReference(toks []string) (table, column string, consumed int) {
	if len(toks) < 2 || isParenGroup(toks[0]) || !isParenGroup(toks[1]) {
		return "", "", 0
	}
	cols := splitGroup(toks[1])
	if len(cols) != 1 {
		return "", "", 0
	}
	return unquote(toks[0]), cols[0], 2
}

// applyTableConstraint resolves a trailing table-level clause against
// the columns parsed so far. Unresolvable clauses are dropped silently.
func applyTableConstraint(t *Table, toks []string) {
	i := 0
	if strings.ToLower(toks[0]) == "constraint" && len(toks) >= 2 {
		i = 2 // skip the constraint name
	}
	if i >= len(toks) {
		return
	}

	switch strings.ToLower(toks[i]) {
	case "primary":
		if nextFold(toks, i) != "key" || !hasParenGroup(toks, i+2) {
			return
		}
		for _, name := range splitGroup(toks[i+2]) {
			t.AddPrimaryKey(name)
		}

	case "foreign":
		if nextFold(toks, i) != "key" || !hasParenGroup(toks, i+2) {
			return
		}
		local := splitGroup(toks[i+2])
		rest := toks[i+3:]
		if len(rest) == 0 || !strings.EqualFold(rest[0], "references") {
			return
		}
		if len(rest) < 3 || isParenGroup(rest[1]) || !isParenGroup(rest[2]) {
			return
		}
		refTable := unquote(rest[1])
		refCols := splitGroup(rest[2])
		if len(local) != len(refCols) {
			return
		}
		for n, name := range local {
			if col, ok := t.Column(name); ok {
				col.setReference(refTable, refCols[n])
			}
		}

	case "unique":
		if hasParenGroup(toks, i+1) {
			markColumns(t, splitGroup(toks[i+1]), "UNIQUE")
		}

	case "index", "key":
		// INDEX (col) or INDEX idx_name (col)
		if hasParenGroup(toks, i+1) {
			markColumns(t, splitGroup(toks[i+1]), "INDEX")
		} else if hasParenGroup(toks, i+2) {
			markColumns(t, splitGroup(toks[i+2]), "INDEX")
		}

	case "check":
		// Detected but not interpreted.
	}
}

func markColumns(t *Table, names []string, constraint string) {
	for _, name := range names {
		if col, ok := t.Column(name); ok {
			col.addConstraint(constraint)
		}
	}
}

// =============================================================================
// Scanning helpers
// =============================================================================

// stripComments removes -- line comments and /* */ block comments.
func stripComments(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); {
		if strings.HasPrefix(input[i:], "--") {
			if nl := strings.IndexByte(input[i:], '\n'); nl >= 0 {
				i += nl
			} else {
				break
			}
			continue
		}
		if strings.HasPrefix(input[i:], "/*") {
			if end := strings.Index(input[i+2:], "*/"); end >= 0 {
				i += 2 + end + 2
			} else {
				break
			}
			continue
		}
		b.WriteByte(input[i])
		i++
	}
	return b.String()
}

// indexWordFold finds a case-insensitive keyword at a word boundary.
func indexWordFold(s, word string) int {
	upper := strings.ToUpper(s)
	word = strings.ToUpper(word)
	from := 0
	for {
		idx := strings.Index(upper[from:], word)
		if idx < 0 {
			return -1
		}
		pos := from + idx
		before := pos == 0 || !isIdentChar(upper[pos-1])
		afterIdx := pos + len(word)
		after := afterIdx >= len(upper) || !isIdentChar(upper[afterIdx])
		if before && after {
			return pos
		}
		from = pos + len(word)
	}
}

func isIdentChar(ch byte) bool {
	return ch == '_' || ch == '$' ||
		(ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}

func isQuoteChar(ch byte) bool {
	return ch == '"' || ch == '`' || ch == '[' || ch == ']'
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\r' || s[i] == '\n') {
		i++
	}
	return i
}

// readWord reads an identifier, optionally quoted, starting at i.
func readWord(s string, i int) (string, int) {
	start := i
	for i < len(s) && (isIdentChar(s[i]) || isQuoteChar(s[i]) || s[i] == '.') {
		i++
	}
	return unquote(s[start:i]), i
}

// readBalanced captures the text between the paren at i and its match.
// Returns the inner text and the index just past the closing paren.
func readBalanced(s string, i int) (string, int, bool) {
	depth := 0
	start := i + 1
	for ; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[start:i], i + 1, true
			}
		}
	}
	return "", len(s), false
}

// splitTopLevel splits a table body on commas that sit outside any
// parenthesized group, so VARCHAR(50) and DECIMAL(10,2) stay intact.
func splitTopLevel(body string) []string {
	var segs []string
	depth := 0
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				segs = append(segs, body[start:i])
				start = i + 1
			}
		}
	}
	segs = append(segs, body[start:])
	return segs
}

// tokenize splits a segment into identifier words and parenthesized
// groups. Groups are always separate tokens; parseColumn reattaches a
// group to the data type so VARCHAR(50) and VARCHAR (50) both come out
// as the single type token VARCHAR(50).
func tokenize(seg string) []string {
	var toks []string
	i := 0
	for i < len(seg) {
		i = skipSpace(seg, i)
		if i >= len(seg) {
			break
		}
		switch {
		case seg[i] == '(':
			group, next, ok := readBalanced(seg, i)
			if !ok {
				return toks
			}
			toks = append(toks, "("+group+")")
			i = next
		case isIdentChar(seg[i]) || isQuoteChar(seg[i]):
			word, next := rawWord(seg, i)
			toks = append(toks, word)
			i = next
		default:
			i++ // stray punctuation
		}
	}
	return toks
}

// rawWord reads a word without unquoting so type tokens keep their
// declared spelling.
func rawWord(s string, i int) (string, int) {
	start := i
	for i < len(s) && (isIdentChar(s[i]) || isQuoteChar(s[i]) || s[i] == '.') {
		i++
	}
	return s[start:i], i
}

// splitGroup splits "(a, b)" into trimmed, unquoted names.
func splitGroup(group string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(group, "("), ")")
	var names []string
	for _, part := range splitTopLevel(inner) {
		if name := unquote(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func isParenGroup(tok string) bool {
	return strings.HasPrefix(tok, "(")
}

func hasParenGroup(toks []string, i int) bool {
	return i < len(toks) && isParenGroup(toks[i])
}

func nextFold(toks []string, i int) string {
	if i+1 >= len(toks) {
		return ""
	}
	return strings.ToLower(toks[i+1])
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), "\"`[]")
}
