package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ddlint/pkg/schema"
)

// Register a pair of synthetic rules so the analyzer can be tested
// without importing the real rule package (which would create an import
// cycle in tests that also exercise Clear).
func registerTestRules(t *testing.T) {
	t.Helper()
	Clear()
	t.Cleanup(Clear)

	Register(RuleDef{
		ID:       "T01",
		Name:     "test.every_table",
		Group:    "test",
		Severity: SeverityWarning,
		Check: func(tbl *schema.Table, _ *schema.Schema, _ map[string]any) []Diagnostic {
			return []Diagnostic{{
				RuleID:   "T01",
				Severity: SeverityWarning,
				Message:  "table " + tbl.Name,
				Table:    tbl.Name,
			}}
		},
	})
	Register(RuleDef{
		ID:       "T02",
		Name:     "test.no_columns",
		Group:    "test",
		Severity: SeverityError,
		Check: func(tbl *schema.Table, _ *schema.Schema, _ map[string]any) []Diagnostic {
			if len(tbl.Columns()) > 0 {
				return nil
			}
			return []Diagnostic{{
				RuleID:   "T02",
				Severity: SeverityError,
				Message:  "empty " + tbl.Name,
				Table:    tbl.Name,
			}}
		},
	})
}

func TestAnalyzeNilAndEmptySchema(t *testing.T) {
	registerTestRules(t)
	a := NewAnalyzer(nil)

	assert.Nil(t, a.Analyze(nil))
	assert.Empty(t, a.Analyze(schema.New()))
}

func TestAnalyzeOrderTablesThenRules(t *testing.T) {
	registerTestRules(t)

	sch := schema.New()
	sch.Add(schema.NewTable("b"))
	sch.Add(schema.NewTable("a"))

	diags := NewAnalyzer(nil).Analyze(sch)
	require.Len(t, diags, 4)

	// Schema insertion order outranks name order; within a table the
	// rules run in ascending ID order.
	assert.Equal(t, "T01", diags[0].RuleID)
	assert.Equal(t, "b", diags[0].Table)
	assert.Equal(t, "T02", diags[1].RuleID)
	assert.Equal(t, "b", diags[1].Table)
	assert.Equal(t, "T01", diags[2].RuleID)
	assert.Equal(t, "a", diags[2].Table)
	assert.Equal(t, "T02", diags[3].RuleID)
	assert.Equal(t, "a", diags[3].Table)
}

func TestAnalyzeIdempotent(t *testing.T) {
	registerTestRules(t)

	sch := schema.New()
	sch.Add(schema.NewTable("x"))

	a := NewAnalyzer(nil)
	first := a.Analyze(sch)
	second := a.Analyze(sch)
	assert.Equal(t, first, second)
}

func TestAnalyzeDisabledRule(t *testing.T) {
	registerTestRules(t)

	sch := schema.New()
	sch.Add(schema.NewTable("x"))

	cfg := NewConfig().Disable("T01")
	diags := NewAnalyzer(cfg).Analyze(sch)
	require.Len(t, diags, 1)
	assert.Equal(t, "T02", diags[0].RuleID)
}

func TestAnalyzeSeverityOverride(t *testing.T) {
	registerTestRules(t)

	sch := schema.New()
	sch.Add(schema.NewTable("x"))

	cfg := NewConfig().SetSeverity("T02", SeverityInfo)
	diags := NewAnalyzer(cfg).Analyze(sch)

	for _, d := range diags {
		if d.RuleID == "T02" {
			assert.Equal(t, SeverityInfo, d.Severity)
		}
	}
}

func TestAnalyzeRuleOptionsArePassedThrough(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	var got map[string]any
	Register(RuleDef{
		ID:       "T03",
		Name:     "test.options",
		Group:    "test",
		Severity: SeverityInfo,
		Check: func(_ *schema.Table, _ *schema.Schema, opts map[string]any) []Diagnostic {
			got = opts
			return nil
		},
	})

	sch := schema.New()
	sch.Add(schema.NewTable("x"))

	cfg := NewConfig().SetRuleOptions("T03", map[string]any{"k": "v"})
	NewAnalyzer(cfg).Analyze(sch)
	assert.Equal(t, map[string]any{"k": "v"}, got)
}

func TestRegistryLookups(t *testing.T) {
	registerTestRules(t)

	assert.Equal(t, 2, Count())

	rule, ok := GetByID("T01")
	require.True(t, ok)
	assert.Equal(t, "test.every_table", rule.Name)

	_, ok = GetByID("ZZ99")
	assert.False(t, ok)

	assert.Len(t, GetByGroup("test"), 2)
	assert.Empty(t, GetByGroup("other"))

	infos := AllRules()
	require.Len(t, infos, 2)
	assert.Equal(t, "T01", infos[0].ID)
}

func TestGetOptionHelpers(t *testing.T) {
	opts := map[string]any{
		"suffix":  "_ref",
		"subs":    []any{"id", 42, "fk"},
		"typed":   []string{"a"},
		"notastr": 7,
	}

	assert.Equal(t, "_ref", GetStringOption(opts, "suffix", "_id"))
	assert.Equal(t, "_id", GetStringOption(opts, "missing", "_id"))
	assert.Equal(t, "_id", GetStringOption(opts, "notastr", "_id"))
	assert.Equal(t, "_id", GetStringOption(nil, "suffix", "_id"))

	assert.Equal(t, []string{"id", "fk"}, GetStringSliceOption(opts, "subs", nil))
	assert.Equal(t, []string{"a"}, GetStringSliceOption(opts, "typed", nil))
	assert.Equal(t, []string{"x"}, GetStringSliceOption(opts, "missing", []string{"x"}))
	assert.Equal(t, []string{"x"}, GetStringSliceOption(opts, "notastr", []string{"x"}))
}
