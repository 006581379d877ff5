package lint

import "github.com/leapstack-labs/ddlint/pkg/schema"

// Analyzer runs lint rules against a parsed schema.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// Analyze evaluates every table against the registered rules and
// returns the findings in discovery order: tables in schema insertion
// order, and within a table the full rule sequence (ascending rule ID)
// before the next table is considered. The schema is read-only to the
// analyzer; Analyze is a pure function of it and may run concurrently
// with other Analyze calls on separate schemas.
func (a *Analyzer) Analyze(sch *schema.Schema) []Diagnostic {
	if sch == nil {
		return nil
	}

	rules := GetAll()
	var diagnostics []Diagnostic
	for _, tbl := range sch.Tables() {
		for _, rule := range rules {
			if a.config.IsDisabled(rule.ID) {
				continue
			}

			opts := a.config.GetRuleOptions(rule.ID)
			diags := rule.Check(tbl, sch, opts)

			// Apply severity overrides
			for i := range diags {
				diags[i].Severity = a.config.GetSeverity(rule.ID, diags[i].Severity)
			}

			diagnostics = append(diagnostics, diags...)
		}
	}
	return diagnostics
}
