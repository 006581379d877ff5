package lint

import (
	"github.com/leapstack-labs/ddlint/pkg/core"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

// Severity is re-exported so rule packages only need to import lint.
type Severity = core.Severity

// Severity levels for diagnostics.
const (
	SeverityError   = core.SeverityError
	SeverityWarning = core.SeverityWarning
	SeverityInfo    = core.SeverityInfo
)

// ParseSeverity converts a string to a Severity value.
func ParseSeverity(s string) (Severity, bool) {
	return core.ParseSeverity(s)
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition. Rules are stateless - all
// context comes via the Check function parameters. The rule ID doubles
// as the execution rank: the analyzer runs rules in ascending ID order,
// and finding order is an observable contract.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "SC01"
	Name        string    // Human-readable name, e.g., "integrity.missing_primary_key"
	Group       string    // Category, e.g., "integrity", "cardinality"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Configuration keys this rule accepts (for rule-specific options)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // DDL showing the anti-pattern
	GoodExample string // DDL showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc evaluates one table and returns diagnostics. The full
// schema is available for cross-table resolution; rules must treat it
// as read-only. The opts parameter contains rule-specific options from
// configuration.
type CheckFunc func(tbl *schema.Table, sch *schema.Schema, opts map[string]any) []Diagnostic

// Info extracts metadata from the rule for documentation/tooling.
func (r RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		ConfigKeys:      r.ConfigKeys,
		Rationale:       r.Rationale,
		BadExample:      r.BadExample,
		GoodExample:     r.GoodExample,
		Fix:             r.Fix,
	}
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a single finding. Diagnostics are immutable
// once produced; the analyzer returns them in discovery order.
type Diagnostic struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Table    string   `json:"table"` // name of the table the finding is about
}
