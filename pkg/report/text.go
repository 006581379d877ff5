// Package report renders analyzer findings for humans: a plain-text
// form suitable for terminals and CI logs, and a styled HTML form
// grouped by severity.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/ddlint/pkg/lint"
)

// WriteText writes one "{message} ({SEVERITY})" line per finding.
func WriteText(w io.Writer, diags []lint.Diagnostic) error {
	for _, d := range diags {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", d.Message, strings.ToUpper(d.Severity.String())); err != nil {
			return err
		}
	}
	return nil
}
