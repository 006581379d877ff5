package report_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/ddlint/pkg/lint"
	"github.com/leapstack-labs/ddlint/pkg/report"
)

func sampleDiagnostics() []lint.Diagnostic {
	return []lint.Diagnostic{
		{RuleID: "SC01", Severity: lint.SeverityError, Message: "Table 'sessions' has no PRIMARY KEY defined", Table: "sessions"},
		{RuleID: "SC04", Severity: lint.SeverityWarning, Message: "Key column 'user_id' in table 'orders' is not indexed", Table: "orders"},
		{RuleID: "SC07", Severity: lint.SeverityInfo, Message: "Table 'orders' seems to have a one-to-many relationship with table 'users'", Table: "orders"},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, sampleDiagnostics()))

	want := "Table 'sessions' has no PRIMARY KEY defined (ERROR)\n" +
		"Key column 'user_id' in table 'orders' is not indexed (WARNING)\n" +
		"Table 'orders' seems to have a one-to-many relationship with table 'users' (INFO)\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteText(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, "Schema Report", sampleDiagnostics()))

	out := buf.String()
	assert.Contains(t, out, "<title>Schema Report</title>")
	assert.Contains(t, out, `<h2 class="error">Errors</h2>`)
	assert.Contains(t, out, `<h2 class="warning">Warnings</h2>`)
	assert.Contains(t, out, `<h2 class="info">Info</h2>`)
	assert.Contains(t, out, "no PRIMARY KEY defined")

	// Messages are HTML-escaped
	assert.Contains(t, out, "Table &#39;sessions&#39;")
}

func TestWriteHTMLGroupsBySeverity(t *testing.T) {
	diags := []lint.Diagnostic{
		{RuleID: "SC04", Severity: lint.SeverityWarning, Message: "only a warning"},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, "Report", diags))

	out := buf.String()
	assert.Contains(t, out, `<h2 class="warning">Warnings</h2>`)
	assert.NotContains(t, out, `<h2 class="error">`)
	assert.NotContains(t, out, `<h2 class="info">`)
}

func TestWriteHTMLEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteHTML(&buf, "Report", nil))
	assert.Contains(t, buf.String(), "No findings.")
}
