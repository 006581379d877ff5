package report

import (
	"html/template"
	"io"

	"github.com/leapstack-labs/ddlint/pkg/core"
	"github.com/leapstack-labs/ddlint/pkg/lint"
)

const htmlReport = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 2rem auto; max-width: 52rem; color: #1f2430; }
  h1 { border-bottom: 2px solid #e1e4e8; padding-bottom: .4rem; }
  h2 { margin-top: 2rem; }
  h2.error { color: #c0392b; }
  h2.warning { color: #b7791f; }
  h2.info { color: #2b6cb0; }
  ul { padding-left: 1.4rem; }
  li { margin: .3rem 0; }
  p.clean { color: #2f855a; font-weight: 600; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if not .Sections}}<p class="clean">No findings.</p>{{end}}
{{range .Sections}}
<h2 class="{{.Class}}">{{.Heading}}</h2>
<ul>
{{range .Messages}}  <li>{{.}}</li>
{{end}}</ul>
{{end}}
</body>
</html>
`

var htmlTmpl = template.Must(template.New("report").Parse(htmlReport))

type htmlSection struct {
	Class    string
	Heading  string
	Messages []string
}

type htmlData struct {
	Title    string
	Sections []htmlSection
}

// WriteHTML writes a standalone HTML report with findings grouped by
// severity class. Severity sections with no findings are omitted.
func WriteHTML(w io.Writer, title string, diags []lint.Diagnostic) error {
	groups := map[core.Severity][]string{}
	for _, d := range diags {
		groups[d.Severity] = append(groups[d.Severity], d.Message)
	}

	data := htmlData{Title: title}
	for _, sev := range []struct {
		severity core.Severity
		heading  string
	}{
		{core.SeverityError, "Errors"},
		{core.SeverityWarning, "Warnings"},
		{core.SeverityInfo, "Info"},
	} {
		msgs := groups[sev.severity]
		if len(msgs) == 0 {
			continue
		}
		data.Sections = append(data.Sections, htmlSection{
			Class:    sev.severity.String(),
			Heading:  sev.heading,
			Messages: msgs,
		})
	}

	return htmlTmpl.Execute(w, data)
}
