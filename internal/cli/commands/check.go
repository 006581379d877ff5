package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/ddlint/internal/cli/config"
	"github.com/leapstack-labs/ddlint/internal/cli/output"
	"github.com/leapstack-labs/ddlint/pkg/lint"
	_ "github.com/leapstack-labs/ddlint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/ddlint/pkg/report"
	"github.com/leapstack-labs/ddlint/pkg/schema"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format     string   // Output format: text, markdown, json, html, plain
	ReportFile string   // Write the report to a file instead of stdout
	Severity   string   // Minimum severity: error, warning, info
	Disable    []string // Rule IDs to disable
	Rules      []string // Run only specific rules
	Watch      bool     // Re-run analysis when source files change
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <file|dir> [...]",
		Short: "Analyze DDL files for relational integrity issues",
		Long: `Parse CREATE TABLE statements and check the resulting schema for
missing primary keys, unresolvable foreign keys, unindexed key columns,
naming convention violations, and suspicious relationship cardinality.

Parsing is best-effort: statements that do not match the CREATE TABLE
shape are skipped silently, so partially valid scripts still produce a
report for the tables that could be extracted.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/HTML/plain: Machine- or report-oriented formats`,
		Example: `  # Check a single DDL file
  ddlint check schema.sql

  # Check every .sql file under a directory
  ddlint check ./migrations

  # Read DDL from stdin
  cat schema.sql | ddlint check -

  # Write a standalone HTML report
  ddlint check schema.sql --format html --report-file report.html

  # Only report errors (ignore warnings and info)
  ddlint check schema.sql --severity error

  # Re-run automatically when files change
  ddlint check ./migrations --watch`,
		Args: cobra.MinimumNArgs(1),
		// Findings with error severity surface as a non-nil RunE error so
		// CI exits non-zero; that must not trigger a usage dump.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, html, plain")
	cmd.Flags().StringVar(&opts.ReportFile, "report-file", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&opts.Severity, "severity", "", "Minimum severity: error, warning, info")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-run analysis when source files change")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "markdown", "json", "html", "plain"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	// Override renderer if format flag is set
	format := opts.Format
	if format == "" {
		format = cfg.OutputFormat
	}
	if opts.Format != "" && !isReportFormat(opts.Format) {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	sources, err := resolveSources(args)
	if err != nil {
		return err
	}

	lintCfg := buildLintConfig(cfg, opts)

	severity := opts.Severity
	if severity == "" {
		severity = cfg.Severity
	}

	run := func() error {
		srcs := sources
		if opts.Watch {
			// Re-resolve on every run so files created in a watched
			// directory are picked up.
			var err error
			if srcs, err = resolveSources(args); err != nil {
				return err
			}
		}
		results, err := analyzeSources(cmd, srcs, lintCfg)
		if err != nil {
			return err
		}
		results = filterBySeverity(results, severity)
		return renderCheckResults(cmd, r, format, opts.ReportFile, results)
	}

	if !opts.Watch {
		return run()
	}

	if containsStdin(sources) {
		return fmt.Errorf("--watch cannot be combined with stdin input")
	}
	return watchAndRun(cmd, logger, sources, run)
}

// isReportFormat reports whether the format bypasses the renderer and
// goes through the report package instead.
func isReportFormat(format string) bool {
	return format == "html" || format == "plain"
}

func containsStdin(sources []string) bool {
	for _, s := range sources {
		if s == "-" {
			return true
		}
	}
	return false
}

// resolveSources expands the argument list into concrete DDL sources.
// Directories are walked for .sql files; "-" denotes stdin.
func resolveSources(args []string) ([]string, error) {
	var sources []string
	for _, arg := range args {
		if arg == "-" {
			sources = append(sources, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}

		if !info.IsDir() {
			sources = append(sources, arg)
			continue
		}

		err = filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if name := info.Name(); len(name) > 1 && name[0] == '.' {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".sql") {
				sources = append(sources, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("cannot walk %s: %w", arg, err)
		}
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no DDL files found")
	}
	return sources, nil
}

// checkFileResult holds analysis results for a single source.
type checkFileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
}

// analyzeSources parses and analyzes every source concurrently. Results
// keep the order of the source list regardless of completion order.
func analyzeSources(cmd *cobra.Command, sources []string, lintCfg *lint.Config) ([]checkFileResult, error) {
	analyzer := lint.NewAnalyzer(lintCfg)
	results := make([]checkFileResult, len(sources))

	var eg errgroup.Group
	for i, src := range sources {
		eg.Go(func() error {
			var (
				text []byte
				err  error
			)
			if src == "-" {
				text, err = io.ReadAll(cmd.InOrStdin())
			} else {
				text, err = os.ReadFile(src)
			}
			if err != nil {
				return fmt.Errorf("cannot read %s: %w", src, err)
			}

			sch := schema.Parse(string(text))
			results[i] = checkFileResult{
				Path:        src,
				Diagnostics: analyzer.Analyze(sch),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func buildLintConfig(cfg *config.Config, opts *CheckOptions) *lint.Config {
	// Apply project config first (lower precedence)
	var lintCfg *lint.Config
	if cfg != nil {
		lintCfg = cfg.Lint.ToLintConfig()
	} else {
		lintCfg = lint.NewConfig()
	}

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		lintCfg.Disable(strings.TrimSpace(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabledSet := make(map[string]bool)
		for _, id := range opts.Rules {
			enabledSet[strings.TrimSpace(id)] = true
		}
		for _, rule := range lint.GetAll() {
			if !enabledSet[rule.ID] {
				lintCfg.Disable(rule.ID)
			}
		}
	}

	return lintCfg
}

func filterBySeverity(results []checkFileResult, severityThreshold string) []checkFileResult {
	threshold, ok := lint.ParseSeverity(severityThreshold)
	if !ok {
		threshold = lint.SeverityInfo
	}

	filtered := make([]checkFileResult, 0, len(results))
	for _, res := range results {
		var diags []lint.Diagnostic
		for _, d := range res.Diagnostics {
			if d.Severity <= threshold {
				diags = append(diags, d)
			}
		}
		filtered = append(filtered, checkFileResult{
			Path:        res.Path,
			Diagnostics: diags,
		})
	}
	return filtered
}

// checkSummary aggregates finding counts across all sources.
type checkSummary struct {
	FilesAnalyzed int `json:"files_analyzed"`
	TotalFindings int `json:"total_findings"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Info          int `json:"info"`
}

func summarize(results []checkFileResult) checkSummary {
	summary := checkSummary{FilesAnalyzed: len(results)}
	for _, res := range results {
		summary.TotalFindings += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			}
		}
	}
	return summary
}

// checkJSONOutput is the JSON output structure for the check command.
type checkJSONOutput struct {
	Files   []checkJSONFile `json:"files"`
	Summary checkSummary    `json:"summary"`
}

type checkJSONFile struct {
	Path     string             `json:"path"`
	Findings []checkJSONFinding `json:"findings"`
}

type checkJSONFinding struct {
	RuleID   string `json:"rule_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Table    string `json:"table"`
}

func renderCheckResults(cmd *cobra.Command, r *output.Renderer, format, reportFile string, results []checkFileResult) error {
	summary := summarize(results)

	if isReportFormat(format) {
		w := cmd.OutOrStdout()
		if reportFile != "" {
			f, err := os.Create(reportFile)
			if err != nil {
				return fmt.Errorf("cannot create report file: %w", err)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		var all []lint.Diagnostic
		for _, res := range results {
			all = append(all, res.Diagnostics...)
		}

		var err error
		if format == "html" {
			err = report.WriteHTML(w, "Schema Integrity Report", all)
		} else {
			err = report.WriteText(w, all)
		}
		if err != nil {
			return err
		}
		return checkExitError(summary)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		jsonOutput := checkJSONOutput{Summary: summary}
		for _, res := range results {
			findings := make([]checkJSONFinding, 0, len(res.Diagnostics))
			for _, d := range res.Diagnostics {
				findings = append(findings, checkJSONFinding{
					RuleID:   d.RuleID,
					Severity: d.Severity.String(),
					Message:  d.Message,
					Table:    d.Table,
				})
			}
			jsonOutput.Files = append(jsonOutput.Files, checkJSONFile{
				Path:     res.Path,
				Findings: findings,
			})
		}
		if err := r.JSON(jsonOutput); err != nil {
			return err
		}
	case output.ModeMarkdown:
		renderCheckMarkdown(r, results, summary)
	default:
		renderCheckText(r, results, summary)
	}

	return checkExitError(summary)
}

func renderCheckText(r *output.Renderer, results []checkFileResult, summary checkSummary) {
	if summary.TotalFindings == 0 {
		r.Success("No integrity issues found")
		return
	}

	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		r.Println(r.Styles().FilePath.Render(res.Path))
		for _, d := range res.Diagnostics {
			r.Printf("  %s  %s  %s\n",
				severityStyle(r, d.Severity),
				r.Styles().Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	summaryParts := []string{fmt.Sprintf("%d findings", summary.TotalFindings)}
	if summary.Errors > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("%d info", summary.Info))
	}
	r.Printf("Summary: %s in %d files\n", strings.Join(summaryParts, ", "), summary.FilesAnalyzed)
}

func renderCheckMarkdown(r *output.Renderer, results []checkFileResult, summary checkSummary) {
	r.Println("# Schema Integrity Report")
	r.Println("")

	if summary.TotalFindings == 0 {
		r.Println("No integrity issues found.")
		return
	}

	for _, res := range results {
		if len(res.Diagnostics) == 0 {
			continue
		}
		r.Println("## " + res.Path)
		r.Println("")
		for _, d := range res.Diagnostics {
			r.Printf("- **%s** `%s` - %s\n", d.RuleID, d.Severity.String(), d.Message)
		}
		r.Println("")
	}

	r.Printf("**Summary:** %d findings (%d errors, %d warnings, %d info) in %d files\n",
		summary.TotalFindings, summary.Errors, summary.Warnings, summary.Info, summary.FilesAnalyzed)
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}

// checkExitError returns a non-nil error when error-severity findings
// remain, so the process exits non-zero for CI.
func checkExitError(summary checkSummary) error {
	if summary.Errors > 0 {
		return fmt.Errorf("%d integrity errors found", summary.Errors)
	}
	return nil
}

// watchAndRun re-runs the analysis whenever a watched .sql file is
// written or created. Events are debounced because editors often emit
// several writes per save.
func watchAndRun(cmd *cobra.Command, logger *slog.Logger, sources []string, run func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dirs := make(map[string]bool)
	for _, src := range sources {
		dirs[filepath.Dir(src)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	if err := run(); err != nil {
		logger.Error("analysis failed", "error", err)
	}
	logger.Info("watching for changes", "dirs", len(dirs))

	ctx := cmd.Context()
	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".sql") {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				logger.Info("change detected", "file", filepath.Base(event.Name))
				if err := run(); err != nil {
					logger.Error("analysis failed", "error", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
