// Package outwriter has rendering and writer logic for reports.
package outwriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
)

// OutWriter is the filesystem edge of report generation. Renderers are pure;
// OutWriter only creates the target directory, writes the rendered documents,
// and reports each written path on its progress writer.
type OutWriter struct {
	progress io.Writer
}

// NewOutWriter creates a new output writer that prints progress to stdout.
func NewOutWriter() *OutWriter {
	return &OutWriter{progress: os.Stdout}
}

// NewQuietOutWriter creates an output writer that prints nothing. It is used
// when stdout carries a protocol, as in MCP mode.
func NewQuietOutWriter() *OutWriter {
	return &OutWriter{progress: io.Discard}
}

// Progress returns the writer used for informational lines.
func (ow *OutWriter) Progress() io.Writer {
	return ow.progress
}

// WriteCoverage writes the JSON, HTML and Markdown coverage reports into
// reportsDir, plus the SVG badge when badge is set.
func (ow *OutWriter) WriteCoverage(report *schema.CoverageReport, reportsDir string, badge bool) error {
	if err := contract.EnsureDir(reportsDir); err != nil {
		return err
	}

	data, err := RenderCoverageJSON(report)
	if err != nil {
		return err
	}
	if err := ow.writeString(reportsDir, schema.CoverageJSONFile, string(data), "📄 JSON report"); err != nil {
		return err
	}

	html, err := RenderCoverageHTML(report)
	if err != nil {
		return err
	}
	if err := ow.writeString(reportsDir, schema.CoverageHTMLFile, html, "🌐 HTML report"); err != nil {
		return err
	}

	if err := ow.writeString(reportsDir, schema.CoverageMarkdownFile, RenderCoverageMarkdown(report), "📝 Markdown report"); err != nil {
		return err
	}

	if badge {
		svg := RenderBadge(report.Summary.OverallCoverage, DefaultBadgeThresholds())
		if err := ow.writeString(reportsDir, schema.CoverageBadgeFile, svg, "🏷️ Badge"); err != nil {
			return err
		}
	}
	return nil
}

// WriteTestReport writes the HTML, JSON and Markdown test reports into reportsDir.
func (ow *OutWriter) WriteTestReport(report *schema.TestReport, reportsDir string) error {
	if err := contract.EnsureDir(reportsDir); err != nil {
		return err
	}

	html, err := RenderTestHTML(report)
	if err != nil {
		return err
	}
	if err := ow.writeString(reportsDir, schema.TestHTMLFile, html, ""); err != nil {
		return err
	}

	data, err := RenderTestJSON(report)
	if err != nil {
		return err
	}
	if err := ow.writeString(reportsDir, schema.TestJSONFile, string(data), ""); err != nil {
		return err
	}

	if err := ow.writeString(reportsDir, schema.TestMarkdownFile, RenderTestMarkdown(report), ""); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(ow.progress, "✅ Test reports generated:")
	for _, line := range [][2]string{
		{"📄 HTML Report", schema.TestHTMLFile},
		{"📊 JSON Report", schema.TestJSONFile},
		{"📝 Markdown Summary", schema.TestMarkdownFile},
	} {
		_, _ = fmt.Fprintf(ow.progress, "   %s: %s\n", line[0], filepath.Join(reportsDir, line[1]))
	}
	return nil
}

// PrintCoverageSummary prints the per-service console table for a coverage run.
func (ow *OutWriter) PrintCoverageSummary(report *schema.CoverageReport, cfg *contract.Config) error {
	return writeCoverageTable(ow.progress, report, cfg)
}

// PrintTestSummary prints the per-service console table for a test report run.
func (ow *OutWriter) PrintTestSummary(report *schema.TestReport, cfg *contract.Config) error {
	return writeTestTable(ow.progress, report, cfg)
}
