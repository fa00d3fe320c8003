package outwriter

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
)

//go:embed templates/*.html.tmpl
var templates embed.FS

var pageTemplates = template.Must(template.ParseFS(templates, "templates/*.html.tmpl"))

// displayTime is the human-readable timestamp layout used in HTML and Markdown.
const displayTime = "1/2/2006, 3:04:05 PM"

type metricBar struct {
	Label string
	Pct   string
}

type serviceCard struct {
	Name   string
	Status string
	Error  string
	Bars   []metricBar
}

type coveragePage struct {
	Generated     string
	Overall       int
	TotalServices int
	Excellent     int
	TotalLines    string
	Services      []serviceCard
}

// RenderCoverageJSON serializes the full coverage report with two-space indentation.
func RenderCoverageJSON(report *schema.CoverageReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderCoverageHTML renders the styled coverage dashboard.
func RenderCoverageHTML(report *schema.CoverageReport) (string, error) {
	page := coveragePage{
		Generated:     formatDisplayTime(report.Timestamp),
		Overall:       report.Summary.OverallCoverage,
		TotalServices: report.Summary.TotalServices,
		Excellent:     report.Summary.Services[schema.ExcellentStatus],
		TotalLines:    schema.FormatThousands(report.Summary.ServicesTotalLines),
	}
	for _, name := range report.ServiceNames() {
		d, ok := report.Details[name]
		if !ok {
			continue
		}
		card := serviceCard{Name: name, Status: string(d.Status), Error: d.Error}
		if d.Error == "" {
			// Statements are left out of the cards to keep them compact.
			card.Bars = []metricBar{
				{Label: "Lines", Pct: schema.FormatPercent(d.Metric(schema.LinesMetric).Pct)},
				{Label: "Functions", Pct: schema.FormatPercent(d.Metric(schema.FunctionsMetric).Pct)},
				{Label: "Branches", Pct: schema.FormatPercent(d.Metric(schema.BranchesMetric).Pct)},
			}
		}
		page.Services = append(page.Services, card)
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "coverage.html.tmpl", page); err != nil {
		return "", fmt.Errorf("executing coverage template: %w", err)
	}
	return buf.String(), nil
}

// RenderCoverageMarkdown renders the coverage summary with status emoji and a thresholds table.
func RenderCoverageMarkdown(report *schema.CoverageReport) string {
	var b strings.Builder
	s := report.Summary

	b.WriteString("# 📊 Dreamscape Coverage Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", formatDisplayTime(report.Timestamp))

	b.WriteString("## 🎯 Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|--------|\n")
	fmt.Fprintf(&b, "| **Overall Coverage** | %d%% |\n", s.OverallCoverage)
	fmt.Fprintf(&b, "| **Services Analyzed** | %d |\n", s.TotalServices)
	fmt.Fprintf(&b, "| **Total Lines** | %s |\n", schema.FormatThousands(s.ServicesTotalLines))
	fmt.Fprintf(&b, "| **Covered Lines** | %s |\n\n", schema.FormatThousands(s.ServicesCoveredLines))

	b.WriteString("## 📈 Services Status\n\n")
	sections := make([]string, 0, len(report.Details))
	for _, name := range report.ServiceNames() {
		d, ok := report.Details[name]
		if !ok {
			continue
		}
		sections = append(sections, markdownServiceSection(name, d))
	}
	b.WriteString(strings.Join(sections, "\n"))

	b.WriteString("\n## 🎯 Coverage Thresholds\n\n")
	b.WriteString("| Service | Lines | Functions | Branches | Statements |\n")
	b.WriteString("|---------|--------|-----------|----------|------------|\n")
	for _, key := range report.ThresholdKeys() {
		th := report.Thresholds[key]
		fmt.Fprintf(&b, "| %s | %d%% | %d%% | %d%% | %d%% |\n", key, th.Lines, th.Functions, th.Branches, th.Statements)
	}

	b.WriteString("\n---\n*Report generated automatically by Dreamscape test suite*")
	return b.String()
}

func markdownServiceSection(name string, d schema.ServiceCoverage) string {
	if d.Error != "" {
		return fmt.Sprintf("### ❌ %s\n**Error:** %s\n", name, d.Error)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### %s %s\n", contract.StatusEmoji(d.Status), name)
	fmt.Fprintf(&b, "**Status:** %s\n", d.Status)
	for _, m := range []struct {
		label string
		key   schema.MetricKey
	}{
		{"Lines", schema.LinesMetric},
		{"Functions", schema.FunctionsMetric},
		{"Branches", schema.BranchesMetric},
		{"Statements", schema.StatementsMetric},
	} {
		metric := d.Metric(m.key)
		fmt.Fprintf(&b, "- **%s:** %s%% (%d/%d)\n", m.label, schema.FormatPercent(metric.Pct), metric.Covered, metric.Total)
	}
	return b.String()
}

func formatDisplayTime(t time.Time) string {
	return t.Local().Format(displayTime)
}
