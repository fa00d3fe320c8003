package outwriter

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
)

// isoTime matches the millisecond ISO-8601 stamps CI dashboards already parse.
const isoTime = "2006-01-02T15:04:05.000Z07:00"

type suiteCard struct {
	Name        string
	Class       string
	Status      string
	Coverage    int
	Unit        int
	Integration int
	E2E         int
}

type testPage struct {
	Generated       string
	TotalTests      int
	LineCoverage    int
	Services        []suiteCard
	Recommendations []string
}

// RenderTestJSON serializes the full test report with two-space indentation.
func RenderTestJSON(report *schema.TestReport) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderTestHTML renders the test inventory page.
func RenderTestHTML(report *schema.TestReport) (string, error) {
	page := testPage{
		Generated:       formatISOTime(report.Generated),
		TotalTests:      report.Summary.TotalTests,
		LineCoverage:    report.Coverage.Current.Lines,
		Recommendations: report.Recommendations,
	}
	for _, name := range report.ServiceNames() {
		s, ok := report.Services[name]
		if !ok {
			continue
		}
		page.Services = append(page.Services, suiteCard{
			Name:        name,
			Class:       strings.ReplaceAll(string(s.Status), "_", "-"),
			Status:      schema.Humanize(string(s.Status)),
			Coverage:    s.Coverage,
			Unit:        s.Tests.Unit,
			Integration: s.Tests.Integration,
			E2E:         s.Tests.E2E,
		})
	}

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "test-report.html.tmpl", page); err != nil {
		return "", fmt.Errorf("executing test report template: %w", err)
	}
	return buf.String(), nil
}

// RenderTestMarkdown renders the test summary, recommendations and the coverage targets table.
func RenderTestMarkdown(report *schema.TestReport) string {
	var b strings.Builder

	b.WriteString("# 🧪 Dreamscape Test Report\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", formatISOTime(report.Generated))

	b.WriteString("## 📊 Summary\n\n")
	fmt.Fprintf(&b, "- **Total Tests:** %d\n", report.Summary.TotalTests)
	fmt.Fprintf(&b, "- **Line Coverage:** %d%%\n", report.Coverage.Current.Lines)
	fmt.Fprintf(&b, "- **Services with Tests:** %d/%d\n\n", report.CountByStatus(schema.HasTests), len(report.Services))

	b.WriteString("## 🏗️ Services Status\n\n")
	sections := make([]string, 0, len(report.Services))
	for _, name := range report.ServiceNames() {
		s, ok := report.Services[name]
		if !ok {
			continue
		}
		sections = append(sections, fmt.Sprintf("### %s %s\n- **Status:** %s\n- **Coverage:** %d%%\n- **Tests:** Unit: %d, Integration: %d, E2E: %d",
			contract.SuiteEmoji(s.Status), name, schema.Humanize(string(s.Status)), s.Coverage,
			s.Tests.Unit, s.Tests.Integration, s.Tests.E2E))
	}
	b.WriteString(strings.Join(sections, "\n\n"))

	b.WriteString("\n\n## 💡 Recommendations\n\n")
	recs := make([]string, len(report.Recommendations))
	for i, rec := range report.Recommendations {
		recs[i] = "- " + rec
	}
	b.WriteString(strings.Join(recs, "\n"))

	b.WriteString("\n\n## 🎯 Coverage Targets\n\n")
	b.WriteString("| Metric | Target | Current | Status |\n")
	b.WriteString("|--------|---------|---------|---------|\n")
	for _, m := range []struct {
		label string
		key   schema.MetricKey
	}{
		{"Lines", schema.LinesMetric},
		{"Functions", schema.FunctionsMetric},
		{"Branches", schema.BranchesMetric},
		{"Statements", schema.StatementsMetric},
	} {
		fmt.Fprintf(&b, "| %s | %d%% | %d%% | %s |\n", m.label,
			report.Coverage.Threshold.Get(m.key), report.Coverage.Current.Get(m.key),
			contract.PassGlyph(report.Coverage.Meets(m.key)))
	}
	return b.String()
}

func formatISOTime(t time.Time) string {
	return t.UTC().Format(isoTime)
}
