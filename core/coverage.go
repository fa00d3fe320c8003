package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
)

// Error messages stored in the details of services without usable data.
const (
	missingCoverageMsg   = "No coverage data available"
	malformedCoverageMsg = "Could not parse coverage data"
)

// errNullSummary is returned for a coverage summary whose document is JSON null.
var errNullSummary = errors.New("coverage summary is null")

// GenerateCoverageReport aggregates the coverage summaries of every configured
// service and writes the JSON, HTML and Markdown reports into the reports directory.
// Per-service problems are recorded in the report; only write failures return an error.
func GenerateCoverageReport(ctx context.Context, cfg *contract.Config) (*schema.CoverageReport, error) {
	ow := newOutWriter(ctx)
	_, _ = fmt.Fprintln(ow.Progress(), "📊 Generating unified coverage report...")

	report := BuildCoverageReport(cfg, time.Now())

	if err := ow.WriteCoverage(report, cfg.ReportsDir, cfg.Badge); err != nil {
		return nil, err
	}

	_, _ = fmt.Fprintln(ow.Progress(), "✅ Coverage reports generated successfully!")
	_, _ = fmt.Fprintf(ow.Progress(), "📊 Overall coverage: %d%%\n", report.Summary.OverallCoverage)
	return report, nil
}

// BuildCoverageReport reads <coverageDir>/<service>/coverage-summary.json for each
// configured service and computes the summary. It never fails: a missing file marks the
// service missing and an unreadable or malformed one marks it as an error.
func BuildCoverageReport(cfg *contract.Config, now time.Time) *schema.CoverageReport {
	report := schema.NewCoverageReport(now, cfg.Services, cfg.Thresholds)

	for _, service := range cfg.Services {
		path := filepath.Join(cfg.CoverageDir, service, schema.CoverageSummaryName)
		totals, err := readCoverageSummary(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			contract.LogWarn(fmt.Sprintf("No coverage data found for %s", service), nil)
			report.Details[service] = schema.ServiceCoverage{Status: schema.MissingStatus, Error: missingCoverageMsg}
		case err != nil:
			contract.LogWarn(fmt.Sprintf("Could not parse coverage for %s", service), err)
			report.Details[service] = schema.ServiceCoverage{Status: schema.ErrorStatus, Error: malformedCoverageMsg}
		default:
			detail := newServiceCoverage(totals, ClassifyService(service, totals, cfg.Thresholds))
			report.Details[service] = detail
			report.Summary.ServicesTotalLines += detail.Lines.Total
			report.Summary.ServicesCoveredLines += detail.Lines.Covered
		}
	}

	report.Summary.OverallCoverage = schema.RoundPercent(report.Summary.ServicesCoveredLines, report.Summary.ServicesTotalLines)
	for _, detail := range report.Details {
		report.Summary.Services[detail.Status]++
	}
	return report
}

// ClassifyService buckets a service by comparing its coverage percentages with the
// thresholds registered under its key (the name without "-service"). Only lines
// coverage decides between good, fair and poor once any threshold is missed.
func ClassifyService(service string, totals *schema.CoverageTotals, thresholds schema.ThresholdTable) schema.CoverageStatus {
	th, ok := thresholds[schema.ThresholdKey(service)]
	if !ok || totals == nil || totals.Lines == nil {
		return schema.UnknownStatus
	}

	lines := metricPct(totals.Lines)
	functions := metricPct(totals.Functions)
	branches := metricPct(totals.Branches)
	statements := metricPct(totals.Statements)

	meetsThresholds := lines >= float64(th.Lines) &&
		functions >= float64(th.Functions) &&
		branches >= float64(th.Branches) &&
		statements >= float64(th.Statements)

	switch {
	case meetsThresholds:
		return schema.ExcellentStatus
	case lines >= float64(th.Lines)*0.8:
		return schema.GoodStatus
	case lines >= float64(th.Lines)*0.6:
		return schema.FairStatus
	default:
		return schema.PoorStatus
	}
}

// readCoverageSummary decodes the "total" block of a coverage summary file.
// A file without a "total" block yields empty totals.
func readCoverageSummary(path string) (*schema.CoverageTotals, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, errNullSummary
	}
	var summary schema.CoverageSummaryFile
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("invalid coverage summary %s: %w", path, err)
	}
	if summary.Total == nil {
		return &schema.CoverageTotals{}, nil
	}
	return summary.Total, nil
}

// newServiceCoverage copies the four metrics into a detail entry, defaulting absent
// ones to zero and clamping covered into [0, total].
func newServiceCoverage(totals *schema.CoverageTotals, status schema.CoverageStatus) schema.ServiceCoverage {
	return schema.ServiceCoverage{
		Lines:      normalizeMetric(totals.Lines),
		Statements: normalizeMetric(totals.Statements),
		Functions:  normalizeMetric(totals.Functions),
		Branches:   normalizeMetric(totals.Branches),
		Status:     status,
	}
}

func normalizeMetric(m *schema.CoverageMetric) *schema.CoverageMetric {
	if m == nil {
		return &schema.CoverageMetric{}
	}
	total := max(m.Total, 0)
	return &schema.CoverageMetric{
		Total:   total,
		Covered: min(max(m.Covered, 0), total),
		Pct:     schema.Percent(schema.ClampPercent(float64(m.Pct))),
	}
}

func metricPct(m *schema.CoverageMetric) float64 {
	if m == nil {
		return 0
	}
	return float64(m.Pct)
}
