// Package schema has models and constants shared by all parts of testkit.
package schema

import (
	"slices"
	"strings"
	"time"
)

// CoverageMetric is one coverage dimension (lines, statements, functions or branches)
// of one service.
type CoverageMetric struct {
	Total   int     `json:"total"`
	Covered int     `json:"covered"`
	Pct     Percent `json:"pct"`
}

// CoverageTotals is the "total" block of a coverage-summary.json artifact.
// A nil metric means the block did not carry that dimension at all.
type CoverageTotals struct {
	Lines      *CoverageMetric `json:"lines"`
	Statements *CoverageMetric `json:"statements"`
	Functions  *CoverageMetric `json:"functions"`
	Branches   *CoverageMetric `json:"branches"`
}

// CoverageSummaryFile is the on-disk shape of <coverageDir>/<service>/coverage-summary.json.
type CoverageSummaryFile struct {
	Total *CoverageTotals `json:"total"`
}

// ServiceCoverage is the detail entry of one service in a CoverageReport.
// Metrics are nil when the service had no usable coverage data.
type ServiceCoverage struct {
	Lines      *CoverageMetric `json:"lines,omitempty"`
	Statements *CoverageMetric `json:"statements,omitempty"`
	Functions  *CoverageMetric `json:"functions,omitempty"`
	Branches   *CoverageMetric `json:"branches,omitempty"`
	Status     CoverageStatus  `json:"status"`
	Error      string          `json:"error,omitempty"`
}

// HasData reports whether the service carries parsed metrics.
func (s ServiceCoverage) HasData() bool {
	return s.Error == "" && s.Lines != nil
}

// Metric returns the metric for the given dimension, or a zero metric.
func (s ServiceCoverage) Metric(key MetricKey) CoverageMetric {
	var m *CoverageMetric
	switch key {
	case LinesMetric:
		m = s.Lines
	case StatementsMetric:
		m = s.Statements
	case FunctionsMetric:
		m = s.Functions
	case BranchesMetric:
		m = s.Branches
	}
	if m == nil {
		return CoverageMetric{}
	}
	return *m
}

// Threshold holds the minimum percentage per dimension for one service.
type Threshold struct {
	Branches   int `json:"branches" mapstructure:"branches"`
	Functions  int `json:"functions" mapstructure:"functions"`
	Lines      int `json:"lines" mapstructure:"lines"`
	Statements int `json:"statements" mapstructure:"statements"`
}

// ThresholdTable maps a service key (service name without "-service") to its thresholds.
type ThresholdTable map[string]Threshold

// Keys returns the table keys sorted alphabetically.
func (t ThresholdTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// CoverageSummary is the roll-up section of a CoverageReport.
type CoverageSummary struct {
	TotalServices        int                    `json:"totalServices"`
	ServicesTotalLines   int                    `json:"servicesTotalLines"`
	ServicesCoveredLines int                    `json:"servicesCoveredLines"`
	OverallCoverage      int                    `json:"overallCoverage"`
	Services             map[CoverageStatus]int `json:"services"`
}

// CoverageReport is the aggregate produced by one coverage run.
type CoverageReport struct {
	Timestamp  time.Time                  `json:"timestamp"`
	Summary    CoverageSummary            `json:"summary"`
	Details    map[string]ServiceCoverage `json:"details"`
	Thresholds ThresholdTable             `json:"thresholds"`

	// order keeps the configured service order for rendering.
	order []string
}

// NewCoverageReport creates an empty report for the given services.
func NewCoverageReport(ts time.Time, services []string, thresholds ThresholdTable) *CoverageReport {
	return &CoverageReport{
		Timestamp: ts,
		Summary: CoverageSummary{
			TotalServices: len(services),
			Services:      make(map[CoverageStatus]int),
		},
		Details:    make(map[string]ServiceCoverage, len(services)),
		Thresholds: thresholds,
		order:      slices.Clone(services),
	}
}

// ServiceNames returns detail keys in configured order, falling back to
// alphabetical order for reports that were decoded from JSON.
func (r *CoverageReport) ServiceNames() []string {
	if len(r.order) > 0 {
		return slices.Clone(r.order)
	}
	names := make([]string, 0, len(r.Details))
	for name := range r.Details {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ThresholdKeys returns threshold keys in the order their services were
// configured, followed by any remaining keys alphabetically.
func (r *CoverageReport) ThresholdKeys() []string {
	keys := make([]string, 0, len(r.Thresholds))
	seen := make(map[string]struct{}, len(r.Thresholds))
	for _, name := range r.order {
		key := ThresholdKey(name)
		if _, ok := r.Thresholds[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	for _, key := range r.Thresholds.Keys() {
		if _, ok := seen[key]; !ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// ThresholdKey maps a service name to its threshold table key by dropping
// the "-service" suffix. "web-client" stays "web-client".
func ThresholdKey(service string) string {
	return strings.TrimSuffix(service, "-service")
}
