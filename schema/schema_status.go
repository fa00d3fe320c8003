package schema

import "time"

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// ReportRunRecord represents a row from the testkit_report_runs table.
type ReportRunRecord struct {
	RunID           int64
	Kind            ReportKind
	GeneratedAt     time.Time
	OverallCoverage int32
	TotalServices   int32
	TotalLines      int64
	CoveredLines    int64
	TotalTests      int32
}

// ServiceCoverageRecord represents a row from the testkit_service_coverage table.
type ServiceCoverageRecord struct {
	RunID         int64
	ServiceName   string
	Status        CoverageStatus
	LinesPct      float64
	StatementsPct float64
	FunctionsPct  float64
	BranchesPct   float64
	LinesTotal    int64
	LinesCovered  int64
}
