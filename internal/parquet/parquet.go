// Package parquet provides data structures and functions for exporting testkit
// run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/dreamscape/testkit/schema"
	"github.com/parquet-go/parquet-go"
)

// ReportRun is one generated coverage or test report.
// This struct maps to the testkit_report_runs database table.
type ReportRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// Kind is either "coverage" or "tests"
	Kind string `parquet:"kind,snappy"`

	// GeneratedAt is when the report was produced (TIMESTAMP with nanosecond precision)
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// OverallCoverage is the aggregated line coverage percentage
	OverallCoverage int32 `parquet:"overall_coverage,snappy"`

	TotalServices int32 `parquet:"total_services,snappy"`
	TotalLines    int64 `parquet:"total_lines,snappy"`
	CoveredLines  int64 `parquet:"covered_lines,snappy"`

	// TotalTests is only set for test runs (nullable)
	TotalTests *int32 `parquet:"total_tests,optional,snappy"`
}

// ServiceCoverage is the coverage of a single service within a run.
// This struct maps to the testkit_service_coverage database table.
type ServiceCoverage struct {
	// RunID references the parent report run
	RunID int64 `parquet:"run_id,snappy"`

	ServiceName string `parquet:"service_name,snappy"`

	// Status is the classification label, e.g. "excellent" or "missing"
	Status string `parquet:"status,snappy"`

	LinesPct      float64 `parquet:"lines_pct,snappy"`
	StatementsPct float64 `parquet:"statements_pct,snappy"`
	FunctionsPct  float64 `parquet:"functions_pct,snappy"`
	BranchesPct   float64 `parquet:"branches_pct,snappy"`
	LinesTotal    int64   `parquet:"lines_total,snappy"`
	LinesCovered  int64   `parquet:"lines_covered,snappy"`
}

// WriteReportRunsParquet writes a slice of ReportRun structs to a Parquet file.
func WriteReportRunsParquet(data []ReportRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteServiceCoverageParquet writes a slice of ServiceCoverage structs to a Parquet file.
func WriteServiceCoverageParquet(data []ServiceCoverage, outputPath string) error {
	return writeParquet(data, outputPath)
}

func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", outputPath, err)
	}
	defer func() { _ = file.Close() }()

	// The schema is inferred from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the row groups and the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertReportRunRecords converts schema.ReportRunRecord to ReportRun for Parquet export.
func ConvertReportRunRecords(records []schema.ReportRunRecord) []ReportRun {
	result := make([]ReportRun, len(records))
	for i, record := range records {
		result[i] = ReportRun{
			RunID:           record.RunID,
			Kind:            string(record.Kind),
			GeneratedAt:     record.GeneratedAt,
			OverallCoverage: record.OverallCoverage,
			TotalServices:   record.TotalServices,
			TotalLines:      record.TotalLines,
			CoveredLines:    record.CoveredLines,
		}
		if record.Kind == schema.TestsKind {
			totalTests := record.TotalTests
			result[i].TotalTests = &totalTests
		}
	}
	return result
}

// ConvertServiceCoverageRecords converts schema.ServiceCoverageRecord to ServiceCoverage for Parquet export.
func ConvertServiceCoverageRecords(records []schema.ServiceCoverageRecord) []ServiceCoverage {
	result := make([]ServiceCoverage, len(records))
	for i, record := range records {
		result[i] = ServiceCoverage{
			RunID:         record.RunID,
			ServiceName:   record.ServiceName,
			Status:        string(record.Status),
			LinesPct:      record.LinesPct,
			StatementsPct: record.StatementsPct,
			FunctionsPct:  record.FunctionsPct,
			BranchesPct:   record.BranchesPct,
			LinesTotal:    record.LinesTotal,
			LinesCovered:  record.LinesCovered,
		}
	}
	return result
}
