// Package contract provides interfaces and shared utilities for testkit's internal architecture.
package contract

import (
	"github.com/dreamscape/testkit/schema"
)

// HistoryManager defines the interface for reaching the run history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for recording report runs.
type HistoryStore interface {
	// RecordCoverageRun stores the summary and per-service rows of a coverage report
	// and returns the new run ID.
	RecordCoverageRun(report *schema.CoverageReport) (int64, error)

	// RecordTestRun stores the summary of a test report and returns the new run ID.
	RecordTestRun(report *schema.TestReport) (int64, error)

	// GetAllRuns returns every recorded run ordered by run ID.
	GetAllRuns() ([]schema.ReportRunRecord, error)

	// GetAllServiceCoverage returns every per-service coverage row ordered by run ID.
	GetAllServiceCoverage() ([]schema.ServiceCoverageRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all recorded runs.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
