package iocache

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/dreamscape/testkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func sampleCoverageReport() *schema.CoverageReport {
	report := schema.NewCoverageReport(recordedAt, []string{"auth-service", "web-client"}, schema.ThresholdTable{})
	report.Details["auth-service"] = schema.ServiceCoverage{
		Lines:      &schema.CoverageMetric{Total: 100, Covered: 95, Pct: 95},
		Statements: &schema.CoverageMetric{Total: 120, Covered: 110, Pct: 91.67},
		Functions:  &schema.CoverageMetric{Total: 20, Covered: 18, Pct: 90},
		Branches:   &schema.CoverageMetric{Total: 40, Covered: 30, Pct: 75},
		Status:     schema.ExcellentStatus,
	}
	report.Details["web-client"] = schema.ServiceCoverage{Status: schema.MissingStatus, Error: "No coverage data available"}
	report.Summary.ServicesTotalLines = 100
	report.Summary.ServicesCoveredLines = 95
	report.Summary.OverallCoverage = 95
	return report
}

func sampleTestReport() *schema.TestReport {
	report := &schema.TestReport{
		Generated: recordedAt.Add(time.Minute),
		Summary:   schema.TestSummary{TotalTests: 22},
		Services:  map[string]schema.SuiteInventory{"auth": {}, "voyage": {}},
		Coverage:  schema.CoverageTargets{Current: schema.CoverageFigures{Lines: 68}},
	}
	return report
}

func newSQLiteStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	runID, err := store.RecordCoverageRun(sampleCoverageReport())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	runID, err = store.RecordTestRun(sampleTestReport())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "none", status.Backend)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

func TestHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore("oracle", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestHistoryStore_RecordCoverageRun(t *testing.T) {
	store := newSQLiteStore(t)

	runID, err := store.RecordCoverageRun(sampleCoverageReport())
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, schema.CoverageKind, runs[0].Kind)
	assert.Equal(t, int32(95), runs[0].OverallCoverage)
	assert.Equal(t, int32(2), runs[0].TotalServices)
	assert.Equal(t, int64(100), runs[0].TotalLines)
	assert.Equal(t, int64(95), runs[0].CoveredLines)
	assert.True(t, recordedAt.Equal(runs[0].GeneratedAt))

	services, err := store.GetAllServiceCoverage()
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "auth-service", services[0].ServiceName)
	assert.Equal(t, schema.ExcellentStatus, services[0].Status)
	assert.InDelta(t, 91.67, services[0].StatementsPct, 0.001)
	assert.Equal(t, int64(95), services[0].LinesCovered)
	assert.Equal(t, "web-client", services[1].ServiceName)
	assert.Equal(t, schema.MissingStatus, services[1].Status)
	assert.Zero(t, services[1].LinesTotal)
}

func TestHistoryStore_RecordTestRun(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.RecordCoverageRun(sampleCoverageReport())
	require.NoError(t, err)
	runID, err := store.RecordTestRun(sampleTestReport())
	require.NoError(t, err)
	assert.Equal(t, int64(2), runID)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, schema.TestsKind, runs[1].Kind)
	assert.Equal(t, int32(22), runs[1].TotalTests)
	assert.Equal(t, int32(68), runs[1].OverallCoverage)

	// Test runs carry no per-service coverage
	services, err := store.GetAllServiceCoverage()
	require.NoError(t, err)
	assert.Len(t, services, 2)
}

func TestHistoryStore_StatusAndClear(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)

	_, err = store.RecordCoverageRun(sampleCoverageReport())
	require.NoError(t, err)
	_, err = store.RecordTestRun(sampleTestReport())
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, int64(2), status.LastRunID)
	assert.True(t, recordedAt.Equal(status.OldestRunTime))
	assert.True(t, recordedAt.Add(time.Minute).Equal(status.LastRunTime))
	assert.Equal(t, int64(2), status.TableSizes[reportRunsTable])
	assert.Equal(t, int64(2), status.TableSizes[serviceCoverageTable])

	require.NoError(t, store.Clear())
	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Zero(t, status.TotalRuns)
	assert.Zero(t, status.TableSizes[serviceCoverageTable])
}

func TestHistoryStore_ReopenFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	_, err = store.RecordCoverageRun(sampleCoverageReport())
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Opening again must keep the existing tables and rows
	store, err = NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?, ?, ?", placeholders(schema.SQLiteBackend, 3))
	assert.Equal(t, "?, ?", placeholders(schema.MySQLBackend, 2))
	assert.Equal(t, "$1, $2, $3", placeholders(schema.PostgreSQLBackend, 3))
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`testkit_report_runs`", quoteTableName(reportRunsTable, schema.MySQLBackend))
	assert.Equal(t, `"testkit_report_runs"`, quoteTableName(reportRunsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"testkit_report_runs"`, quoteTableName(reportRunsTable, schema.SQLiteBackend))
}

func TestMySQLDSN(t *testing.T) {
	dsn, err := mysqlDSN("user:pass@tcp(localhost:3306)/testkit", true)
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "multiStatements=true")

	_, err = mysqlDSN("not a dsn", false)
	assert.Error(t, err)
}

func TestPrintHistoryStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"})
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:    "sqlite",
		Connected:  true,
		TableSizes: map[string]int64{serviceCoverageTable: 7, reportRunsTable: 1},
	})
	out := buf.String()
	assert.Contains(t, out, "Total Runs: 0\n")
	assert.NotContains(t, out, "Last Run ID")
	assert.Less(t,
		bytes.Index(buf.Bytes(), []byte(reportRunsTable)),
		bytes.Index(buf.Bytes(), []byte(serviceCoverageTable)),
		"tables are listed alphabetically")
	assert.Contains(t, out, "  testkit_service_coverage: 7 rows\n")
}
