package iocache

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/schema"
	"github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for run history.
const (
	reportRunsTable      = "testkit_report_runs"
	serviceCoverageTable = "testkit_service_coverage"
)

// baseSchemaFile creates both history tables. Stores apply it on open so that
// recording works without a separate migrate step.
const baseSchemaFile = "000001_create_history_tables.up.sql"

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	db, driverName, err := openDatabase(backend, connStr)
	if err != nil {
		return nil, err
	}
	if db == nil {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database file is accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// openDatabase opens the sql.DB for backend. It returns a nil DB for NoneBackend.
func openDatabase(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
		return db, "sqlite", nil

	case schema.MySQLBackend:
		dsn, err := mysqlDSN(connStr, false)
		if err != nil {
			return nil, "", err
		}
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}
		return db, "mysql", nil

	case schema.PostgreSQLBackend:
		db, err := sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}
		return db, "pgx", nil

	case schema.NoneBackend:
		return nil, "", nil

	default:
		return nil, "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// mysqlDSN forces parseTime so DATETIME columns scan into time.Time.
func mysqlDSN(connStr string, multiStatements bool) (string, error) {
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL connection string: %w", err)
	}
	cfg.ParseTime = true
	cfg.MultiStatements = multiStatements
	return cfg.FormatDSN(), nil
}

// createHistoryTables applies the base schema statement by statement.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	data, err := migrationsFS.ReadFile(migrationDir(backend) + "/" + baseSchemaFile)
	if err != nil {
		return fmt.Errorf("failed to read base schema: %w", err)
	}
	for stmt := range strings.SplitSeq(string(data), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// RecordCoverageRun stores the summary of a coverage report and one row per service.
func (hs *HistoryStoreImpl) RecordCoverageRun(report *schema.CoverageReport) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	s := report.Summary
	runID, err := hs.insertRun(tx, schema.ReportRunRecord{
		Kind:            schema.CoverageKind,
		GeneratedAt:     report.Timestamp,
		OverallCoverage: int32(s.OverallCoverage),
		TotalServices:   int32(s.TotalServices),
		TotalLines:      int64(s.ServicesTotalLines),
		CoveredLines:    int64(s.ServicesCoveredLines),
	})
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, service_name, status, lines_pct, statements_pct,
		functions_pct, branches_pct, lines_total, lines_covered)
		VALUES (%s)`, quoteTableName(serviceCoverageTable, hs.backend), placeholders(hs.backend, 9))
	for _, name := range report.ServiceNames() {
		d, ok := report.Details[name]
		if !ok {
			continue
		}
		lines := d.Metric(schema.LinesMetric)
		if _, err := tx.Exec(query,
			runID, name, string(d.Status),
			float64(lines.Pct),
			float64(d.Metric(schema.StatementsMetric).Pct),
			float64(d.Metric(schema.FunctionsMetric).Pct),
			float64(d.Metric(schema.BranchesMetric).Pct),
			lines.Total, lines.Covered,
		); err != nil {
			return 0, fmt.Errorf("failed to insert coverage for %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit coverage run: %w", err)
	}
	return runID, nil
}

// RecordTestRun stores the summary of a test report.
func (hs *HistoryStoreImpl) RecordTestRun(report *schema.TestReport) (int64, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runID, err := hs.insertRun(tx, schema.ReportRunRecord{
		Kind:            schema.TestsKind,
		GeneratedAt:     report.Generated,
		OverallCoverage: int32(report.Coverage.Current.Lines),
		TotalServices:   int32(len(report.Services)),
		TotalTests:      int32(report.Summary.TotalTests),
	})
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit test run: %w", err)
	}
	return runID, nil
}

// insertRun adds a row to the runs table and returns its ID.
func (hs *HistoryStoreImpl) insertRun(tx *sql.Tx, run schema.ReportRunRecord) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (kind, generated_at, overall_coverage, total_services,
		total_lines, covered_lines, total_tests) VALUES (%s)`,
		quoteTableName(reportRunsTable, hs.backend), placeholders(hs.backend, 7))
	args := []any{
		string(run.Kind), formatTime(run.GeneratedAt, hs.backend), run.OverallCoverage,
		run.TotalServices, run.TotalLines, run.CoveredLines, run.TotalTests,
	}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		if err := tx.QueryRow(query+" RETURNING run_id", args...).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to insert report run: %w", err)
		}
	default: // SQLite and MySQL
		result, err := tx.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert report run: %w", err)
		}
		if runID, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read report run id: %w", err)
		}
	}
	return runID, nil
}

// GetAllRuns retrieves all report runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.ReportRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, kind, generated_at, overall_coverage, total_services,
		total_lines, covered_lines, total_tests FROM %s ORDER BY run_id`, quoteTableName(reportRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query report runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ReportRunRecord
	for rows.Next() {
		var record schema.ReportRunRecord
		var kind string
		generatedAt := newTimeScanner(hs.backend)
		if err := rows.Scan(&record.RunID, &kind, generatedAt.dest(), &record.OverallCoverage,
			&record.TotalServices, &record.TotalLines, &record.CoveredLines, &record.TotalTests); err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}
		if record.GeneratedAt, err = generatedAt.value(); err != nil {
			return nil, fmt.Errorf("failed to parse generated_at: %w", err)
		}
		record.Kind = schema.ReportKind(kind)
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report runs: %w", err)
	}
	return results, nil
}

// GetAllServiceCoverage retrieves all per-service coverage rows from the store.
func (hs *HistoryStoreImpl) GetAllServiceCoverage() ([]schema.ServiceCoverageRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, service_name, status, lines_pct, statements_pct,
		functions_pct, branches_pct, lines_total, lines_covered
		FROM %s ORDER BY run_id, service_name`, quoteTableName(serviceCoverageTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query service coverage: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ServiceCoverageRecord
	for rows.Next() {
		var record schema.ServiceCoverageRecord
		var status string
		if err := rows.Scan(&record.RunID, &record.ServiceName, &status, &record.LinesPct,
			&record.StatementsPct, &record.FunctionsPct, &record.BranchesPct,
			&record.LinesTotal, &record.LinesCovered); err != nil {
			return nil, fmt.Errorf("failed to scan service coverage: %w", err)
		}
		record.Status = schema.CoverageStatus(status)
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating service coverage: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runs := quoteTableName(reportRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		last := newTimeScanner(hs.backend)
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, generated_at FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		var err error
		if status.LastRunTime, err = last.value(); err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}

		oldest := newTimeScanner(hs.backend)
		row = hs.db.QueryRow(fmt.Sprintf("SELECT generated_at FROM %s ORDER BY run_id ASC LIMIT 1", runs))
		if err := row.Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		if status.OldestRunTime, err = oldest.value(); err != nil {
			return status, fmt.Errorf("failed to parse oldest run time: %w", err)
		}
	}

	for _, table := range []string{reportRunsTable, serviceCoverageTable} {
		var count int64
		row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// Clear removes every recorded run while keeping the tables.
func (hs *HistoryStoreImpl) Clear() error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}
	for _, table := range []string{serviceCoverageTable, reportRunsTable} {
		if _, err := hs.db.Exec(fmt.Sprintf("DELETE FROM %s", quoteTableName(table, hs.backend))); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// quoteTableName quotes a table name for the backend's SQL dialect.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// placeholders returns n bind parameters in the backend's syntax.
func placeholders(backend schema.DatabaseBackend, n int) string {
	parts := make([]string, n)
	for i := range parts {
		if backend == schema.PostgreSQLBackend {
			parts[i] = fmt.Sprintf("$%d", i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// timeScanner reads a timestamp column stored as TEXT on SQLite and natively elsewhere.
type timeScanner struct {
	backend schema.DatabaseBackend
	text    string
	native  time.Time
}

func newTimeScanner(backend schema.DatabaseBackend) *timeScanner {
	return &timeScanner{backend: backend}
}

func (ts *timeScanner) dest() any {
	if ts.backend == schema.SQLiteBackend {
		return &ts.text
	}
	return &ts.native
}

func (ts *timeScanner) value() (time.Time, error) {
	if ts.backend == schema.SQLiteBackend {
		return time.Parse(time.RFC3339Nano, ts.text)
	}
	return ts.native, nil
}
