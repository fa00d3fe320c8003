package schema

// Custom string types for type safety.
type (
	// CoverageStatus represents the qualitative coverage bucket of a service.
	CoverageStatus string

	// SuiteStatus represents whether a service has a test suite at all.
	SuiteStatus string

	// MetricKey represents one coverage dimension.
	MetricKey string

	// ReportKind represents which generator produced a report.
	ReportKind string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string
)

// All coverage statuses supported.
const (
	ExcellentStatus CoverageStatus = "excellent"
	GoodStatus      CoverageStatus = "good"
	FairStatus      CoverageStatus = "fair"
	PoorStatus      CoverageStatus = "poor"
	UnknownStatus   CoverageStatus = "unknown"
	MissingStatus   CoverageStatus = "missing"
	ErrorStatus     CoverageStatus = "error"
)

// All suite statuses supported.
const (
	HasTests   SuiteStatus = "has_tests"
	BasicTests SuiteStatus = "basic_tests"
	NoTests    SuiteStatus = "no_tests"
)

// Coverage dimensions, in the order they are reported.
const (
	LinesMetric      MetricKey = "lines"
	StatementsMetric MetricKey = "statements"
	FunctionsMetric  MetricKey = "functions"
	BranchesMetric   MetricKey = "branches"
)

// All report kinds supported.
const (
	CoverageKind ReportKind = "coverage"
	TestsKind    ReportKind = "tests"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// AllCoverageStatuses lists every status in severity order.
var AllCoverageStatuses = []CoverageStatus{
	ExcellentStatus, GoodStatus, FairStatus, PoorStatus, UnknownStatus, MissingStatus, ErrorStatus,
}

// AllMetricKeys lists the four coverage dimensions.
var AllMetricKeys = []MetricKey{LinesMetric, StatementsMetric, FunctionsMetric, BranchesMetric}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Output file names written into the reports directory.
const (
	CoverageJSONFile     = "coverage-report.json"
	CoverageHTMLFile     = "coverage-report.html"
	CoverageMarkdownFile = "coverage-summary.md"
	CoverageBadgeFile    = "coverage-badge.svg"
	TestJSONFile         = "test-report.json"
	TestHTMLFile         = "test-report.html"
	TestMarkdownFile     = "test-summary.md"
)

// CoverageSummaryName is the per-service istanbul artifact read from the coverage directory.
const CoverageSummaryName = "coverage-summary.json"
