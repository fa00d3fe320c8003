package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/internal/parquet"
)

// ErrNoHistory is returned when an export finds no recorded runs.
var ErrNoHistory = errors.New("no run history found to export")

// ExportHistory writes every recorded run and service row to two Parquet files
// named after outputFile and returns their paths.
func ExportHistory(w io.Writer, store contract.HistoryStore, outputFile string) (runsFile, servicesFile string, err error) {
	if outputFile == "" {
		return "", "", errors.New("--output-file is required for export command")
	}
	if store == nil {
		return "", "", errors.New("run history is disabled; set --history-backend")
	}

	status, err := store.GetStatus()
	if err != nil {
		return "", "", fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return "", "", ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total report runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total service records: %d\n", status.TableSizes[serviceCoverageTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return "", "", fmt.Errorf("failed to retrieve report runs: %w", err)
	}
	services, err := store.GetAllServiceCoverage()
	if err != nil {
		return "", "", fmt.Errorf("failed to retrieve service coverage: %w", err)
	}

	runsFile = outputFile + ".report_runs.parquet"
	if err := parquet.WriteReportRunsParquet(parquet.ConvertReportRunRecords(runs), runsFile); err != nil {
		return "", "", fmt.Errorf("failed to write report runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d report runs to: %s\n", len(runs), runsFile)

	servicesFile = outputFile + ".service_coverage.parquet"
	if err := parquet.WriteServiceCoverageParquet(parquet.ConvertServiceCoverageRecords(services), servicesFile); err != nil {
		return "", "", fmt.Errorf("failed to write service coverage: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d service coverage records to: %s\n", len(services), servicesFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be used with DuckDB, Pandas (via pyarrow) or Spark.")
	return runsFile, servicesFile, nil
}
