package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/internal/iocache"
	"github.com/dreamscape/testkit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyConfig loads the history backend settings without the full shared setup.
func historyConfig() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := strings.ToLower(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	// Handle empty backend as NoneBackend
	backend := schema.DatabaseBackend(backendStr)
	if backendStr == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historySetupWrapper loads the history settings and opens the store.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	if err := iocache.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}
	return nil
}

// historyMigrateSetupWrapper loads the history settings only. Tables are not
// created so migrations can run against a fresh database.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := historyConfig(); err != nil {
		return err
	}
	// For SQLite backend with empty connection string, use default path
	if cfg.HistoryBackend == schema.SQLiteBackend && cfg.HistoryDBConnect == "" {
		cfg.HistoryDBConnect = contract.GetHistoryDBFilePath()
	}
	return nil
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the run history of coverage and test reports",
	Long: `Manage the optional history of report runs.

When a history backend is configured, every coverage and test report run
stores a summary row, plus one row per service for coverage runs. Report
files on disk are still overwritten on each run.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  testkit history status --history-backend sqlite
  testkit history export --history-backend sqlite --output-file coverage-history`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display run history statistics and connection details",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			iocache.PrintHistoryStatus(os.Stdout, schema.HistoryStatus{Backend: string(cfg.HistoryBackend)})
			return
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export run history to Parquet for BI tools and analytics",
	Long: `Export all recorded runs to Parquet format.

Writes two datasets next to --output-file:
- <output-file>.report_runs.parquet with one row per report run
- <output-file>.service_coverage.parquet with one row per service and coverage run

Examples:
  testkit history export --history-backend sqlite --output-file history
  duckdb -c "SELECT * FROM read_parquet('history.report_runs.parquet')"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		_, _, err := iocache.ExportHistory(os.Stdout, iocache.Manager.GetHistoryStore(), viper.GetString("output-file"))
		if errors.Is(err, iocache.ErrNoHistory) {
			fmt.Println("No run history found to export.")
			return
		}
		if err != nil {
			contract.LogFatal("Failed to export run history", err)
		}
	},
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs",
	Long: `Delete every recorded report run and service row.

By default the tables are emptied. With --drop the tables are dropped, or
the SQLite database file is deleted.

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if viper.GetBool("drop") {
			if err := iocache.DropHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.HistoryDBConnect); err != nil {
				contract.LogFatal("Failed to drop run history", err)
			}
			fmt.Println("Run history dropped successfully.")
			return
		}

		if err := iocache.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to initialize run history", err)
		}
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			fmt.Println("Run history is disabled; nothing to clear.")
			return
		}
		if err := store.Clear(); err != nil {
			contract.LogFatal("Failed to clear run history", err)
		}
		fmt.Println("Run history cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  testkit history migrate --history-backend sqlite

  # Rollback to initial state
  testkit history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
