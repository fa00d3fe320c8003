// Package cmd defines the command-line interface for testkit.
package cmd

import (
	"github.com/dreamscape/testkit/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sequenceCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(historyCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("workspace", "w", contract.DefaultWorkspace, "Workspace root of the Dreamscape repository")
	rootCmd.PersistentFlags().String("coverage-dir", contract.DefaultCoverageDir, "Directory holding <service>/coverage-summary.json, relative to the workspace")
	rootCmd.PersistentFlags().String("reports-dir", contract.DefaultReportsDir, "Directory reports are written to, relative to the workspace")
	rootCmd.PersistentFlags().String("history-backend", "none", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of coverageCmd to Viper
	coverageCmd.Flags().Bool("badge", false, "Also write coverage-badge.svg")
	if err := viper.BindPFlags(coverageCmd.Flags()); err != nil {
		contract.LogFatal("Error binding coverage flags", err)
	}

	// Bind all flags of sequenceCmd to Viper
	sequenceCmd.Flags().String("priority", "", "Comma-separated filename substrings that run first, in order")
	sequenceCmd.Flags().String("patterns", "", "Comma-separated glob patterns used to discover test files")
	if err := viper.BindPFlags(sequenceCmd.Flags()); err != nil {
		contract.LogFatal("Error binding sequence flags", err)
	}

	// Bind all flags of historyExportCmd to Viper
	historyExportCmd.Flags().String("output-file", "", "Prefix of the exported Parquet files")
	if err := viper.BindPFlags(historyExportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history export flags", err)
	}

	// Bind all flags of historyClearCmd to Viper
	historyClearCmd.Flags().Bool("drop", false, "Drop the history tables (or delete the SQLite file) instead of emptying them")
	if err := viper.BindPFlags(historyClearCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history clear flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
