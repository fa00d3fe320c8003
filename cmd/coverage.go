package cmd

import (
	"github.com/dreamscape/testkit/core"
	"github.com/dreamscape/testkit/internal/contract"
	"github.com/spf13/cobra"
)

// coverageCmd aggregates the per-service coverage summaries.
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Generate the unified coverage report for all services.",
	Long: `Read <coverage-dir>/<service>/coverage-summary.json for every configured
service and merge them into a single report.

Each service is classified against its threshold table entry:
- excellent: every metric meets its threshold
- good/fair/poor: lines coverage within 80% / 60% / below 60% of the threshold
- unknown: no threshold entry for the service
- missing/error: no summary file, or one that cannot be parsed

Writes coverage-report.json, coverage-report.html and coverage-summary.md
into the reports directory. Missing or broken summaries never fail the run.

Examples:
  # Aggregate with the default layout
  testkit coverage

  # Point at another coverage root and write a badge
  testkit coverage --coverage-dir tmp/coverage --badge`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCoverage(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot generate coverage report", err)
		}
	},
}
