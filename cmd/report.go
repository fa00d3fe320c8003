package cmd

import (
	"github.com/dreamscape/testkit/core"
	"github.com/dreamscape/testkit/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd renders the test suite inventory.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the comprehensive test report.",
	Long: `Render the maintained inventory of Dreamscape test suites: which services
have tests, how many per level, the results per test type and the
recommendations for the next test campaign.

Writes test-report.html, test-report.json and test-summary.md into the
reports directory.

Examples:
  testkit report
  testkit report --reports-dir out/reports`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTestReport(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot generate test report", err)
		}
	},
}
