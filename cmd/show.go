package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/dreamscape/testkit/internal/outwriter"
	"github.com/dreamscape/testkit/schema"
	"github.com/spf13/cobra"
)

// showCmd renders a Markdown report in the terminal.
var showCmd = &cobra.Command{
	Use:   "show [file.md]",
	Short: "Render a Markdown report in the terminal.",
	Long: `Display a generated Markdown summary with terminal styling.

Defaults to coverage-summary.md in the reports directory.

Examples:
  testkit show
  testkit show reports/test-summary.md --color no`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		path := filepath.Join(cfg.ReportsDir, schema.CoverageMarkdownFile)
		if len(args) == 1 {
			path = args[0]
		}
		data, err := os.ReadFile(path)
		if err != nil {
			contract.LogFatal("Cannot read report", err)
		}
		out, err := outwriter.RenderMarkdownTerminal(string(data), cfg)
		if err != nil {
			contract.LogFatal("Cannot render report", err)
		}
		fmt.Print(out)
	},
}
