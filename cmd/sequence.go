package cmd

import (
	"github.com/dreamscape/testkit/core"
	"github.com/dreamscape/testkit/internal/contract"
	"github.com/spf13/cobra"
)

// sequenceCmd prints test files in execution order.
var sequenceCmd = &cobra.Command{
	Use:   "sequence [paths...]",
	Short: "Print test files in the order they should run.",
	Long: `Order test files so that files containing a priority substring run first,
in the order the substrings are listed. Everything else follows sorted by path.

Without arguments, test files are discovered under the workspace using the
jest and cypress patterns (node_modules and hidden directories are skipped).

Examples:
  # Order the discovered test files
  testkit sequence

  # Order explicit paths with a custom priority list
  testkit sequence --priority auth.integration.test.ts,user.integration.test.ts a.test.ts b.test.ts`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSequence(rootCtx, cfg, args); err != nil {
			contract.LogFatal("Cannot sequence tests", err)
		}
	},
}
