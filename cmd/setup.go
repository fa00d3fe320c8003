package cmd

import (
	"github.com/dreamscape/testkit/core"
	"github.com/dreamscape/testkit/internal/contract"
	"github.com/spf13/cobra"
)

// setupCmd prepares the workspace for a test run.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Prepare the test environment.",
	Long: `Create the coverage, reports and logs directories, write .env.test with
the service endpoints and write the shared global-config.json.

Service URLs default to localhost ports; variables already set in the
environment take precedence.

Examples:
  testkit setup
  AUTH_SERVICE_URL=http://auth:3002 testkit setup`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSetup(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot set up test environment", err)
		}
	},
}
