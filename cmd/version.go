package cmd

import (
	"runtime"

	"github.com/dreamscape/testkit/internal/contract"
	"github.com/spf13/cobra"
)

// versionCmd prints build details and the built-in defaults.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of testkit.",
	Long: `Display build details along with the built-in service list.

The service list is what coverage aggregates when no services are set in
the config file.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("testkit %s (commit %s, built %s, %s)\n", version, commit, date, runtime.Version())
		cmd.Printf("Default services: %d\n", len(contract.DefaultServices))
		for _, svc := range contract.DefaultServices {
			cmd.Printf("  - %s\n", svc)
		}
	},
}
