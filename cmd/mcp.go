package cmd

import (
	"github.com/dreamscape/testkit/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the testkit MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents generate reports, classify services and order tests.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Tool handlers suppress progress output since stdio carries the protocol
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
