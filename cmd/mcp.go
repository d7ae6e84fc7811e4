package cmd

import (
	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/core/synth"
	"github.com/castinsight/castdash/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the castdash MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents read the dashboard panels.

Logs go to stderr so stdout stays reserved for the protocol.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		dash := core.NewDashboard(store, synth.NewRandom(), cfg)
		return mcp.StartMCPServer(rootCtx, dash, version)
	},
}
