package cmd

import (
	"github.com/gamelens/gamelens/internal/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gamelens/gamelens/internal/contract"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the GameLens MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze game telemetry datasets via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// The MCP server has no dataset argument; tools supply the path
		// per request, so only the base config is resolved here.
		if err := loadConfigFile(); err != nil {
			return err
		}
		if err := viper.Unmarshal(input); err != nil {
			return err
		}
		input.InputPathStr = "-" // placeholder, overwritten per tool call
		return contract.ProcessAndValidate(cfg, input)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
