package cmd

import (
	"github.com/chris-regnier/moodlog/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes journal tools
over stdio transport. This allows MCP clients like Claude Desktop to read your
patterns and record check-ins.

Available tools:
  - get_patterns: Weekday energy, mood counts, time of day, insights and summary
  - get_day: The first check-in of a calendar day
  - list_checkins: Check-ins newest first, optionally within a date range
  - create_checkin: Record a check-in (validation errors are reported as tool errors)

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "moodlog": {
        "command": "/path/to/moodlog",
        "args": ["mcp-serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// Storage is already initialized in PersistentPreRunE
	if session == nil {
		return cmd.Help()
	}

	server := mcptools.CreateMCPServer(session, mcptools.Options{
		DataDir: appConfig.DataDir,
		Log:     logger,
	})

	// The logger writes to stderr; stdout is reserved for the MCP protocol.
	logger.Info("starting MCP server",
		zap.String("transport", "stdio"),
		zap.String("backend", appConfig.Storage),
		zap.String("data_dir", appConfig.DataDir),
	)

	// This blocks until the transport is closed
	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
