package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/whale4rain/lexRain/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server on stdio",
	Long: `Serve read-only vocabulary tools over the Model Context Protocol.
Agent clients can look words up, search, list due reviews and read stats.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return fmt.Errorf("initialize client: %w", err)
	}
	defer client.Close()

	server := mcp.NewServer(client)
	return server.Run()
}
