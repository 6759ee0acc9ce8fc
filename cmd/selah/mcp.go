package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Selah MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes the journal
as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\selah\selah.db
- macOS: ~/Library/Application Support/selah/selah.db
- Linux: ~/.local/share/selah/selah.db

Example:
  selah mcp
  selah mcp --db selah.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewSelahMCPServer(dbPath)
		if err != nil {
			return err
		}
		defer srv.Close()

		srv.RegisterAllTools()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Selah MCP server started. DB: %s\n", srv.DbPath)
		fmt.Fprintln(os.Stderr, "Available tools: ping, list_meditations, create_meditation, search, export")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
