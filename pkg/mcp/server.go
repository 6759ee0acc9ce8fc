package mcp

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	selahpkg "github.com/selah-app/selah/pkg"
	pkgdb "github.com/selah-app/selah/pkg/db"
	"github.com/selah-app/selah/pkg/journal"
	"github.com/selah-app/selah/pkg/utils"
)

type SelahMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	store     *journal.Store
	DbPath    string
}

// NewSelahMCPServer spins up an MCP server backed by the SQLite database at dbPath.
func NewSelahMCPServer(dbPath string) (*SelahMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create base MCP server.
	s := server.NewMCPServer(
		"Selah MCP Server",
		selahpkg.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	// Open database (WAL + FULL).
	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, true, "FULL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Automatically initialize or migrate the database schema.
	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", resolvedPath, err)
	}

	store, err := journal.Open(context.Background(), dbConn)
	if err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to load journal collections: %w", err)
	}

	return &SelahMCPServer{
		mcpServer: s,
		db:        dbConn,
		store:     store,
		DbPath:    resolvedPath,
	}, nil
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *SelahMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *SelahMCPServer) DB() *sql.DB {
	return s.db
}

// Store returns the loaded journal collections.
func (s *SelahMCPServer) Store() *journal.Store {
	return s.store
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *SelahMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// RegisterAllTools wires every journal tool onto the server.
func (s *SelahMCPServer) RegisterAllTools() {
	RegisterPingTool(s.mcpServer)
	RegisterListMeditationsTool(s.mcpServer, s.store)
	RegisterCreateMeditationTool(s.mcpServer, s.store)
	RegisterSearchTool(s.mcpServer, s.store)
	RegisterExportTool(s.mcpServer, s.store)
}

// Close cleans up allocated resources.
func (s *SelahMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
