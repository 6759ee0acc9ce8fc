package main

import (
	"context"
	"database/sql"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/selah-app/selah/pkg/config"
	pkgdb "github.com/selah-app/selah/pkg/db"
	"github.com/selah-app/selah/pkg/journal"
	"github.com/selah-app/selah/pkg/utils"
)

// newLogger builds the stderr console logger shared by all commands.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// openDB resolves the database path (flag, then environment, then the
// system default), opens the connection and migrates the schema.
func openDB() (*sql.DB, error) {
	path := dbPath
	if path == "" {
		path = config.LoadConfig().DBPath
	}

	resolvedPath, err := utils.ResolveAndEnsureDBPath(path)
	if err != nil {
		return nil, err
	}

	conn, err := pkgdb.OpenDBConnection(resolvedPath, walMode, syncMode)
	if err != nil {
		return nil, err
	}

	if err := pkgdb.UpgradeDB(conn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// openStore opens the database and loads the journal collections.
func openStore(ctx context.Context) (*sql.DB, *journal.Store, error) {
	conn, err := openDB()
	if err != nil {
		return nil, nil, err
	}

	store, err := journal.Open(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, store, nil
}

// splitCommaList turns "a, b,c" into ["a" "b" "c"], dropping empties.
func splitCommaList(raw string) []string {
	if raw == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
