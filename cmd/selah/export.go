package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/porter"
)

var exportOutFlag string

var exportCmd = &cobra.Command{
	Use:   "export json|csv|stats",
	Short: "Export the journal to a file",
	Long: `Export the journal collections. Formats:

  json   full payload with meditations and sermons
  csv    meditations only, one quoted row per entry
  stats  derived statistics (counts by month, top tags)

The file is written into the output directory with a date-stamped name.`,
	ValidArgs: []string{"json", "csv", "stats"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		now := time.Now()
		var data []byte
		var filename string

		switch args[0] {
		case "json":
			data, err = porter.ExportJSON(store.Meditations(), store.Sermons(), now)
			filename = porter.JSONFilename(now)
		case "csv":
			data = porter.ExportCSV(store.Meditations())
			filename = porter.CSVFilename(now)
		case "stats":
			data, err = porter.ExportStats(store.Meditations(), store.Sermons(), now)
			filename = porter.StatsFilename(now)
		}
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		target := filepath.Join(exportOutFlag, filename)
		if err := os.WriteFile(target, data, 0644); err != nil {
			return fmt.Errorf("failed to write export file: %w", err)
		}

		fmt.Printf("Exported %d meditations and %d sermons to %s\n",
			len(store.Meditations()), len(store.Sermons()), target)
		return nil
	},
}

func initExportCmd() {
	exportCmd.Flags().StringVar(&exportOutFlag, "out", ".", "Directory to write the export file into")
}
