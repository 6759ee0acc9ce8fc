package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/porter"
)

var importConfirmFlag bool

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import meditations and sermons from a JSON file",
	Long: `Parse a JSON export (full payload or a bare array of meditations), report
what it contains, and append it to the journal when --confirm is set.
Without --confirm only the preview is shown and nothing is modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		preview, err := porter.PreviewImport(raw)
		if err != nil {
			return err
		}

		fmt.Printf("Import preview: %d meditations, %d sermons\n",
			len(preview.Meditations), len(preview.Sermons))
		for _, report := range preview.Errors {
			fmt.Printf("  rejected: %s\n", report)
		}

		if !importConfirmFlag {
			fmt.Println("Re-run with --confirm to append these records to the journal.")
			return nil
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := porter.Apply(cmd.Context(), store, preview); err != nil {
			return fmt.Errorf("failed to apply import: %w", err)
		}

		fmt.Printf("Imported %d meditations and %d sermons.\n",
			len(preview.Meditations), len(preview.Sermons))
		return nil
	},
}

func initImportCmd() {
	importCmd.Flags().BoolVar(&importConfirmFlag, "confirm", false, "Apply the import instead of only previewing it")
}
