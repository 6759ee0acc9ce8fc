package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/journal"
)

var searchScopeFlag string

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search meditations and sermons",
	Long: `Case-insensitive substring search across meditations (title, verse, content,
summary, comments, tags) and sermons (title, theme, outline). Results keep
collection order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		results := journal.Search(args[0], store.Meditations(), store.Sermons(), journal.Scope(searchScopeFlag))
		if results.Total() == 0 {
			fmt.Printf("No results for '%s'.\n", args[0])
			return nil
		}

		if len(results.Meditations) > 0 {
			fmt.Printf("Meditations (%d):\n", len(results.Meditations))
			for _, m := range results.Meditations {
				fmt.Printf("  %d  %s  %s (%s)\n", m.ID, m.Date, m.Title, m.Verse)
			}
		}
		if len(results.Sermons) > 0 {
			fmt.Printf("Sermons (%d):\n", len(results.Sermons))
			for _, sm := range results.Sermons {
				fmt.Printf("  %d  %s  [%s] %s\n", sm.ID, sm.Date, sm.Status, sm.Title)
			}
		}
		return nil
	},
}

func initSearchCmd() {
	searchCmd.Flags().StringVar(&searchScopeFlag, "scope", "all", "Search scope: all, meditations or sermons")
}
