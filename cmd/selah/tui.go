package main

import (
	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show terminal UI",
	Long:  `Display an interactive terminal UI for browsing meditations with live search and favorite/pin toggles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		return tui.ShowTUI(store)
	},
}
