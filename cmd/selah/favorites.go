package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite meditations",
	Long:  `Toggle and list the set of favorite meditations. A favorite surviving its meditation is skipped in listings.`,
}

var toggleFavoriteCmd = &cobra.Command{
	Use:   "toggle [meditation-id]",
	Short: "Toggle a meditation's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid meditation ID: %w", err)
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		favorite, err := store.ToggleFavorite(cmd.Context(), id)
		if err != nil {
			return err
		}

		if favorite {
			fmt.Printf("Meditation %d added to favorites.\n", id)
		} else {
			fmt.Printf("Meditation %d removed from favorites.\n", id)
		}
		return nil
	},
}

var listFavoritesCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite meditations",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		favorites := store.FavoriteMeditations()
		if len(favorites) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}

		for _, m := range favorites {
			fmt.Printf("%d  %s  %s (%s)\n", m.ID, m.Date, m.Title, m.Verse)
		}
		return nil
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage pinned meditations",
	Long:  `Toggle and list the set of pinned meditations. Pinned entries sort to the top of every list.`,
}

var togglePinCmd = &cobra.Command{
	Use:   "toggle [meditation-id]",
	Short: "Toggle a meditation's pinned flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid meditation ID: %w", err)
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		pinned, err := store.TogglePin(cmd.Context(), id)
		if err != nil {
			return err
		}

		if pinned {
			fmt.Printf("Meditation %d pinned.\n", id)
		} else {
			fmt.Printf("Meditation %d unpinned.\n", id)
		}
		return nil
	},
}

var listPinnedCmd = &cobra.Command{
	Use:   "list",
	Short: "List pinned meditations",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		var count int
		for _, m := range store.Meditations() {
			if store.IsPinned(m.ID) {
				fmt.Printf("%d  %s  %s (%s)\n", m.ID, m.Date, m.Title, m.Verse)
				count++
			}
		}
		if count == 0 {
			fmt.Println("No pinned meditations.")
		}
		return nil
	},
}

func initFavoritesCmd() {
	favoritesCmd.AddCommand(toggleFavoriteCmd, listFavoritesCmd)
	pinCmd.AddCommand(togglePinCmd, listPinnedCmd)
}
