package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/journal"
)

var sermonStatusFlag string

var sermonsCmd = &cobra.Command{
	Use:   "sermons",
	Short: "Manage sermons",
	Long:  `Create, list, update, and delete sermon outlines. Sermons can reference meditations by ID.`,
}

var createSermonCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new sermon",
	Long:  `Create a new sermon outline. Only the title is required; status defaults to preparing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		theme, _ := cmd.Flags().GetString("theme")
		date, _ := cmd.Flags().GetString("date")
		status, _ := cmd.Flags().GetString("status")
		outline, _ := cmd.Flags().GetString("outline")
		referencesStr, _ := cmd.Flags().GetString("references")
		introduction, _ := cmd.Flags().GetString("introduction")
		mainPointsStr, _ := cmd.Flags().GetString("main-points")
		conclusion, _ := cmd.Flags().GetString("conclusion")
		notes, _ := cmd.Flags().GetString("notes")

		references, err := parseReferenceIDs(referencesStr)
		if err != nil {
			return err
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		sermon, err := store.AddSermon(cmd.Context(), journal.Sermon{
			Title:        title,
			Theme:        theme,
			Date:         date,
			Status:       journal.SermonStatus(status),
			Outline:      outline,
			References:   references,
			Introduction: introduction,
			MainPoints:   splitCommaList(mainPointsStr),
			Conclusion:   conclusion,
			Notes:        notes,
		})
		if err != nil {
			return fmt.Errorf("failed to create sermon: %w", err)
		}

		printSermon(sermon, store.Meditations())
		return nil
	},
}

var listSermonsCmd = &cobra.Command{
	Use:   "list",
	Short: "List sermons",
	Long:  `List sermons, optionally filtered by status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		sermons := store.Sermons()
		if len(sermons) == 0 {
			fmt.Println("No sermons found.")
			return nil
		}

		for _, sm := range sermons {
			if sermonStatusFlag != "" && string(sm.Status) != sermonStatusFlag {
				continue
			}
			fmt.Printf("%d  %s  [%s] %s\n", sm.ID, sm.Date, sm.Status, sm.Title)
		}
		return nil
	},
}

var getSermonCmd = &cobra.Command{
	Use:   "get [sermon-id]",
	Short: "Get a sermon by ID",
	Long:  `Retrieve a sermon by its ID, resolving referenced meditations.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sermon ID: %w", err)
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		sermon, err := store.GetSermon(id)
		if errors.Is(err, journal.ErrSermonNotFound) {
			return fmt.Errorf("sermon not found: %s", args[0])
		}
		if err != nil {
			return err
		}

		printSermon(sermon, store.Meditations())
		return nil
	},
}

var updateSermonCmd = &cobra.Command{
	Use:   "update [sermon-id]",
	Short: "Update a sermon",
	Long:  `Update the fields of an existing sermon. Unset flags keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sermon ID: %w", err)
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		sermon, err := store.GetSermon(id)
		if errors.Is(err, journal.ErrSermonNotFound) {
			return fmt.Errorf("sermon not found: %s", args[0])
		}
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			sermon.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("theme") {
			sermon.Theme, _ = cmd.Flags().GetString("theme")
		}
		if cmd.Flags().Changed("date") {
			sermon.Date, _ = cmd.Flags().GetString("date")
		}
		if cmd.Flags().Changed("status") {
			raw, _ := cmd.Flags().GetString("status")
			sermon.Status = journal.SermonStatus(raw)
		}
		if cmd.Flags().Changed("outline") {
			sermon.Outline, _ = cmd.Flags().GetString("outline")
		}
		if cmd.Flags().Changed("references") {
			raw, _ := cmd.Flags().GetString("references")
			references, err := parseReferenceIDs(raw)
			if err != nil {
				return err
			}
			sermon.References = references
		}
		if cmd.Flags().Changed("introduction") {
			sermon.Introduction, _ = cmd.Flags().GetString("introduction")
		}
		if cmd.Flags().Changed("main-points") {
			raw, _ := cmd.Flags().GetString("main-points")
			sermon.MainPoints = splitCommaList(raw)
		}
		if cmd.Flags().Changed("conclusion") {
			sermon.Conclusion, _ = cmd.Flags().GetString("conclusion")
		}
		if cmd.Flags().Changed("notes") {
			sermon.Notes, _ = cmd.Flags().GetString("notes")
		}

		updated, err := store.UpdateSermon(cmd.Context(), sermon)
		if err != nil {
			return fmt.Errorf("failed to update sermon: %w", err)
		}

		printSermon(updated, store.Meditations())
		return nil
	},
}

var deleteSermonCmd = &cobra.Command{
	Use:   "delete [sermon-id]",
	Short: "Delete a sermon",
	Long:  `Delete a sermon by its ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid sermon ID: %w", err)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Delete sermon %d? Re-run with --force to confirm.\n", id)
			return nil
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := store.DeleteSermon(cmd.Context(), id); err != nil {
			if errors.Is(err, journal.ErrSermonNotFound) {
				return fmt.Errorf("sermon not found: %s", args[0])
			}
			return err
		}

		fmt.Printf("Sermon %d deleted.\n", id)
		return nil
	},
}

// parseReferenceIDs parses a comma-separated list of meditation IDs.
func parseReferenceIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, item := range splitCommaList(raw) {
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid meditation reference '%s': %w", item, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func initSermonsCmd() {
	createSermonCmd.Flags().String("title", "", "Title of the sermon (required)")
	createSermonCmd.Flags().String("theme", "", "Theme of the sermon")
	createSermonCmd.Flags().String("date", "", "ISO date, defaults to today")
	createSermonCmd.Flags().String("status", "", "Status: preparing, ready, presented or archived (defaults to preparing)")
	createSermonCmd.Flags().String("outline", "", "Outline text")
	createSermonCmd.Flags().String("references", "", "Comma-separated meditation IDs")
	createSermonCmd.Flags().String("introduction", "", "Introduction text")
	createSermonCmd.Flags().String("main-points", "", "Comma-separated list of main points")
	createSermonCmd.Flags().String("conclusion", "", "Conclusion text")
	createSermonCmd.Flags().String("notes", "", "Free-form notes")
	createSermonCmd.MarkFlagRequired("title")

	listSermonsCmd.Flags().StringVar(&sermonStatusFlag, "status", "", "Only sermons with this status")

	updateSermonCmd.Flags().String("title", "", "New title")
	updateSermonCmd.Flags().String("theme", "", "New theme")
	updateSermonCmd.Flags().String("date", "", "New ISO date")
	updateSermonCmd.Flags().String("status", "", "New status")
	updateSermonCmd.Flags().String("outline", "", "New outline text")
	updateSermonCmd.Flags().String("references", "", "New comma-separated meditation IDs")
	updateSermonCmd.Flags().String("introduction", "", "New introduction text")
	updateSermonCmd.Flags().String("main-points", "", "New comma-separated list of main points")
	updateSermonCmd.Flags().String("conclusion", "", "New conclusion text")
	updateSermonCmd.Flags().String("notes", "", "New free-form notes")

	deleteSermonCmd.Flags().Bool("force", false, "Skip the confirmation step")

	sermonsCmd.AddCommand(
		createSermonCmd,
		listSermonsCmd,
		getSermonCmd,
		updateSermonCmd,
		deleteSermonCmd,
	)
}

func printSermon(sm journal.Sermon, meditations []journal.Meditation) {
	fmt.Println("Sermon Details:")
	fmt.Printf("ID:      %d\n", sm.ID)
	fmt.Printf("Title:   %s\n", sm.Title)
	fmt.Printf("Theme:   %s\n", sm.Theme)
	fmt.Printf("Date:    %s\n", sm.Date)
	fmt.Printf("Status:  %s\n", sm.Status)

	if len(sm.References) > 0 {
		resolved := sm.ResolveReferences(meditations)
		titles := make([]string, 0, len(resolved))
		for _, m := range resolved {
			titles = append(titles, fmt.Sprintf("%s (%d)", m.Title, m.ID))
		}
		line := "-"
		if len(titles) > 0 {
			line = strings.Join(titles, ", ")
		}
		fmt.Printf("References: %s\n", line)
	}

	if sm.Outline != "" {
		fmt.Println("\nOutline:")
		fmt.Println("------------------------------------------------------------")
		fmt.Println(sm.Outline)
		fmt.Println("------------------------------------------------------------")
	}
	if sm.Introduction != "" {
		fmt.Printf("\nIntroduction: %s\n", sm.Introduction)
	}
	if len(sm.MainPoints) > 0 {
		fmt.Println("Main points:")
		for i, point := range sm.MainPoints {
			fmt.Printf("  %d. %s\n", i+1, point)
		}
	}
	if sm.Conclusion != "" {
		fmt.Printf("Conclusion: %s\n", sm.Conclusion)
	}
	if sm.Notes != "" {
		fmt.Printf("Notes: %s\n", sm.Notes)
	}

	fmt.Printf("\nCreated At: %s\n", sm.CreatedAt)
	fmt.Printf("Updated At: %s\n", sm.UpdatedAt)
}
