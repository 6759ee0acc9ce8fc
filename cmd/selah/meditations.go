package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/journal"
)

var (
	meditationColorFlag  string
	meditationTagFlag    string
	meditationSortFlag   string
	meditationRecentFlag bool
)

var meditationsCmd = &cobra.Command{
	Use:   "meditations",
	Short: "Manage meditations",
	Long:  `Create, list, update, and delete meditations in the journal.`,
}

var createMeditationCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new meditation",
	Long:  `Create a new meditation. Title, verse and summary are required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		verse, _ := cmd.Flags().GetString("verse")
		summary, _ := cmd.Flags().GetString("summary")
		content, _ := cmd.Flags().GetString("content")
		comments, _ := cmd.Flags().GetString("comments")
		color, _ := cmd.Flags().GetString("color")
		date, _ := cmd.Flags().GetString("date")
		timeOfDay, _ := cmd.Flags().GetString("time")
		tagsStr, _ := cmd.Flags().GetString("tags")
		pinned, _ := cmd.Flags().GetBool("pinned")

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		meditation, err := store.AddMeditation(cmd.Context(), journal.Meditation{
			Title:    title,
			Verse:    verse,
			Summary:  summary,
			Content:  content,
			Comments: comments,
			Color:    color,
			Date:     date,
			Time:     journal.TimeOfDay(timeOfDay),
			Tags:     splitCommaList(tagsStr),
			Pinned:   pinned,
		})
		if err != nil {
			return fmt.Errorf("failed to create meditation: %w", err)
		}

		printMeditation(meditation)
		return nil
	},
}

var listMeditationsCmd = &cobra.Command{
	Use:   "list",
	Short: "List meditations",
	Long:  `List meditations, pinned entries first. Supports sorting and exact-match color/tag filters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		meditations := store.Meditations()
		if meditationColorFlag != "" {
			meditations = journal.FilterByColor(meditations, meditationColorFlag)
		}
		if meditationTagFlag != "" {
			meditations = journal.FilterByTag(meditations, meditationTagFlag)
		}
		if meditationRecentFlag {
			meditations = journal.FilterRecent(meditations, time.Now())
		}
		meditations = journal.SortMeditations(meditations, store.IsPinned, journal.SortKey(meditationSortFlag))

		if len(meditations) == 0 {
			fmt.Println("No meditations found.")
			return nil
		}

		for _, m := range meditations {
			markers := " "
			if store.IsPinned(m.ID) {
				markers = "*"
			}
			fmt.Printf("%s %d  %s  %s (%s)\n", markers, m.ID, m.Date, m.Title, m.Verse)
		}
		return nil
	},
}

var getMeditationCmd = &cobra.Command{
	Use:   "get [meditation-id]",
	Short: "Get a meditation by ID",
	Long:  `Retrieve a meditation by its ID.`,
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

		meditation, err := store.GetMeditation(id)
		if errors.Is(err, journal.ErrMeditationNotFound) {
			return fmt.Errorf("meditation not found: %s", args[0])
		}
		if err != nil {
			return err
		}

		printMeditation(meditation)
		return nil
	},
}

var updateMeditationCmd = &cobra.Command{
	Use:   "update [meditation-id]",
	Short: "Update a meditation",
	Long:  `Update the fields of an existing meditation. Unset flags keep their current value.`,
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

		meditation, err := store.GetMeditation(id)
		if errors.Is(err, journal.ErrMeditationNotFound) {
			return fmt.Errorf("meditation not found: %s", args[0])
		}
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			meditation.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("verse") {
			meditation.Verse, _ = cmd.Flags().GetString("verse")
		}
		if cmd.Flags().Changed("summary") {
			meditation.Summary, _ = cmd.Flags().GetString("summary")
		}
		if cmd.Flags().Changed("content") {
			meditation.Content, _ = cmd.Flags().GetString("content")
		}
		if cmd.Flags().Changed("comments") {
			meditation.Comments, _ = cmd.Flags().GetString("comments")
		}
		if cmd.Flags().Changed("color") {
			meditation.Color, _ = cmd.Flags().GetString("color")
		}
		if cmd.Flags().Changed("date") {
			meditation.Date, _ = cmd.Flags().GetString("date")
		}
		if cmd.Flags().Changed("time") {
			raw, _ := cmd.Flags().GetString("time")
			meditation.Time = journal.TimeOfDay(raw)
		}
		if cmd.Flags().Changed("tags") {
			raw, _ := cmd.Flags().GetString("tags")
			meditation.Tags = splitCommaList(raw)
		}
		if cmd.Flags().Changed("pinned") {
			meditation.Pinned, _ = cmd.Flags().GetBool("pinned")
		}

		updated, err := store.UpdateMeditation(cmd.Context(), meditation)
		if err != nil {
			return fmt.Errorf("failed to update meditation: %w", err)
		}

		printMeditation(updated)
		return nil
	},
}

var deleteMeditationCmd = &cobra.Command{
	Use:   "delete [meditation-id]",
	Short: "Delete a meditation",
	Long:  `Delete a meditation by its ID. Favorites or pins referring to it are left dangling and skipped in views.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid meditation ID: %w", err)
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Delete meditation %d? Re-run with --force to confirm.\n", id)
			return nil
		}

		conn, store, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := store.DeleteMeditation(cmd.Context(), id); err != nil {
			if errors.Is(err, journal.ErrMeditationNotFound) {
				return fmt.Errorf("meditation not found: %s", args[0])
			}
			return err
		}

		fmt.Printf("Meditation %d deleted.\n", id)
		return nil
	},
}

func initMeditationsCmd() {
	createMeditationCmd.Flags().String("title", "", "Title of the meditation (required)")
	createMeditationCmd.Flags().String("verse", "", "Scripture reference, e.g. 'Jean 3:16' (required)")
	createMeditationCmd.Flags().String("summary", "", "Short summary of the reflection (required)")
	createMeditationCmd.Flags().String("content", "", "Full reflection text")
	createMeditationCmd.Flags().String("comments", "", "Additional comments")
	createMeditationCmd.Flags().String("color", "", "Palette color (defaults to blue)")
	createMeditationCmd.Flags().String("date", "", "ISO date, defaults to today")
	createMeditationCmd.Flags().String("time", "", "Time of day: morning, noon or evening (defaults to morning)")
	createMeditationCmd.Flags().String("tags", "", "Comma-separated list of tags")
	createMeditationCmd.Flags().Bool("pinned", false, "Pin the meditation to the top of lists")
	createMeditationCmd.MarkFlagRequired("title")
	createMeditationCmd.MarkFlagRequired("verse")
	createMeditationCmd.MarkFlagRequired("summary")

	listMeditationsCmd.Flags().StringVar(&meditationSortFlag, "sort", "date", "Sort key: date, title, verse or color")
	listMeditationsCmd.Flags().StringVar(&meditationColorFlag, "color", "", "Only meditations with this exact color")
	listMeditationsCmd.Flags().StringVar(&meditationTagFlag, "tag", "", "Only meditations carrying this exact tag")
	listMeditationsCmd.Flags().BoolVar(&meditationRecentFlag, "recent", false, "Only meditations from the last 7 days")

	updateMeditationCmd.Flags().String("title", "", "New title")
	updateMeditationCmd.Flags().String("verse", "", "New scripture reference")
	updateMeditationCmd.Flags().String("summary", "", "New summary")
	updateMeditationCmd.Flags().String("content", "", "New reflection text")
	updateMeditationCmd.Flags().String("comments", "", "New comments")
	updateMeditationCmd.Flags().String("color", "", "New palette color")
	updateMeditationCmd.Flags().String("date", "", "New ISO date")
	updateMeditationCmd.Flags().String("time", "", "New time of day")
	updateMeditationCmd.Flags().String("tags", "", "New comma-separated list of tags")
	updateMeditationCmd.Flags().Bool("pinned", false, "Pin or unpin the meditation")

	deleteMeditationCmd.Flags().Bool("force", false, "Skip the confirmation step")

	meditationsCmd.AddCommand(
		createMeditationCmd,
		listMeditationsCmd,
		getMeditationCmd,
		updateMeditationCmd,
		deleteMeditationCmd,
	)
}

func printMeditation(m journal.Meditation) {
	fmt.Println("Meditation Details:")
	fmt.Printf("ID:       %d\n", m.ID)
	fmt.Printf("Title:    %s\n", m.Title)
	fmt.Printf("Verse:    %s\n", m.Verse)
	fmt.Printf("Date:     %s (%s)\n", m.Date, m.Time)
	fmt.Printf("Color:    %s\n", m.Color)
	fmt.Printf("Pinned:   %t\n", m.Pinned)

	if len(m.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(m.Tags, ", "))
	}

	fmt.Printf("Summary:  %s\n", m.Summary)
	if m.Content != "" {
		fmt.Println("\nContent:")
		fmt.Println("------------------------------------------------------------")
		fmt.Println(m.Content)
		fmt.Println("------------------------------------------------------------")
	}
	if m.Comments != "" {
		fmt.Printf("\nComments: %s\n", m.Comments)
	}
}
