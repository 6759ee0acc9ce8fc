package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/selah-app/selah/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long:  `Read and change the persisted preferences: brightness, theme, notifications, the app password, daily challenge and mood entries.`,
}

var brightnessCmd = &cobra.Command{
	Use:   "brightness [value]",
	Short: "Show or set the screen brightness (0-100)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		if len(args) == 0 {
			value, err := settings.GetBrightness(cmd.Context(), conn)
			if err != nil {
				return err
			}
			fmt.Printf("Brightness: %d\n", value)
			return nil
		}

		value, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid brightness value: %w", err)
		}
		if err := settings.SetBrightness(cmd.Context(), conn, value); err != nil {
			return err
		}
		fmt.Printf("Brightness set to %d.\n", value)
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		theme, err := settings.GetTheme(cmd.Context(), conn)
		if err != nil {
			return err
		}

		changed := false
		if cmd.Flags().Changed("dark") {
			theme.DarkMode, _ = cmd.Flags().GetBool("dark")
			changed = true
		}
		if cmd.Flags().Changed("accent") {
			theme.AccentColor, _ = cmd.Flags().GetString("accent")
			changed = true
		}
		if cmd.Flags().Changed("font-size") {
			theme.FontSize, _ = cmd.Flags().GetString("font-size")
			changed = true
		}

		if changed {
			if err := settings.SetTheme(cmd.Context(), conn, theme); err != nil {
				return err
			}
		}

		fmt.Printf("Dark mode:    %t\n", theme.DarkMode)
		fmt.Printf("Accent color: %s\n", theme.AccentColor)
		fmt.Printf("Font size:    %s\n", theme.FontSize)
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications on|off",
	Short: "Show or change the notification opt-in",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		if len(args) == 0 {
			enabled, err := settings.NotificationsEnabled(cmd.Context(), conn)
			if err != nil {
				return err
			}
			fmt.Printf("Notifications enabled: %t\n", enabled)
			return nil
		}

		switch args[0] {
		case "on", "off":
		default:
			return fmt.Errorf("expected 'on' or 'off', got '%s'", args[0])
		}

		if err := settings.SetNotificationsEnabled(cmd.Context(), conn, args[0] == "on"); err != nil {
			return err
		}
		fmt.Printf("Notifications turned %s.\n", args[0])
		return nil
	},
}

var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the app password",
	Long:  `Change the app password. The current password must be supplied; before any change the default password applies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		current, _ := cmd.Flags().GetString("current")
		next, _ := cmd.Flags().GetString("new")

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := settings.ChangePassword(cmd.Context(), conn, current, next); err != nil {
			return err
		}
		fmt.Println("Password changed.")
		return nil
	},
}

var moodCmd = &cobra.Command{
	Use:   "mood [value]",
	Short: "Show or record today's mood",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetString("date")
		if day == "" {
			day = time.Now().Format("2006-01-02")
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		if len(args) == 0 {
			mood, found, err := settings.GetMood(cmd.Context(), conn, day)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("No mood recorded for %s.\n", day)
				return nil
			}
			fmt.Printf("Mood for %s: %s\n", day, mood)
			return nil
		}

		if err := settings.SetMood(cmd.Context(), conn, day, args[0]); err != nil {
			return err
		}
		fmt.Printf("Mood recorded for %s.\n", day)
		return nil
	},
}

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Show or complete today's challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, _ := cmd.Flags().GetString("date")
		if day == "" {
			day = time.Now().Format("2006-01-02")
		}
		markDone, _ := cmd.Flags().GetBool("done")

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		if markDone {
			if err := settings.MarkChallengeDone(cmd.Context(), conn, day); err != nil {
				return err
			}
			fmt.Printf("Challenge for %s marked as done.\n", day)
			return nil
		}

		done, err := settings.ChallengeDone(cmd.Context(), conn, day)
		if err != nil {
			return err
		}
		fmt.Printf("Challenge for %s done: %t\n", day, done)
		return nil
	},
}

func initSettingsCmd() {
	themeCmd.Flags().Bool("dark", false, "Enable or disable dark mode")
	themeCmd.Flags().String("accent", "", "Accent color")
	themeCmd.Flags().String("font-size", "", "Font size: small, medium or large")

	passwordCmd.Flags().String("current", "", "Current password (required)")
	passwordCmd.Flags().String("new", "", "New password (required)")
	passwordCmd.MarkFlagRequired("current")
	passwordCmd.MarkFlagRequired("new")

	moodCmd.Flags().String("date", "", "ISO date, defaults to today")
	challengeCmd.Flags().String("date", "", "ISO date, defaults to today")
	challengeCmd.Flags().Bool("done", false, "Mark the challenge as completed")

	settingsCmd.AddCommand(brightnessCmd, themeCmd, notificationsCmd, passwordCmd, moodCmd, challengeCmd)
}
