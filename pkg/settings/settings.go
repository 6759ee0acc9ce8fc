// Package settings persists the small application preferences that live
// alongside the journal collections: screen brightness, theme, notification
// opt-in, the app password gate, and per-day challenge and mood entries.
// Every setting is one key in the key-value store.
package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/selah-app/selah/pkg/db"
)

const (
	BrightnessKey    = "appBrightness"
	ThemeKey         = "themeSettings"
	NotificationsKey = "notificationsEnabled"
	PasswordKey      = "app_password"
)

// DefaultBrightness applies until the user adjusts the slider.
const DefaultBrightness = 100

// DefaultPassword is the password in effect before the user sets one.
const DefaultPassword = "meditation"

// ErrWrongPassword is returned when a password check fails.
var ErrWrongPassword = errors.New("incorrect password")

// ErrEmptyPassword is returned when changing the password to an empty string.
var ErrEmptyPassword = errors.New("password must not be empty")

// ErrInvalidBrightness is returned for brightness values outside 0-100.
var ErrInvalidBrightness = errors.New("brightness must be between 0 and 100")

// Theme holds the persisted appearance preferences. Stored as JSON under
// the themeSettings key.
type Theme struct {
	DarkMode    bool   `json:"darkMode"`
	AccentColor string `json:"accentColor"`
	FontSize    string `json:"fontSize"`
}

// DefaultTheme is the appearance before any customization.
func DefaultTheme() Theme {
	return Theme{DarkMode: false, AccentColor: "blue", FontSize: "medium"}
}

// GetBrightness returns the stored brightness percentage, or
// DefaultBrightness when none is stored.
func GetBrightness(ctx context.Context, conn *sql.DB) (int, error) {
	raw, found, err := db.Get(ctx, conn, BrightnessKey)
	if err != nil {
		return 0, err
	}
	if !found {
		return DefaultBrightness, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("stored brightness '%s' is not a number: %w", raw, err)
	}
	return value, nil
}

// SetBrightness stores a brightness percentage between 0 and 100.
func SetBrightness(ctx context.Context, conn *sql.DB, value int) error {
	if value < 0 || value > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidBrightness, value)
	}
	return db.Put(ctx, conn, BrightnessKey, strconv.Itoa(value))
}

// GetTheme returns the stored theme, or DefaultTheme when none is stored.
func GetTheme(ctx context.Context, conn *sql.DB) (Theme, error) {
	raw, found, err := db.Get(ctx, conn, ThemeKey)
	if err != nil {
		return Theme{}, err
	}
	if !found {
		return DefaultTheme(), nil
	}
	var theme Theme
	if err := json.Unmarshal([]byte(raw), &theme); err != nil {
		return Theme{}, fmt.Errorf("stored theme settings are not valid JSON: %w", err)
	}
	return theme, nil
}

// SetTheme stores the theme as JSON.
func SetTheme(ctx context.Context, conn *sql.DB, theme Theme) error {
	data, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("failed to serialize theme settings: %w", err)
	}
	return db.Put(ctx, conn, ThemeKey, string(data))
}

// NotificationsEnabled reports the stored opt-in, defaulting to false.
func NotificationsEnabled(ctx context.Context, conn *sql.DB) (bool, error) {
	raw, found, err := db.Get(ctx, conn, NotificationsKey)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return raw == "true", nil
}

// SetNotificationsEnabled stores the notification opt-in.
func SetNotificationsEnabled(ctx context.Context, conn *sql.DB, enabled bool) error {
	return db.Put(ctx, conn, NotificationsKey, strconv.FormatBool(enabled))
}

// VerifyPassword checks candidate against the stored app password. Before
// the user sets one, DefaultPassword is in effect.
func VerifyPassword(ctx context.Context, conn *sql.DB, candidate string) error {
	stored, found, err := db.Get(ctx, conn, PasswordKey)
	if err != nil {
		return err
	}
	if !found {
		stored = DefaultPassword
	}
	if candidate != stored {
		return ErrWrongPassword
	}
	return nil
}

// ChangePassword replaces the app password after verifying the current one.
func ChangePassword(ctx context.Context, conn *sql.DB, current, next string) error {
	if err := VerifyPassword(ctx, conn, current); err != nil {
		return err
	}
	if next == "" {
		return ErrEmptyPassword
	}
	return db.Put(ctx, conn, PasswordKey, next)
}

// ChallengeKey returns the key-value store key for one day's challenge entry.
func ChallengeKey(day string) string { return "challenge_" + day }

// MoodKey returns the key-value store key for one day's mood entry.
func MoodKey(day string) string { return "mood_" + day }

// MarkChallengeDone records the daily challenge as completed for day.
func MarkChallengeDone(ctx context.Context, conn *sql.DB, day string) error {
	return db.Put(ctx, conn, ChallengeKey(day), "done")
}

// ChallengeDone reports whether the daily challenge was completed for day.
func ChallengeDone(ctx context.Context, conn *sql.DB, day string) (bool, error) {
	raw, found, err := db.Get(ctx, conn, ChallengeKey(day))
	if err != nil {
		return false, err
	}
	return found && raw == "done", nil
}

// SetMood records the user's mood entry for day.
func SetMood(ctx context.Context, conn *sql.DB, day, mood string) error {
	return db.Put(ctx, conn, MoodKey(day), mood)
}

// GetMood returns the mood entry for day, with found=false when none exists.
func GetMood(ctx context.Context, conn *sql.DB, day string) (string, bool, error) {
	return db.Get(ctx, conn, MoodKey(day))
}
