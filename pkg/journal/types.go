package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrMeditationNotFound = errors.New("meditation not found")
	ErrSermonNotFound     = errors.New("sermon not found")
)

// TimeOfDay is the moment of the day a meditation was held.
type TimeOfDay string

const (
	TimeMorning TimeOfDay = "morning"
	TimeNoon    TimeOfDay = "noon"
	TimeEvening TimeOfDay = "evening"
)

// Colors is the fixed display palette for meditations.
var Colors = []string{"blue", "green", "yellow", "red", "purple", "orange", "pink", "gray"}

// SermonStatus tracks a sermon through its preparation lifecycle.
type SermonStatus string

const (
	StatusPreparing SermonStatus = "preparing"
	StatusReady     SermonStatus = "ready"
	StatusPresented SermonStatus = "presented"
	StatusArchived  SermonStatus = "archived"
)

// Meditation is a dated reflection anchored to a scripture reference.
type Meditation struct {
	ID       int64     `json:"id"`
	Verse    string    `json:"verse"`
	Title    string    `json:"title"`
	Content  string    `json:"content,omitempty"`
	Summary  string    `json:"summary"`
	Comments string    `json:"comments,omitempty"`
	Color    string    `json:"color,omitempty"`
	Pinned   bool      `json:"pinned"`
	Date     string    `json:"date"` // ISO day, e.g. "2025-06-25"
	Time     TimeOfDay `json:"time,omitempty"`
	Tags     []string  `json:"tags,omitempty"`
}

// Sermon is a structured outline optionally referencing meditations by id.
// References are weak: a deleted meditation id simply fails to resolve.
type Sermon struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Theme        string       `json:"theme,omitempty"`
	Date         string       `json:"date"`
	Status       SermonStatus `json:"status"`
	Outline      string       `json:"outline,omitempty"`
	References   []int64      `json:"references,omitempty"`
	Introduction string       `json:"introduction,omitempty"`
	MainPoints   []string     `json:"mainPoints,omitempty"`
	Conclusion   string       `json:"conclusion,omitempty"`
	Notes        string       `json:"notes,omitempty"`
	CreatedAt    string       `json:"createdAt,omitempty"`
	UpdatedAt    string       `json:"updatedAt,omitempty"`
}

// ValidationError reports the required fields a record is missing. Validation
// happens at the edit and import boundaries, not in storage.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the fields required to save a meditation.
func (m Meditation) Validate() error {
	var missing []string
	if strings.TrimSpace(m.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(m.Verse) == "" {
		missing = append(missing, "verse")
	}
	if strings.TrimSpace(m.Summary) == "" {
		missing = append(missing, "summary")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Validate checks the fields required to save a sermon.
func (s Sermon) Validate() error {
	var missing []string
	if strings.TrimSpace(s.Title) == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// ResolveReferences maps a sermon's meditation references to the meditations
// that still exist. Dangling ids are skipped silently.
func (s Sermon) ResolveReferences(meditations []Meditation) []Meditation {
	byID := make(map[int64]Meditation, len(meditations))
	for _, m := range meditations {
		byID[m.ID] = m
	}

	var resolved []Meditation
	for _, id := range s.References {
		if m, ok := byID[id]; ok {
			resolved = append(resolved, m)
		}
	}
	return resolved
}

// isoDay formats t as the ISO day string used throughout the data model.
func isoDay(t time.Time) string {
	return t.Format("2006-01-02")
}
