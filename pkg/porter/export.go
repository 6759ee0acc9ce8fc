package porter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/selah-app/selah/pkg/journal"
)

// ExportVersion is stamped into every JSON export payload.
const ExportVersion = "1.0"

// Payload is the JSON export shape, also accepted back by the importer.
type Payload struct {
	Meditations      []journal.Meditation `json:"meditations"`
	Sermons          []journal.Sermon     `json:"sermons"`
	ExportDate       string               `json:"exportDate"`
	TotalMeditations int                  `json:"totalMeditations"`
	TotalSermons     int                  `json:"totalSermons"`
	Version          string               `json:"version"`
}

// NewPayload assembles an export payload for the given collections.
func NewPayload(meditations []journal.Meditation, sermons []journal.Sermon, now time.Time) Payload {
	return Payload{
		Meditations:      meditations,
		Sermons:          sermons,
		ExportDate:       now.UTC().Format(time.RFC3339),
		TotalMeditations: len(meditations),
		TotalSermons:     len(sermons),
		Version:          ExportVersion,
	}
}

// ExportJSON serializes the full collections to the downloadable JSON format.
func ExportJSON(meditations []journal.Meditation, sermons []journal.Sermon, now time.Time) ([]byte, error) {
	return json.MarshalIndent(NewPayload(meditations, sermons, now), "", "  ")
}

// JSONFilename is the default name for a JSON export.
func JSONFilename(now time.Time) string {
	return fmt.Sprintf("meditations-export-%s.json", now.Format("2006-01-02"))
}

// csvHeader matches the application's historical meditation CSV layout.
const csvHeader = "Date,Titre,Verset,Résumé,Commentaires,Tags"

// ExportCSV serializes meditations to CSV. Every field is quoted; embedded
// double quotes are escaped by doubling them; tags are joined by ", ".
// One data row per meditation.
func ExportCSV(meditations []journal.Meditation) []byte {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for i, m := range meditations {
		if i > 0 {
			b.WriteByte('\n')
		}
		fields := []string{
			m.Date,
			m.Title,
			m.Verse,
			m.Summary,
			m.Comments,
			strings.Join(m.Tags, ", "),
		}
		for j, field := range fields {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
	}

	return []byte(b.String())
}

// CSVFilename is the default name for a CSV export.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("meditations-%s.csv", now.Format("2006-01-02"))
}

// ExportStats serializes the derived statistics summary.
func ExportStats(meditations []journal.Meditation, sermons []journal.Sermon, now time.Time) ([]byte, error) {
	stats := journal.ComputeStats(meditations, sermons, now.UTC().Format(time.RFC3339))
	return json.MarshalIndent(stats, "", "  ")
}

// StatsFilename is the default name for a statistics export.
func StatsFilename(now time.Time) string {
	return fmt.Sprintf("statistiques-%s.json", now.Format("2006-01-02"))
}
