package journal

import "testing"

func TestComputeStats(t *testing.T) {
	meditations := []Meditation{
		{ID: 1, Date: "2025-06-25", Tags: []string{"amour", "grâce"}},
		{ID: 2, Date: "2025-06-24", Tags: []string{"amour"}},
		{ID: 3, Date: "2025-05-01"},
		{ID: 4}, // no date
	}
	sermons := []Sermon{{ID: 10}}

	stats := ComputeStats(meditations, sermons, "2025-07-01T00:00:00Z")

	if stats.TotalMeditations != 4 || stats.TotalSermons != 1 {
		t.Errorf("Totals mismatch: %+v", stats)
	}
	if stats.MeditationsByMonth["2025-06"] != 2 {
		t.Errorf("Expected 2 meditations in 2025-06, got %d", stats.MeditationsByMonth["2025-06"])
	}
	if stats.MeditationsByMonth["2025-05"] != 1 {
		t.Errorf("Expected 1 meditation in 2025-05, got %d", stats.MeditationsByMonth["2025-05"])
	}
	if stats.MeditationsByMonth["Inconnu"] != 1 {
		t.Errorf("Expected undated meditation under 'Inconnu', got %d", stats.MeditationsByMonth["Inconnu"])
	}
	if stats.TopTags["amour"] != 2 || stats.TopTags["grâce"] != 1 {
		t.Errorf("Tag frequency mismatch: %v", stats.TopTags)
	}
	if stats.ExportDate != "2025-07-01T00:00:00Z" {
		t.Errorf("ExportDate not carried through: %q", stats.ExportDate)
	}
}
