package journal

// Stats is the derived statistics summary offered alongside exports.
type Stats struct {
	TotalMeditations   int            `json:"totalMeditations"`
	TotalSermons       int            `json:"totalSermons"`
	MeditationsByMonth map[string]int `json:"meditationsByMonth"`
	TopTags            map[string]int `json:"topTags"`
	ExportDate         string         `json:"exportDate"`
}

// ComputeStats counts meditations by the month prefix of their date and tags
// by frequency. A meditation without a usable date counts under "Inconnu".
func ComputeStats(meditations []Meditation, sermons []Sermon, exportDate string) Stats {
	stats := Stats{
		TotalMeditations:   len(meditations),
		TotalSermons:       len(sermons),
		MeditationsByMonth: make(map[string]int),
		TopTags:            make(map[string]int),
		ExportDate:         exportDate,
	}

	for _, m := range meditations {
		month := "Inconnu"
		if len(m.Date) >= 7 {
			month = m.Date[:7]
		}
		stats.MeditationsByMonth[month]++

		for _, tag := range m.Tags {
			stats.TopTags[tag]++
		}
	}

	return stats
}
