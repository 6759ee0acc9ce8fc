package journal

// SampleMeditations is the first-run dataset loaded when the store holds no
// meditations yet. The texts match the application's built-in examples.
func SampleMeditations() []Meditation {
	return []Meditation{
		{
			ID:      1,
			Verse:   "Jean 3:16",
			Title:   "L'amour de Dieu",
			Content: "Car Dieu a tant aimé le monde qu'il a donné son Fils unique...",
			Summary: "Méditation sur l'amour inconditionnel de Dieu manifesté par le sacrifice de Jésus. Cette vérité fondamentale nous rappelle que notre salut ne dépend pas de nos œuvres mais de la grâce divine.",
			Color:   "blue",
			Pinned:  true,
			Date:    "2025-06-25",
			Time:    TimeMorning,
			Tags:    []string{"amour", "salut", "grâce"},
		},
		{
			ID:      2,
			Verse:   "Psaume 23:1",
			Title:   "Le Bon Berger",
			Content: "L'Éternel est mon berger: je ne manquerai de rien.",
			Summary: "Méditation sur la provision divine et la sécurité en Dieu. Le Seigneur pourvoit à tous nos besoins selon sa richesse.",
			Color:   "green",
			Pinned:  false,
			Date:    "2025-06-24",
			Time:    TimeEvening,
			Tags:    []string{"provision", "confiance", "protection"},
		},
	}
}

// SampleSermons is the first-run dataset loaded when the store holds no sermons.
func SampleSermons() []Sermon {
	return []Sermon{
		{
			ID:         1,
			Title:      "La grâce qui sauve",
			Theme:      "Salut par la foi",
			Date:       "2025-06-29",
			Status:     StatusPreparing,
			Outline:    "1. La condition de l'homme\n2. Le don de Dieu\n3. La réponse de la foi",
			References: []int64{1},
			MainPoints: []string{"La condition de l'homme", "Le don de Dieu", "La réponse de la foi"},
			CreatedAt:  "2025-06-20T09:00:00Z",
			UpdatedAt:  "2025-06-20T09:00:00Z",
		},
	}
}
