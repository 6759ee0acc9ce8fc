package journal

import "strings"

// Scope restricts a search to one entity type, or neither.
type Scope string

const (
	ScopeAll         Scope = "all"
	ScopeMeditations Scope = "meditations"
	ScopeSermons     Scope = "sermons"
)

// Results holds the matches of a search, each slice in the original
// collection order. There is no ranking.
type Results struct {
	Meditations []Meditation
	Sermons     []Sermon
}

// Total is the combined number of matches.
func (r Results) Total() int {
	return len(r.Meditations) + len(r.Sermons)
}

// Search performs a case-insensitive substring match of term against a fixed
// set of fields per entity type, OR-ed across fields. An empty or
// whitespace-only term yields empty results.
func Search(term string, meditations []Meditation, sermons []Sermon, scope Scope) Results {
	term = strings.TrimSpace(term)
	if term == "" {
		return Results{}
	}
	lower := strings.ToLower(term)

	var res Results
	if scope != ScopeSermons {
		for _, m := range meditations {
			if meditationMatches(m, lower) {
				res.Meditations = append(res.Meditations, m)
			}
		}
	}
	if scope != ScopeMeditations {
		for _, sm := range sermons {
			if sermonMatches(sm, lower) {
				res.Sermons = append(res.Sermons, sm)
			}
		}
	}
	return res
}

func meditationMatches(m Meditation, lowerTerm string) bool {
	for _, field := range []string{m.Title, m.Verse, m.Content, m.Summary, m.Comments} {
		if strings.Contains(strings.ToLower(field), lowerTerm) {
			return true
		}
	}
	for _, tag := range m.Tags {
		if strings.Contains(strings.ToLower(tag), lowerTerm) {
			return true
		}
	}
	return false
}

func sermonMatches(sm Sermon, lowerTerm string) bool {
	for _, field := range []string{sm.Title, sm.Theme, sm.Outline} {
		if strings.Contains(strings.ToLower(field), lowerTerm) {
			return true
		}
	}
	return false
}
