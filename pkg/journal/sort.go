package journal

import (
	"sort"
	"time"
)

// SortKey selects the comparator used for list views.
type SortKey string

const (
	SortByDate  SortKey = "date" // descending, newest first
	SortByTitle SortKey = "title"
	SortByVerse SortKey = "verse"
	SortByColor SortKey = "color"
)

// SortMeditations orders a list-view snapshot: pinned entries first, then by
// the selected key. Date sorts descending; title, verse and color sort
// ascending. The input slice is sorted in place and returned.
func SortMeditations(meditations []Meditation, isPinned func(int64) bool, key SortKey) []Meditation {
	sort.SliceStable(meditations, func(i, j int) bool {
		a, b := meditations[i], meditations[j]

		pinnedA, pinnedB := isPinned(a.ID), isPinned(b.ID)
		if pinnedA != pinnedB {
			return pinnedA
		}

		switch key {
		case SortByTitle:
			return a.Title < b.Title
		case SortByVerse:
			return a.Verse < b.Verse
		case SortByColor:
			return a.Color < b.Color
		default:
			return a.Date > b.Date
		}
	})
	return meditations
}

// FilterByColor keeps meditations whose color equals color exactly.
func FilterByColor(meditations []Meditation, color string) []Meditation {
	var out []Meditation
	for _, m := range meditations {
		if m.Color == color {
			out = append(out, m)
		}
	}
	return out
}

// FilterByTag keeps meditations carrying tag exactly.
func FilterByTag(meditations []Meditation, tag string) []Meditation {
	var out []Meditation
	for _, m := range meditations {
		for _, t := range m.Tags {
			if t == tag {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// FilterRecent keeps meditations dated within the last seven days of now.
func FilterRecent(meditations []Meditation, now time.Time) []Meditation {
	cutoff := isoDay(now.AddDate(0, 0, -7))
	var out []Meditation
	for _, m := range meditations {
		if m.Date >= cutoff {
			out = append(out, m)
		}
	}
	return out
}
