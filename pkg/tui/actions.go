package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/selah-app/selah/pkg/journal"
)

// Snapshot of the visible list after a search or mutation.
type meditationsMsg []journal.Meditation

// Recompute the visible list for the current search term.
func refreshList(store *journal.Store, term string) tea.Cmd {
	return func() tea.Msg {
		meditations := store.Meditations()
		if term != "" {
			results := journal.Search(term, meditations, nil, journal.ScopeMeditations)
			meditations = results.Meditations
		}
		return meditationsMsg(journal.SortMeditations(meditations, store.IsPinned, journal.SortByDate))
	}
}

// Toggle the favorite flag for a meditation, then refresh the list.
func toggleFavorite(store *journal.Store, id int64, term string) tea.Cmd {
	return func() tea.Msg {
		if _, err := store.ToggleFavorite(context.Background(), id); err != nil {
			return err
		}
		return refreshList(store, term)()
	}
}

// Toggle the pinned flag for a meditation, then refresh the list.
func togglePin(store *journal.Store, id int64, term string) tea.Cmd {
	return func() tea.Msg {
		if _, err := store.TogglePin(context.Background(), id); err != nil {
			return err
		}
		return refreshList(store, term)()
	}
}
