package tui

import (
	"fmt"
	"strings"

	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/selah-app/selah/pkg/journal"
)

type model struct {
	store       *journal.Store
	meditations []journal.Meditation // Currently visible list (search applied)

	cursor int // Index of selected meditation
	width  int // Current terminal width (for layout)
	height int // Current terminal height
	err    error

	searching   bool // Whether the search field has focus
	searchInput textinput.Model

	quitting bool
}

// Initialize TUI model
func initModel(store *journal.Store) model {
	search := textinput.New()
	search.Placeholder = "Rechercher..."
	search.CharLimit = 256

	return model{
		store:       store,
		meditations: []journal.Meditation{},

		cursor:      0,
		searchInput: search,
	}
}

// Execute commands concurrently with no ordering guarantees during initialization
func (m model) Init() tea.Cmd {
	return refreshList(m.store, "")
}

// Processes events like window resize, errors, loaded data, and key presses
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Save the new window size in the model for responsive layout
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case meditationsMsg:
		m.meditations = msg
		if m.cursor >= len(m.meditations) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			// Search Input Mode
			switch msg.Type {
			case tea.KeyEnter:
				// Keep the filter, return focus to the list
				m.searching = false
				m.searchInput.Blur()
				return m, nil

			case tea.KeyEsc:
				// Clear the filter entirely
				m.searching = false
				m.searchInput.Blur()
				m.searchInput.Reset()
				return m, refreshList(m.store, "")
			}

			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			// Re-filter on every keystroke
			return m, tea.Batch(cmd, refreshList(m.store, m.searchInput.Value()))
		}

		// Root Navigation Mode
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			// Exit alt screen before quitting so the goodbye message displays
			return m, tea.Sequence(tea.ExitAltScreen, tea.Quit)

		case "up", "k":
			// Move selection up (stop at top)
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			// Move selection down (stop at last item)
			if m.cursor < len(m.meditations)-1 {
				m.cursor++
			}

		case "/":
			m.searching = true
			m.searchInput.Focus()
			return m, nil

		case "f":
			if len(m.meditations) > 0 {
				return m, toggleFavorite(m.store, m.meditations[m.cursor].ID, m.searchInput.Value())
			}

		case "p":
			if len(m.meditations) > 0 {
				return m, togglePin(m.store, m.meditations[m.cursor].ID, m.searchInput.Value())
			}
		}
	}

	return m, nil
}

// Assembles the UI string for each frame
func (m model) View() string {
	if m.quitting {
		return "Selah. Journal saved.\n"
	}
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	titleBar := titleStyle.Width(m.width).Render("Selah - journal de méditations")

	// Two columns: list on the left (40%), details on the right
	leftWidth := (m.width * 40) / 100
	rightWidth := m.width - leftWidth

	bordersAndPaddingWidth := 4

	var leftBuilder strings.Builder
	leftBuilder.WriteString(m.searchInput.View() + "\n\n")
	leftBuilder.WriteString(subtitleStyle.Width(leftWidth - bordersAndPaddingWidth).Render("  Méditations"))
	leftBuilder.WriteString("\n\n")

	if len(m.meditations) == 0 {
		if m.searchInput.Value() != "" {
			leftBuilder.WriteString("Aucun résultat.\n")
		} else {
			leftBuilder.WriteString("Aucune méditation.\n")
		}
	} else {
		availableWidth := leftWidth - bordersAndPaddingWidth - 5
		for i, meditation := range m.meditations {
			pointer := generateLinePointer(m.cursor == i, 2)
			markers := entryMarkers(m.store.IsPinned(meditation.ID), m.store.IsFavorite(meditation.ID))

			title := meditation.Title
			if len(title) > availableWidth && availableWidth > 3 {
				title = fmt.Sprintf("%s..", title[:availableWidth-2])
			}

			itemStyle := inactiveStyle
			if m.cursor == i {
				itemStyle = selectedStyle
			}
			leftBuilder.WriteString(pointer + markers + " " + itemStyle.Render(title) + "\n")
		}
	}

	var rightBuilder strings.Builder
	if len(m.meditations) > 0 && m.cursor < len(m.meditations) {
		meditation := m.meditations[m.cursor]

		rightBuilder.WriteString(labelStyle.Render("Titre: ") + inactiveStyle.Render(meditation.Title) + "\n")
		rightBuilder.WriteString(labelStyle.Render("Verset: ") + inactiveStyle.Render(meditation.Verse) + "\n")
		rightBuilder.WriteString(labelStyle.Render("Date: ") + inactiveStyle.Render(meditation.Date+" ("+string(meditation.Time)+")") + "\n\n")

		tagsLine := "-"
		if len(meditation.Tags) > 0 {
			tagsLine = strings.Join(meditation.Tags, " ")
		}
		rightBuilder.WriteString(labelStyle.Render("Tags: ") + tagStyle.Render(tagsLine) + "\n\n")

		rightBuilder.WriteString(inactiveStyle.Render(meditation.Summary))
		if meditation.Content != "" {
			rightBuilder.WriteString("\n\n" + inactiveStyle.Render(meditation.Content))
		}
	} else {
		rightBuilder.WriteString("Sélectionnez une méditation.")
	}

	panelHeightPadding := 3

	leftPanelStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(lipgloss.Color(colorGray)).
		Padding(0, 2)
	leftPanel := leftPanelStyle.Width(leftWidth).Height(m.height - panelHeightPadding).
		Render(leftBuilder.String())

	rightPanelStyle := lipgloss.NewStyle().Padding(0, 2)
	rightPanel := rightPanelStyle.Width(rightWidth).Height(m.height - panelHeightPadding).
		Render(rightBuilder.String())

	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	footerText := "\n↑/↓ to navigate • / to search • f favorite • p pin • q to quit"
	footerBar := footerStyle.Width(m.width).Render(footerText)

	return titleBar + "\n\n" + columns + footerBar
}

// Create and start the Bubble Tea TUI
func ShowTUI(store *journal.Store) error {
	p := tea.NewProgram(initModel(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
