package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// UI styles and layout settings
// Color palette "Blue Moon" from https://gogh-co.github.io/Gogh/
const (
	colorGray   = "#353b52"
	colorWhite  = "#ffffff"
	colorGreen  = "#acfab4"
	colorRed    = "#e61f44"
	colorPurple = "#b9a3eb"
	colorBlue   = "#89ddff"
	colorYellow = "#f8e9a1"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue)).
			Background(lipgloss.Color(colorGray)).
			Padding(0, 2).Align(lipgloss.Center)
	subtitleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray)).
			Background(lipgloss.Color(colorGreen))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWhite))
	pinnedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow))
	favoriteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))
)

// Generates pointer symbol when line in focus
func generateLinePointer(isPoint bool, length int) string {
	if isPoint {
		return ">" + strings.Repeat(" ", length-1)
	}
	return strings.Repeat(" ", length)
}

// Marker glyphs shown next to a meditation in the list.
func entryMarkers(pinned, favorite bool) string {
	markers := ""
	if pinned {
		markers += pinnedStyle.Render("*")
	} else {
		markers += " "
	}
	if favorite {
		markers += favoriteStyle.Render("♥")
	} else {
		markers += " "
	}
	return markers
}
