package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderModal draws content inside a bordered box centered in the
// window. The console repaints every frame, so the modal simply wins
// the whole screen while open; the page underneath keeps its state.
func renderModal(theme Theme, width, height int, title, content string) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		MarginBottom(1)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 2).
		Render(titleStyle.Render(title) + "\n" + content)

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderFieldError renders a field-level validation message, or "" when
// the field is clean.
func renderFieldError(theme Theme, message string) string {
	if message == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(theme.ErrorText).Render(message)
}
