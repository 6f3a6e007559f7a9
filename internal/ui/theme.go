package ui

import "github.com/charmbracelet/lipgloss"

// Theme is the console's color palette, ANSI 256 codes for broad
// terminal compatibility.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	ErrorText   lipgloss.Color
	SuccessText lipgloss.Color

	// Permission request status accents.
	StatusApproved lipgloss.Color
	StatusPending  lipgloss.Color
	StatusRejected lipgloss.Color
}

// StatusColor maps a permission-request status onto its accent.
func (t Theme) StatusColor(status string) lipgloss.Color {
	switch status {
	case "Approved":
		return t.StatusApproved
	case "Pending":
		return t.StatusPending
	case "Rejected":
		return t.StatusRejected
	default:
		return t.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	ErrorText:   lipgloss.Color("196"),
	SuccessText: lipgloss.Color("114"),

	StatusApproved: lipgloss.Color("114"), // green
	StatusPending:  lipgloss.Color("220"), // amber
	StatusRejected: lipgloss.Color("196"), // red
}
