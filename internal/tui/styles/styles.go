// SPDX-FileCopyrightText: 2026 The Palett Authors
// SPDX-License-Identifier: EUPL-1.2

// Package styles defines consistent visual styling for the palette UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the palette.
type Styles struct {
	// Color palette
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color

	// Component styles
	Title      lipgloss.Style
	Prompt     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Category   lipgloss.Style
	Border     lipgloss.Style

	// Text styles (cached for performance)
	MutedText   lipgloss.Style
	SuccessText lipgloss.Style
	ErrorText   lipgloss.Style
}

// New creates a new Styles instance with the default Tokyo Night theme.
func New() *Styles {
	primary := lipgloss.Color("#7aa2f7")    // Blue
	secondary := lipgloss.Color("#bb9af7")  // Purple
	success := lipgloss.Color("#9ece6a")    // Green
	errorColor := lipgloss.Color("#f7768e") // Red
	muted := lipgloss.Color("#565f89")      // Gray

	background := lipgloss.Color("#1a1b26")
	foreground := lipgloss.Color("#c0caf5")

	return &Styles{
		Primary:   primary,
		Secondary: secondary,
		Success:   success,
		Error:     errorColor,
		Muted:     muted,

		Title: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		Prompt: lipgloss.NewStyle().
			Foreground(secondary).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Padding(0, 1),

		Unselected: lipgloss.NewStyle().
			Foreground(foreground).
			Padding(0, 1),

		Category: lipgloss.NewStyle().
			Foreground(secondary).
			Italic(true),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary),

		MutedText: lipgloss.NewStyle().
			Foreground(muted),

		SuccessText: lipgloss.NewStyle().
			Foreground(success),

		ErrorText: lipgloss.NewStyle().
			Foreground(errorColor),
	}
}

// Keybinding returns styled keybinding text.
func (s *Styles) Keybinding(key, desc string) string {
	keyStyle := lipgloss.NewStyle().
		Foreground(s.Primary).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(s.Muted)

	return keyStyle.Render("["+key+"]") + " " + descStyle.Render(desc)
}
