// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by all CLI output. Chosen for dark terminal
// backgrounds.
const (
	// ColorPrimary is purple, used for titles and pure groups.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray, used for secondary text such as coordinates.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue, used for aliases and self-leaf groups.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary text.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and checkmarks.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure markers.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// AliasStyle is for aliases and config keys.
	AliasStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	groupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	selfLeafStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHighlight)

	enumeratorStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginRight(1)
)
