// Package styles provides the centralized color palette and style definitions
// for the aliddns TUI. All visual constants live here so the rest of the TUI
// code can reference a single source of truth.
package styles

import "github.com/charmbracelet/lipgloss"

// --- Color palette ---

var (
	// Core text
	White   = lipgloss.Color("#E8E8E8")
	Gray    = lipgloss.Color("#8A8A8A")
	Muted   = lipgloss.Color("#585858")
	DimGray = lipgloss.Color("#444444")

	// Accent
	Orange     = lipgloss.Color("#FF9E3B")
	DimOrange  = lipgloss.Color("#A0632A")
	DarkOrange = lipgloss.Color("#402A15")

	// Status
	Green  = lipgloss.Color("#76D7A0")
	Yellow = lipgloss.Color("#FFD787")
	Red    = lipgloss.Color("#FF8787")
)
