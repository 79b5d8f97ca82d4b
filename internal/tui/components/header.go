// Package components provides reusable Bubbletea UI building blocks for the
// aliddns TUI. These are render-only helpers (not tea.Model) used by the main
// TUI models to compose views.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/QsSama-W/aliddns/internal/tui/styles"
)

// Header renders the application header bar.
//
//	┌──────────────────────────────────────────┐
//	│  aliddns > example.com           alidns  │
//	└──────────────────────────────────────────┘
func Header(width int, breadcrumb string, provider string) string {
	if width < 10 {
		return ""
	}

	leftStyle := styles.Title.Foreground(styles.Orange)
	left := leftStyle.Render("aliddns")
	if breadcrumb != "" {
		left += styles.MutedText.Render(" > ") + styles.Title.Render(breadcrumb)
	}

	right := ""
	if provider != "" {
		right = styles.Subtitle.Render(provider)
	}

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	innerWidth := width - 4 // account for padding
	gap := max(innerWidth-leftLen-rightLen, 1)

	content := left + strings.Repeat(" ", gap) + right

	bar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 2).
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderBottom(true).
		BorderForeground(styles.DimGray).
		Render(content)

	return bar
}
