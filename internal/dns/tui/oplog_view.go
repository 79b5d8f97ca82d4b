package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/QsSama-W/aliddns/internal/oplog"
	"github.com/QsSama-W/aliddns/internal/tui/components"
	"github.com/QsSama-W/aliddns/internal/tui/styles"
)

type opLogLoadedMsg struct {
	entries []oplog.Entry
}

type opLogErrorMsg struct {
	err error
}

// opLogViewModel renders the recent operation history in a scrollable
// viewport. Only the most recent entries are shown (oplog.DisplayLimit).
type opLogViewModel struct {
	repo         oplog.Repository
	providerName string

	entries  []oplog.Entry
	viewport viewport.Model
	ready    bool
	err      error

	width  int
	height int
}

func newOpLogViewModel(repo oplog.Repository, providerName string, width, height int) opLogViewModel {
	return opLogViewModel{
		repo:         repo,
		providerName: providerName,
		width:        width,
		height:       height,
	}
}

func (m opLogViewModel) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.repo.List(oplog.DisplayLimit)
		if err != nil {
			return opLogErrorMsg{err}
		}
		return opLogLoadedMsg{entries}
	}
}

func (m opLogViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.ready {
			m.viewport.Width = m.width
			m.viewport.Height = m.contentHeight()
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "backspace":
			return m, func() tea.Msg { return dnsNavigateBackMsg{} }
		}

	case opLogLoadedMsg:
		m.entries = msg.entries
		m.viewport = viewport.New(m.width, m.contentHeight())
		m.viewport.SetContent(m.renderEntries())
		m.ready = true

	case opLogErrorMsg:
		m.err = msg.err
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m opLogViewModel) contentHeight() int {
	// Header, footer, and the title line.
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m opLogViewModel) View() string {
	header := components.Header(m.width, "history", m.providerName)

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "scroll"},
		{Key: "esc", Desc: "back"},
	}
	footer := components.Footer(m.width, bindings)

	var content string
	switch {
	case m.err != nil:
		content = "\n  " + styles.ErrorText.Render(m.err.Error())
	case !m.ready:
		content = "\n  Loading history..."
	case len(m.entries) == 0:
		content = "\n  No operations recorded yet."
	default:
		title := styles.MutedText.Render(fmt.Sprintf("  Last %d operations", len(m.entries)))
		content = title + "\n" + m.viewport.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m opLogViewModel) renderEntries() string {
	var rows []string
	for _, e := range m.entries {
		outcome := styles.SuccessText.Render("ok")
		if e.Outcome == oplog.OutcomeError {
			outcome = styles.ErrorText.Render("err")
		}

		line := fmt.Sprintf("  %s  %-3s %-11s %-24s %s",
			styles.MutedText.Render(e.Timestamp.Local().Format("2006-01-02 15:04:05")),
			outcome,
			e.Operation,
			e.Domain,
			e.Detail,
		)
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}
