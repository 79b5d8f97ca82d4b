package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/tui/components"
	"github.com/QsSama-W/aliddns/internal/tui/styles"
)

type dnsDeleteStage int

const (
	dnsDeleteStageFirst dnsDeleteStage = iota
	dnsDeleteStageSecond
)

// dnsRecordDeleteModel asks twice before a record is removed. Both prompts
// default to Cancel; only two explicit confirmations emit the delete.
type dnsRecordDeleteModel struct {
	providerName string
	domain       string
	record       domain.Record

	stage      dnsDeleteStage
	confirmIdx int // 0 = Delete, 1 = Cancel

	width  int
	height int
}

func newDNSRecordDeleteModel(providerName, domainName string, rec domain.Record, width, height int) dnsRecordDeleteModel {
	return dnsRecordDeleteModel{
		providerName: providerName,
		domain:       domainName,
		record:       rec,
		confirmIdx:   1, // default to Cancel for safety
		width:        width,
		height:       height,
	}
}

func (m dnsRecordDeleteModel) Init() tea.Cmd {
	return nil
}

func (m dnsRecordDeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return dnsNavigateBackMsg{} }
		case "left", "h":
			if m.confirmIdx > 0 {
				m.confirmIdx--
			}
		case "right", "l":
			if m.confirmIdx < 1 {
				m.confirmIdx++
			}
		case "enter":
			if m.confirmIdx == 1 {
				return m, func() tea.Msg { return dnsNavigateBackMsg{} }
			}
			if m.stage == dnsDeleteStageFirst {
				m.stage = dnsDeleteStageSecond
				m.confirmIdx = 1 // reset to Cancel for the second ask
				return m, nil
			}
			dom, rec := m.domain, m.record
			return m, func() tea.Msg { return dnsDeleteConfirmedMsg{domain: dom, record: rec} }
		}
	}

	return m, nil
}

func (m dnsRecordDeleteModel) View() string {
	header := components.Header(m.width, m.domain+" > delete", m.providerName)

	bindings := []components.KeyBinding{
		{Key: "←/→", Desc: "select"},
		{Key: "enter", Desc: "confirm"},
		{Key: "esc", Desc: "cancel"},
	}
	footer := components.Footer(m.width, bindings)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	contentH := m.height - headerH - footerH
	if contentH < 1 {
		contentH = 1
	}

	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderCard())

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m dnsRecordDeleteModel) renderCard() string {
	r := m.record

	title := lipgloss.NewStyle().Foreground(styles.Red).Bold(true).Render("Delete DNS Record")
	if m.stage == dnsDeleteStageSecond {
		title = lipgloss.NewStyle().Foreground(styles.Red).Bold(true).Render("Really delete?")
	}

	label := func(s string) string {
		return lipgloss.NewStyle().Width(10).Render(styles.Label.Render(s))
	}
	fields := []string{
		lipgloss.JoinHorizontal(lipgloss.Left, label("Name"), styles.Value.Render(r.FullName())),
		lipgloss.JoinHorizontal(lipgloss.Left, label("Type"), styles.Value.Render(string(r.Type))),
		lipgloss.JoinHorizontal(lipgloss.Left, label("Value"), styles.Value.Render(r.Value)),
		lipgloss.JoinHorizontal(lipgloss.Left, label("Status"), styles.RecordStatusIndicator(string(r.Status))),
	}

	warning := styles.ErrorText.Render("This action cannot be undone.")
	if m.stage == dnsDeleteStageSecond {
		warning = styles.ErrorText.Render(fmt.Sprintf("Record %s will be permanently removed.", r.ID))
	}

	delBtn := "[ Delete ]"
	canBtn := "[ Cancel ]"

	if m.confirmIdx == 0 {
		delBtn = lipgloss.NewStyle().Foreground(styles.White).Background(styles.Red).Render(delBtn)
		canBtn = styles.MutedText.Render(canBtn)
	} else {
		delBtn = lipgloss.NewStyle().Foreground(styles.Red).Render(delBtn)
		canBtn = lipgloss.NewStyle().Foreground(styles.White).Background(styles.Gray).Render(canBtn)
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, delBtn, "  ", canBtn)

	cardContent := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(fields, "\n"),
		"",
		warning,
	)

	cardStyle := styles.Card.BorderForeground(styles.Red)

	return lipgloss.JoinVertical(lipgloss.Center, cardStyle.Render(cardContent), "", buttons)
}
