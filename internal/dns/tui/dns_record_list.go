package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/dns/services"
	"github.com/QsSama-W/aliddns/internal/tui/components"
	"github.com/QsSama-W/aliddns/internal/tui/styles"
)

// --- Messages ---

type dnsRecordsLoadedMsg struct {
	records []domain.Record
}

type dnsRecordsErrorMsg struct {
	err error
}

// --- Record list model ---

type dnsRecordListModel struct {
	service      *services.Service
	providerName string
	domain       string

	records   []domain.Record
	filtered  []domain.Record
	cursor    int
	listStart int // for scrolling

	typeFilter string // "A", "AAAA", or "" for all
	typeCycle  []string

	width  int
	height int

	loading          bool
	spinner          spinner.Model
	err              error
	status           string
	statusIsError    bool
	persistentStatus string
}

func newDNSRecordListModel(svc *services.Service, providerName, domainName string, width, height int) dnsRecordListModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Orange)

	return dnsRecordListModel{
		service:      svc,
		providerName: providerName,
		domain:       domainName,
		typeCycle:    []string{"", "A", "AAAA"},
		width:        width,
		height:       height,
		loading:      true,
		spinner:      s,
	}
}

func (m dnsRecordListModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadRecordsCmd())
}

func (m dnsRecordListModel) loadRecordsCmd() tea.Cmd {
	return func() tea.Msg {
		records, err := m.service.ListRecords(context.Background(), m.domain)
		if err != nil {
			return dnsRecordsErrorMsg{err}
		}
		return dnsRecordsLoadedMsg{records}
	}
}

// setRecords replaces the list with an already-fetched fresh copy, as
// returned by a completed mutation.
func (m *dnsRecordListModel) setRecords(records []domain.Record) {
	m.loading = false
	m.err = nil
	m.records = records
	m.applyFilter()
}

func (m *dnsRecordListModel) applyFilter() {
	m.filtered = make([]domain.Record, 0, len(m.records))
	for _, r := range m.records {
		if m.typeFilter == "" || string(r.Type) == m.typeFilter {
			m.filtered = append(m.filtered, r)
		}
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	}
	if m.listStart >= len(m.filtered) {
		m.listStart = 0
	}
}

func (m dnsRecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace":
			return m, func() tea.Msg { return dnsNavigateBackMsg{} }
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
		case "f":
			idx := 0
			for i, t := range m.typeCycle {
				if t == m.typeFilter {
					idx = i
					break
				}
			}
			m.typeFilter = m.typeCycle[(idx+1)%len(m.typeCycle)]
			m.applyFilter()
		case "r":
			m.loading = true
			m.err = nil
			m.persistentStatus = ""
			return m, tea.Batch(m.spinner.Tick, m.loadRecordsCmd())
		case "o":
			return m, func() tea.Msg { return dnsNavigateToOpLogMsg{} }
		case "n":
			return m, func() tea.Msg { return dnsNavigateToRecordSetMsg{domain: m.domain} }
		case "enter":
			if len(m.filtered) > 0 {
				rec := m.filtered[m.cursor]
				return m, func() tea.Msg { return dnsNavigateToRecordSetMsg{domain: m.domain, prefill: &rec} }
			}
		case "t":
			if len(m.filtered) > 0 {
				rec := m.filtered[m.cursor]
				return m, func() tea.Msg { return dnsToggleConfirmedMsg{domain: m.domain, record: rec} }
			}
		case "d":
			if len(m.filtered) > 0 {
				rec := m.filtered[m.cursor]
				return m, func() tea.Msg { return dnsNavigateToRecordDeleteMsg{record: rec, domain: m.domain} }
			}
		}

	case dnsRecordsLoadedMsg:
		m.setRecords(msg.records)
		status := fmt.Sprintf("Loaded %d records.", len(m.records))
		if m.persistentStatus != "" {
			status = m.persistentStatus + " | " + status
		}
		m.status = status

	case dnsRecordsErrorMsg:
		m.loading = false
		m.err = msg.err
		m.status = msg.err.Error()
		m.statusIsError = true

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m dnsRecordListModel) View() string {
	header := components.Header(m.width, m.domain, m.providerName)

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "nav"},
		{Key: "enter", Desc: "set"},
		{Key: "n", Desc: "new"},
		{Key: "t", Desc: "toggle"},
		{Key: "d", Desc: "delete"},
		{Key: "f", Desc: "filter"},
		{Key: "o", Desc: "history"},
		{Key: "esc", Desc: "back"},
	}
	footer := components.Footer(m.width, bindings)

	statusBar := components.StatusBar(m.width, m.status, m.statusIsError)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	statusH := lipgloss.Height(statusBar)
	contentH := m.height - headerH - footerH - statusH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	if m.loading {
		content = fmt.Sprintf("\n  %s Loading records...", m.spinner.View())
	} else if m.err != nil {
		content = fmt.Sprintf("\n  %s", styles.ErrorText.Render(m.err.Error()))
	} else if len(m.records) == 0 {
		content = "\n  No A or AAAA records for this domain. Press n to add one."
	} else {
		content = m.renderFilterBar() + "\n" + m.renderTable(contentH-2)
	}

	lines := lipgloss.Height(content)
	if lines < contentH {
		content += lipgloss.NewStyle().Height(contentH - lines).Render("")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar, footer)
}

func (m dnsRecordListModel) renderFilterBar() string {
	var parts []string
	parts = append(parts, "  Filter: ")

	for _, t := range m.typeCycle {
		label := t
		if t == "" {
			label = "All"
		}

		if t == m.typeFilter {
			parts = append(parts, fmt.Sprintf("[%s]", styles.AccentText.Render(label)))
		} else {
			parts = append(parts, fmt.Sprintf(" %s ", styles.MutedText.Render(label)))
		}
	}

	return strings.Join(parts, "")
}

func (m dnsRecordListModel) renderTable(height int) string {
	if len(m.filtered) == 0 {
		return "\n  No records match current filter."
	}

	cols := []int{25, 6, 40, 6, 10}

	header := styles.TableHeader.Render(
		fmt.Sprintf("  %-*s %-*s %-*s %-*s %-*s",
			cols[0], "RR",
			cols[1], "TYPE",
			cols[2], "VALUE",
			cols[3], "TTL",
			cols[4], "STATUS",
		),
	)

	var rows []string
	rows = append(rows, header)

	if m.cursor < m.listStart {
		m.listStart = m.cursor
	} else if m.cursor >= m.listStart+(height-1) {
		m.listStart = m.cursor - (height - 2)
	}

	end := m.listStart + height - 1
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.listStart; i < end; i++ {
		r := m.filtered[i]

		cursor := " "
		rowStyle := styles.TableCell
		if i == m.cursor {
			cursor = styles.AccentText.Render(">")
			rowStyle = styles.TableSelectedRow
		}

		value := ansi.Truncate(r.Value, cols[2]-2, "...")

		typeColor := lipgloss.NewStyle().Foreground(styles.Green)
		if r.Type == domain.RecordTypeAAAA {
			typeColor = lipgloss.NewStyle().Foreground(styles.Yellow)
		}

		row := fmt.Sprintf("%s %-*s %-*s %-*s %-*d %-*s",
			cursor,
			cols[0], r.RR,
			cols[1], typeColor.Render(string(r.Type)),
			cols[2], value,
			cols[3], r.TTL,
			cols[4], styles.RecordStatusIndicator(string(r.Status)),
		)
		rows = append(rows, rowStyle.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
