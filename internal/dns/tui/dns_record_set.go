package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/dns/services"
	"github.com/QsSama-W/aliddns/internal/tui/components"
	"github.com/QsSama-W/aliddns/internal/tui/styles"
)

type dnsSetField int

const (
	dnsSetFieldRR dnsSetField = iota
	dnsSetFieldIP
)

// dnsRecordSetModel is the "point this name at this address" form. The user
// enters an RR and an IP; the record type is derived from the address family
// and shown live as they type. Whether this updates an existing record or
// creates a new one is decided downstream, not in the form.
type dnsRecordSetModel struct {
	providerName string
	domain       string

	focus  dnsSetField
	rrIn   textinput.Model
	ipIn   textinput.Model
	errMsg string

	width  int
	height int
}

func newDNSRecordSetModel(providerName, domainName string, prefill *domain.Record, width, height int) dnsRecordSetModel {
	rrIn := textinput.New()
	rrIn.Placeholder = "e.g. www (@ for the apex)"
	rrIn.Focus()

	ipIn := textinput.New()
	ipIn.Placeholder = "e.g. 203.0.113.5 or 2001:db8::1"

	if prefill != nil {
		rrIn.SetValue(prefill.RR)
		ipIn.SetValue(prefill.Value)
	}

	return dnsRecordSetModel{
		providerName: providerName,
		domain:       domainName,
		rrIn:         rrIn,
		ipIn:         ipIn,
		width:        width,
		height:       height,
	}
}

func (m dnsRecordSetModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m dnsRecordSetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return dnsNavigateBackMsg{} }
		case "tab", "shift+tab", "up", "down":
			m.toggleFocus()
			return m, nil
		case "enter":
			if m.focus == dnsSetFieldRR {
				m.toggleFocus()
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.focus == dnsSetFieldRR {
		m.rrIn, cmd = m.rrIn.Update(msg)
	} else {
		m.ipIn, cmd = m.ipIn.Update(msg)
	}
	m.errMsg = ""
	return m, cmd
}

func (m *dnsRecordSetModel) toggleFocus() {
	if m.focus == dnsSetFieldRR {
		m.focus = dnsSetFieldIP
		m.rrIn.Blur()
		m.ipIn.Focus()
	} else {
		m.focus = dnsSetFieldRR
		m.ipIn.Blur()
		m.rrIn.Focus()
	}
}

func (m dnsRecordSetModel) submit() (tea.Model, tea.Cmd) {
	ip := strings.TrimSpace(m.ipIn.Value())
	if services.Classify(ip) == services.FamilyInvalid {
		m.errMsg = "Enter a valid IPv4 or IPv6 address before applying."
		return m, nil
	}

	rr := m.rrIn.Value()
	dom := m.domain
	return m, func() tea.Msg { return dnsSetConfirmedMsg{domain: dom, rr: rr, ip: ip} }
}

func (m dnsRecordSetModel) View() string {
	header := components.Header(m.width, m.domain+" > set", m.providerName)

	bindings := []components.KeyBinding{
		{Key: "tab", Desc: "next field"},
		{Key: "enter", Desc: "apply"},
		{Key: "esc", Desc: "cancel"},
	}
	footer := components.Footer(m.width, bindings)

	headerH := lipgloss.Height(header)
	footerH := lipgloss.Height(footer)
	contentH := m.height - headerH - footerH
	if contentH < 1 {
		contentH = 1
	}

	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderForm())

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (m dnsRecordSetModel) renderForm() string {
	rrStyle := styles.InputBlurred
	ipStyle := styles.InputBlurred
	if m.focus == dnsSetFieldRR {
		rrStyle = styles.InputFocused
	} else {
		ipStyle = styles.InputFocused
	}

	fields := []string{
		styles.Label.Render("Subdomain"),
		rrStyle.Render(m.rrIn.View()),
		"",
		styles.Label.Render("IP address"),
		ipStyle.Render(m.ipIn.View()),
		"",
		m.renderFamilyHint(),
	}
	if m.errMsg != "" {
		fields = append(fields, "", styles.ErrorText.Render(m.errMsg))
	}

	title := styles.AccentText.Bold(true).Render(fmt.Sprintf("Set record on %s", m.domain))

	card := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(fields, "\n"),
	)
	return styles.CardActive.Render(card)
}

// renderFamilyHint shows, live, what the typed address classifies as and
// which record type that implies.
func (m dnsRecordSetModel) renderFamilyHint() string {
	ip := strings.TrimSpace(m.ipIn.Value())
	if ip == "" {
		return styles.MutedText.Render("Record type follows the address family.")
	}

	family := services.Classify(ip)
	typ, ok := family.RecordType()
	if !ok {
		return styles.ErrorText.Render("Not a valid IPv4 or IPv6 address.")
	}
	return styles.SuccessText.Render(fmt.Sprintf("%s address -> %s record", family, typ))
}
