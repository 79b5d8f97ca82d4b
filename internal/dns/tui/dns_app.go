// Package tui implements the full-screen interactive DNS manager.
//
// The app model owns navigation between views and runs every provider
// mutation as a background tea.Cmd tagged with a generation counter, so a
// result arriving after the user has moved on is discarded instead of
// clobbering newer state.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/dns/services"
	"github.com/QsSama-W/aliddns/internal/oplog"
	"github.com/QsSama-W/aliddns/internal/tui/components"
	"github.com/QsSama-W/aliddns/internal/tui/styles"
	"github.com/QsSama-W/aliddns/internal/version"
)

// --- Navigation messages ---
// Sent by child models to request view transitions.

type dnsNavigateToDomainListMsg struct{}

type dnsNavigateToRecordListMsg struct {
	domain domain.DomainName
}

type dnsNavigateToRecordSetMsg struct {
	domain string
	// prefill, when non-nil, seeds the form from an existing record.
	prefill *domain.Record
}

type dnsNavigateToRecordDeleteMsg struct {
	record domain.Record
	domain string
}

type dnsNavigateToOpLogMsg struct{}

type dnsNavigateBackMsg struct{}

// --- Action messages ---
// Sent by child models when the user confirms an operation.

type dnsSetConfirmedMsg struct {
	domain string
	rr     string
	ip     string
}

type dnsToggleConfirmedMsg struct {
	domain string
	record domain.Record
}

type dnsDeleteConfirmedMsg struct {
	domain string
	record domain.Record
}

// dnsActionResultMsg carries the outcome of any mutation. seq ties the
// result to the request generation that produced it.
type dnsActionResultMsg struct {
	seq     int
	status  string
	records []domain.Record
	err     error
}

type updateCheckResultMsg struct {
	result *version.CheckResult
	err    error
}

// --- Top-level App Model ---

type dnsAppView int

const (
	dnsAppViewDomainList dnsAppView = iota
	dnsAppViewRecordList
	dnsAppViewRecordSet
	dnsAppViewRecordDelete
	dnsAppViewOpLog
	dnsAppViewAction // spinner while API call in progress
)

type dnsAppModel struct {
	service      *services.Service
	providerName string
	opLog        oplog.Repository
	checker      *version.Checker
	view         dnsAppView
	returnView   dnsAppView // where esc from the oplog view goes

	// reqSeq is bumped for every issued action; stale results are dropped.
	reqSeq int

	// Child models
	domainList   dnsDomainListModel
	recordList   dnsRecordListModel
	recordSet    dnsRecordSetModel
	recordDelete dnsRecordDeleteModel
	opLogView    opLogViewModel

	// Action state
	actionSpinner spinner.Model
	actionLabel   string
	actionStatus  string
	actionIsError bool

	width  int
	height int
}

// RunDNSApp starts the DNS TUI. If initialDomain is not empty, it jumps
// straight to the record list for that domain.
func RunDNSApp(service *services.Service, providerName, initialDomain string, repo oplog.Repository) (tea.Model, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Orange)

	m := dnsAppModel{
		service:       service,
		providerName:  providerName,
		opLog:         repo,
		checker:       version.NewChecker(),
		actionSpinner: s,
	}

	if initialDomain != "" {
		m.switchToRecordList(initialDomain)
	} else {
		m.switchToDomainList()
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	return p.Run()
}

func (m *dnsAppModel) switchToDomainList() {
	m.view = dnsAppViewDomainList
	m.domainList = newDNSDomainListModel(m.service, m.providerName, m.width, m.height)
}

func (m *dnsAppModel) switchToRecordList(domainName string) {
	m.view = dnsAppViewRecordList
	m.recordList = newDNSRecordListModel(m.service, m.providerName, domainName, m.width, m.height)
}

func (m dnsAppModel) Init() tea.Cmd {
	return tea.Batch(m.childInit(), m.checkUpdateCmd())
}

func (m dnsAppModel) childInit() tea.Cmd {
	if m.view == dnsAppViewRecordList {
		return m.recordList.Init()
	}
	return m.domainList.Init()
}

// checkUpdateCmd runs the release check in the background on startup.
// Failures are silent: the check is a courtesy, not a feature the session
// depends on.
func (m dnsAppModel) checkUpdateCmd() tea.Cmd {
	return func() tea.Msg {
		result, err := m.checker.Check(context.Background())
		return updateCheckResultMsg{result: result, err: err}
	}
}

func (m dnsAppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view == dnsAppViewAction && m.actionIsError {
			switch msg.String() {
			case "esc", "enter":
				m.view = dnsAppViewRecordList
				m.recordList.loading = true
				return m, tea.Batch(m.recordList.spinner.Tick, m.recordList.loadRecordsCmd())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.updateChild(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		if m.view == dnsAppViewAction {
			m.actionSpinner, cmd = m.actionSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		// Also forward to the child so loading spinners animate.
		childModel, childCmd := m.updateChild(msg)
		m = childModel.(dnsAppModel)
		cmds = append(cmds, childCmd)
		return m, tea.Batch(cmds...)

	case updateCheckResultMsg:
		if msg.err == nil && msg.result.Outcome == version.UpdateAvailable {
			note := fmt.Sprintf("Update available: %s (run 'aliddns upgrade' for details)", msg.result.Latest)
			m.domainList.persistentStatus = note
			m.recordList.persistentStatus = note
		}
		return m, nil

	case dnsNavigateToDomainListMsg:
		m.switchToDomainList()
		return m, m.domainList.Init()

	case dnsNavigateToRecordListMsg:
		m.switchToRecordList(msg.domain.Name)
		return m, m.recordList.Init()

	case dnsNavigateToRecordSetMsg:
		m.view = dnsAppViewRecordSet
		m.recordSet = newDNSRecordSetModel(m.providerName, msg.domain, msg.prefill, m.width, m.height)
		return m, m.recordSet.Init()

	case dnsNavigateToRecordDeleteMsg:
		m.view = dnsAppViewRecordDelete
		m.recordDelete = newDNSRecordDeleteModel(m.providerName, msg.domain, msg.record, m.width, m.height)
		return m, m.recordDelete.Init()

	case dnsNavigateToOpLogMsg:
		if m.opLog == nil {
			return m, nil
		}
		m.returnView = m.view
		m.view = dnsAppViewOpLog
		m.opLogView = newOpLogViewModel(m.opLog, m.providerName, m.width, m.height)
		return m, m.opLogView.Init()

	// Actions
	case dnsSetConfirmedMsg:
		return m.startAction(
			fmt.Sprintf("Applying %s record", domain.FullName(msg.domain, msg.rr)),
			func(ctx context.Context) (string, []domain.Record, error) {
				result, err := m.service.Reconcile(ctx, msg.domain, msg.rr, msg.ip)
				if err != nil {
					return "", nil, err
				}
				return result.Message(), result.Records, nil
			})

	case dnsToggleConfirmedMsg:
		target := msg.record.Status.Toggled()
		return m.startAction(
			fmt.Sprintf("Setting record %s to %s", msg.record.ID, target),
			func(ctx context.Context) (string, []domain.Record, error) {
				records, err := m.service.SetStatus(ctx, msg.domain, msg.record.ID, target)
				if err != nil {
					return "", nil, err
				}
				return fmt.Sprintf("Record %s set to %s", msg.record.ID, target), records, nil
			})

	case dnsDeleteConfirmedMsg:
		return m.startAction(
			fmt.Sprintf("Deleting record %s", msg.record.ID),
			func(ctx context.Context) (string, []domain.Record, error) {
				records, err := m.service.Delete(ctx, msg.domain, msg.record.ID)
				if err != nil {
					return "", nil, err
				}
				return fmt.Sprintf("Deleted record %s", msg.record.ID), records, nil
			})

	case dnsActionResultMsg:
		if msg.seq != m.reqSeq {
			// A newer action superseded this one.
			return m, nil
		}
		if msg.err != nil {
			m.actionIsError = true
			m.actionStatus = msg.err.Error()
			return m, nil
		}
		// Back to the record list with the fresh post-mutation records.
		m.view = dnsAppViewRecordList
		m.recordList.setRecords(msg.records)
		m.recordList.persistentStatus = msg.status
		m.recordList.statusIsError = false
		return m, nil

	case dnsNavigateBackMsg:
		switch m.view {
		case dnsAppViewRecordSet, dnsAppViewRecordDelete:
			m.view = dnsAppViewRecordList
			return m, nil
		case dnsAppViewOpLog:
			m.view = m.returnView
			return m, nil
		case dnsAppViewAction:
			// Only reachable after an action error.
			m.view = dnsAppViewRecordList
			return m, nil
		case dnsAppViewRecordList:
			if m.domainList.service != nil {
				m.view = dnsAppViewDomainList
				return m, nil
			}
			return m, tea.Quit
		}
	}

	childModel, cmd := m.updateChild(msg)
	m = childModel.(dnsAppModel)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// startAction switches to the spinner view and runs fn in the background,
// stamping the result with the current request generation.
func (m dnsAppModel) startAction(label string, fn func(ctx context.Context) (string, []domain.Record, error)) (tea.Model, tea.Cmd) {
	m.reqSeq++
	seq := m.reqSeq

	m.view = dnsAppViewAction
	m.actionLabel = label
	m.actionIsError = false
	m.actionStatus = ""

	return m, tea.Batch(m.actionSpinner.Tick, func() tea.Msg {
		status, records, err := fn(context.Background())
		return dnsActionResultMsg{seq: seq, status: status, records: records, err: err}
	})
}

func (m dnsAppModel) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case dnsAppViewDomainList:
		var updated tea.Model
		updated, cmd = m.domainList.Update(msg)
		m.domainList = updated.(dnsDomainListModel)
	case dnsAppViewRecordList:
		var updated tea.Model
		updated, cmd = m.recordList.Update(msg)
		m.recordList = updated.(dnsRecordListModel)
	case dnsAppViewRecordSet:
		var updated tea.Model
		updated, cmd = m.recordSet.Update(msg)
		m.recordSet = updated.(dnsRecordSetModel)
	case dnsAppViewRecordDelete:
		var updated tea.Model
		updated, cmd = m.recordDelete.Update(msg)
		m.recordDelete = updated.(dnsRecordDeleteModel)
	case dnsAppViewOpLog:
		var updated tea.Model
		updated, cmd = m.opLogView.Update(msg)
		m.opLogView = updated.(opLogViewModel)
	}
	return m, cmd
}

func (m dnsAppModel) View() string {
	switch m.view {
	case dnsAppViewDomainList:
		return m.domainList.View()
	case dnsAppViewRecordList:
		return m.recordList.View()
	case dnsAppViewRecordSet:
		return m.recordSet.View()
	case dnsAppViewRecordDelete:
		return m.recordDelete.View()
	case dnsAppViewOpLog:
		return m.opLogView.View()
	case dnsAppViewAction:
		header := components.Header(m.width, "dns > working", m.providerName)
		content := fmt.Sprintf("\n  %s %s\n", m.actionSpinner.View(), m.actionLabel)

		if m.actionStatus != "" {
			statusStyle := styles.Value
			if m.actionIsError {
				statusStyle = styles.ErrorText
			}
			content += fmt.Sprintf("\n  %s\n", statusStyle.Render(m.actionStatus))
			content += "\n  " + styles.MutedText.Render("esc to go back")
		}

		return lipgloss.JoinVertical(lipgloss.Left, header, content)
	}
	return ""
}
