package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// drain runs a command tree and returns every message it produces.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func containsMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if typed, ok := m.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

// --- Stale result discarding ---

func TestApp_DiscardsStaleActionResult(t *testing.T) {
	m := dnsAppModel{reqSeq: 5, view: dnsAppViewAction}

	updated, _ := m.Update(dnsActionResultMsg{
		seq:    3, // superseded generation
		status: "stale",
		records: []domain.Record{
			{ID: "old"},
		},
	})
	app := updated.(dnsAppModel)

	if app.view != dnsAppViewAction {
		t.Errorf("view = %v, stale result must not change the view", app.view)
	}
	if len(app.recordList.records) != 0 {
		t.Error("stale result must not replace the record list")
	}
}

func TestApp_AppliesCurrentActionResult(t *testing.T) {
	m := dnsAppModel{reqSeq: 5, view: dnsAppViewAction}

	records := []domain.Record{{ID: "R1", Type: domain.RecordTypeA}}
	updated, _ := m.Update(dnsActionResultMsg{seq: 5, status: "updated", records: records})
	app := updated.(dnsAppModel)

	if app.view != dnsAppViewRecordList {
		t.Errorf("view = %v, want record list after success", app.view)
	}
	if len(app.recordList.records) != 1 || app.recordList.records[0].ID != "R1" {
		t.Errorf("record list = %+v, want fresh records", app.recordList.records)
	}
	if app.recordList.persistentStatus != "updated" {
		t.Errorf("persistentStatus = %q", app.recordList.persistentStatus)
	}
}

func TestApp_ActionErrorStaysOnActionView(t *testing.T) {
	m := dnsAppModel{reqSeq: 1, view: dnsAppViewAction}

	updated, _ := m.Update(dnsActionResultMsg{seq: 1, err: errTest})
	app := updated.(dnsAppModel)

	if app.view != dnsAppViewAction {
		t.Errorf("view = %v, want action view showing the error", app.view)
	}
	if !app.actionIsError || app.actionStatus == "" {
		t.Errorf("action error state = (%v, %q)", app.actionIsError, app.actionStatus)
	}
}

var errTest = errors.New("provider unavailable")

// --- Delete double confirmation ---

func TestDelete_DefaultsToCancel(t *testing.T) {
	m := newDNSRecordDeleteModel("alidns", "example.com", domain.Record{ID: "R1"}, 80, 24)

	if m.confirmIdx != 1 {
		t.Fatalf("confirmIdx = %d, want Cancel by default", m.confirmIdx)
	}

	// Enter on the default emits navigate-back, never a delete.
	updated, cmd := m.Update(keyMsg("enter"))
	_ = updated
	msgs := drain(cmd)
	if _, ok := containsMsg[dnsDeleteConfirmedMsg](msgs); ok {
		t.Fatal("enter on Cancel must not confirm the delete")
	}
	if _, ok := containsMsg[dnsNavigateBackMsg](msgs); !ok {
		t.Fatal("enter on Cancel should navigate back")
	}
}

func TestDelete_RequiresTwoConfirmations(t *testing.T) {
	m := newDNSRecordDeleteModel("alidns", "example.com", domain.Record{ID: "R1"}, 80, 24)

	// First confirmation: move to Delete and press enter.
	updated, cmd := m.Update(keyMsg("left"))
	m = updated.(dnsRecordDeleteModel)
	updated, cmd = m.Update(keyMsg("enter"))
	m = updated.(dnsRecordDeleteModel)

	if _, ok := containsMsg[dnsDeleteConfirmedMsg](drain(cmd)); ok {
		t.Fatal("a single confirmation must not delete")
	}
	if m.stage != dnsDeleteStageSecond {
		t.Fatalf("stage = %v, want second confirmation prompt", m.stage)
	}
	if m.confirmIdx != 1 {
		t.Fatal("second prompt must reset the default to Cancel")
	}

	// Second confirmation.
	updated, cmd = m.Update(keyMsg("left"))
	m = updated.(dnsRecordDeleteModel)
	_, cmd = m.Update(keyMsg("enter"))

	confirmed, ok := containsMsg[dnsDeleteConfirmedMsg](drain(cmd))
	if !ok {
		t.Fatal("two confirmations should emit the delete")
	}
	if confirmed.record.ID != "R1" || confirmed.domain != "example.com" {
		t.Errorf("confirmed = %+v", confirmed)
	}
}

func TestDelete_EscapeCancels(t *testing.T) {
	m := newDNSRecordDeleteModel("alidns", "example.com", domain.Record{ID: "R1"}, 80, 24)

	_, cmd := m.Update(keyMsg("esc"))
	msgs := drain(cmd)
	if _, ok := containsMsg[dnsNavigateBackMsg](msgs); !ok {
		t.Fatal("esc should navigate back")
	}
}

// --- Set form ---

func TestSetForm_RejectsInvalidAddressOnSubmit(t *testing.T) {
	m := newDNSRecordSetModel("alidns", "example.com", nil, 80, 24)
	m.rrIn.SetValue("www")
	m.ipIn.SetValue("999.1.2.3")
	m.focus = dnsSetFieldIP

	updated, cmd := m.Update(keyMsg("enter"))
	form := updated.(dnsRecordSetModel)

	if _, ok := containsMsg[dnsSetConfirmedMsg](drain(cmd)); ok {
		t.Fatal("invalid address must not submit")
	}
	if form.errMsg == "" {
		t.Error("expected a validation message")
	}
}

func TestSetForm_SubmitsValidInput(t *testing.T) {
	m := newDNSRecordSetModel("alidns", "example.com", nil, 80, 24)
	m.rrIn.SetValue("www")
	m.ipIn.SetValue("203.0.113.5")
	m.focus = dnsSetFieldIP

	_, cmd := m.Update(keyMsg("enter"))

	confirmed, ok := containsMsg[dnsSetConfirmedMsg](drain(cmd))
	if !ok {
		t.Fatal("valid input should submit")
	}
	if confirmed.domain != "example.com" || confirmed.rr != "www" || confirmed.ip != "203.0.113.5" {
		t.Errorf("confirmed = %+v", confirmed)
	}
}

func TestSetForm_PrefillsFromRecord(t *testing.T) {
	rec := &domain.Record{RR: "api", Value: "2001:db8::1"}
	m := newDNSRecordSetModel("alidns", "example.com", rec, 80, 24)

	if m.rrIn.Value() != "api" || m.ipIn.Value() != "2001:db8::1" {
		t.Errorf("prefill = (%q, %q)", m.rrIn.Value(), m.ipIn.Value())
	}
}
