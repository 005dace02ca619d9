package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tellerdesk/internal/report"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case directoryLoadedMsg:
		m.dir.Commit(msg.result)
		if m.dir.Err() != "" {
			m.setStatus("Could not load clients: "+m.dir.Err(), true)
		} else {
			m.setStatus(fmt.Sprintf("%d clients loaded.", len(m.dir.Clients())), false)
		}
		return m, nil

	case statementMsg:
		if !m.orch.CommitAccount(msg.result) {
			return m, nil
		}
		if st := m.orch.AccountState(); st.Phase == report.PhaseError {
			m.setStatus(st.Err, true)
		} else {
			m.setStatus("Statement ready.", false)
		}
		return m, nil

	case clientLedgerMsg:
		if !m.orch.CommitClientLedger(msg.result) {
			return m, nil
		}
		m.setStatus("Client ledger ready.", false)
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			var dom *report.DomainError
			if errors.As(msg.err, &dom) {
				// Gating condition, not a failure: informational styling.
				m.setStatus(dom.Reason, false)
				return m, nil
			}
			// Real failures stick to the mode's panel, not just the
			// transient status bar.
			if msg.mode == report.ModeAccount {
				m.orch.SetAccountError(msg.err.Error())
			} else {
				m.orch.SetClientError(msg.err.Error())
			}
			m.setStatus("Export failed: "+msg.err.Error(), true)
			return m, nil
		}
		m.setStatus("Saved "+msg.path, false)
		return m, nil

	case tea.KeyMsg:
		if m.showPicker {
			return m.updatePicker(msg)
		}
		return m.updateMain(msg)
	}

	return m, nil
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleMode):
		if m.orch.Mode() == report.ModeAccount {
			m.orch.SwitchMode(report.ModeClient)
		} else {
			m.orch.SwitchMode(report.ModeAccount)
		}
		m.focus = 0
		m.refocusInputs()
		m.setStatus("", false)
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.focus = (m.focus + 1) % m.fieldCount()
		m.refocusInputs()
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.focus = (m.focus - 1 + m.fieldCount()) % m.fieldCount()
		m.refocusInputs()
		return m, nil

	case key.Matches(msg, m.keys.Consult):
		return m.consult()

	case key.Matches(msg, m.keys.Export):
		return m.export()

	case key.Matches(msg, m.keys.PickClient):
		if m.orch.Mode() != report.ModeClient {
			return m, nil
		}
		m.picker = newClientPicker(m.dir.Clients())
		m.showPicker = true
		return m, nil
	}

	in := m.focusedInput()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.showPicker = false
		return m, nil
	case "enter":
		if id, name := m.picker.selected(); id != 0 {
			m.orch.SelectClient(id)
			m.setStatus("Selected "+name+".", false)
		}
		m.showPicker = false
		return m, nil
	}
	return m, m.picker.update(msg)
}

func (m Model) consult() (tea.Model, tea.Cmd) {
	if m.orch.Mode() == report.ModeAccount {
		q, err := m.orch.StartAccountQuery(
			strings.TrimSpace(m.acctInput.Value()),
			strings.TrimSpace(m.startInput.Value()),
			strings.TrimSpace(m.endInput.Value()),
		)
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.setStatus("Consulting...", false)
		return m, m.fetchAccountCmd(q)
	}

	q, err := m.orch.StartClientQuery(
		strings.TrimSpace(m.clientStartInput.Value()),
		strings.TrimSpace(m.clientEndInput.Value()),
	)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.setStatus("Consulting...", false)
	return m, m.fetchClientLedgerCmd(q)
}

func (m Model) export() (tea.Model, tea.Cmd) {
	if m.exporting {
		return m, nil
	}

	if m.orch.Mode() == report.ModeAccount {
		if !m.orch.CanExportAccount() {
			m.setStatus(report.NoMovementsMessage, false)
			return m, nil
		}
		m.exporting = true
		m.orch.SetAccountError("")
		m.setStatus("Generating document...", false)
		return m, m.exportAccountCmd(
			strings.TrimSpace(m.acctInput.Value()),
			strings.TrimSpace(m.startInput.Value()),
			strings.TrimSpace(m.endInput.Value()),
		)
	}

	if m.orch.SelectedClient() == 0 {
		m.setStatus("Select a client.", true)
		return m, nil
	}
	if !m.orch.CanExportClient() {
		m.setStatus(report.NoMovementsMessage, false)
		return m, nil
	}
	m.exporting = true
	m.orch.SetClientError("")
	m.setStatus("Generating document...", false)
	return m, m.exportClientCmd(
		m.orch.SelectedClient(),
		strings.TrimSpace(m.clientStartInput.Value()),
		strings.TrimSpace(m.clientEndInput.Value()),
	)
}
