package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tellerdesk/internal/report"
)

func (m Model) loadDirectoryCmd() tea.Cmd {
	dir := m.dir
	return func() tea.Msg {
		return directoryLoadedMsg{result: dir.Fetch(context.Background())}
	}
}

func (m Model) fetchAccountCmd(q report.AccountQuery) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		return statementMsg{result: orch.FetchAccount(context.Background(), q)}
	}
}

func (m Model) fetchClientLedgerCmd(q report.ClientQuery) tea.Cmd {
	orch := m.orch
	return func() tea.Msg {
		return clientLedgerMsg{result: orch.FetchClientLedger(context.Background(), q)}
	}
}

// exportAccountCmd re-queries the statement with the artifact included and
// saves the document. A response without pdfBase64 is the backend's
// authoritative "nothing to export" — surfaced as the domain message even
// when the JSON query previously showed movements.
func (m Model) exportAccountCmd(accountNumber, startDate, endDate string) tea.Cmd {
	client, exporter := m.client, m.exporter
	return func() tea.Msg {
		rep, err := client.AccountStatementWithArtifact(context.Background(), accountNumber, startDate, endDate)
		if err != nil {
			return exportDoneMsg{mode: report.ModeAccount, err: err}
		}
		if rep == nil || rep.PDFBase64 == "" {
			return exportDoneMsg{mode: report.ModeAccount, err: &report.DomainError{Reason: report.NoMovementsMessage}}
		}
		path, err := exporter.Export(rep.PDFBase64, report.AccountExportFilename(accountNumber, startDate, endDate))
		return exportDoneMsg{mode: report.ModeAccount, path: path, err: err}
	}
}

// exportClientCmd fetches the client document and saves it. A nil artifact
// (204/empty body) is the backend's "no movements in range"; a body that
// decoded without pdfBase64 is a backend defect and reported as an error.
func (m Model) exportClientCmd(clientID int64, startDate, endDate string) tea.Cmd {
	client, exporter := m.client, m.exporter
	return func() tea.Msg {
		res, err := client.ClientMovementsArtifact(context.Background(), clientID, startDate, endDate)
		if err != nil {
			return exportDoneMsg{mode: report.ModeClient, err: err}
		}
		if res == nil {
			return exportDoneMsg{mode: report.ModeClient, err: &report.DomainError{Reason: report.NoMovementsMessage}}
		}
		if res.PDFBase64 == "" {
			return exportDoneMsg{mode: report.ModeClient, err: errors.New(report.MissingArtifactMessage)}
		}
		path, err := exporter.Export(res.PDFBase64, report.ClientExportFilename(clientID, startDate, endDate))
		return exportDoneMsg{mode: report.ModeClient, path: path, err: err}
	}
}
