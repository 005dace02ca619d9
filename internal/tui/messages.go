package tui

import "tellerdesk/internal/report"

type directoryLoadedMsg struct {
	result report.DirectoryResult
}

type statementMsg struct {
	result report.AccountResult
}

type clientLedgerMsg struct {
	result report.ClientResult
}

type exportDoneMsg struct {
	mode report.Mode
	path string
	err  error
}
