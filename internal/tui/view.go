package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"tellerdesk/internal/api"
	"tellerdesk/internal/report"
)

func (m Model) View() string {
	header := m.renderHeader()

	var body string
	if m.orch.Mode() == report.ModeAccount {
		body = m.renderAccountMode()
	} else {
		body = m.renderClientMode()
	}

	main := header + "\n\n" + body

	if m.showPicker && m.picker != nil {
		modal := modalStyle.Render(m.picker.view() + "\n" + renderHelp(m.keys.pickerHelp()))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return modal
	}

	statusLine := m.renderStatus()
	footer := m.renderFooter()
	return m.placeWithFooter(main, statusLine, footer)
}

func (m Model) renderHeader() string {
	accountTab := tabStyle.Render("By Account")
	clientTab := tabStyle.Render("By Client")
	if m.orch.Mode() == report.ModeAccount {
		accountTab = activeTabStyle.Render("By Account")
	} else {
		clientTab = activeTabStyle.Render("By Client")
	}
	return titleStyle.Render(appName+" — Reports") + "  " + accountTab + clientTab
}

func (m Model) renderAccountMode() string {
	form := strings.Join([]string{
		labelStyle.Render("Account") + " " + m.acctInput.View(),
		labelStyle.Render("From") + " " + m.startInput.View(),
		labelStyle.Render("To") + " " + m.endInput.View(),
	}, "   ")

	st := m.orch.AccountState()
	var body string
	switch st.Phase {
	case report.PhaseIdle:
		body = labelStyle.Render("Enter an account number and date range, then press enter.")
	case report.PhaseLoading:
		body = infoStyle.Render("Consulting...")
	case report.PhaseError:
		body = errorStyle.Render(st.Err)
	case report.PhaseSuccess:
		body = m.renderStatement(st.Report)
	}
	if st.Err != "" && st.Phase != report.PhaseError {
		// Export failures land here while the report itself stays up.
		body += "\n\n" + errorStyle.Render(st.Err)
	}

	return form + "\n\n" + sectionStyle.Width(m.sectionWidth()).Render(body)
}

func (m Model) renderStatement(rep *api.AccountStatement) string {
	if rep == nil {
		return ""
	}
	summary := fmt.Sprintf("%s  %s  %s %s",
		rep.ClientName,
		rep.AccountNumber,
		labelStyle.Render("balance"),
		rep.CurrentBalance.StringFixed(2),
	)
	if len(rep.Movements) == 0 {
		return summary + "\n\n" + labelStyle.Render("No movements in the selected range.")
	}
	if m.orch.CanExportAccount() {
		summary += "  " + infoStyle.Render("[ctrl+e exports PDF]")
	}
	return summary + "\n\n" + renderMovementsTable(rep.Movements, m.tableWidth())
}

func (m Model) renderClientMode() string {
	selected := labelStyle.Render("no client selected (ctrl+p)")
	if id := m.orch.SelectedClient(); id != 0 {
		if c, ok := m.dir.Find(id); ok {
			selected = fmt.Sprintf("%s (#%d)", c.FullName, c.ID)
		} else {
			selected = fmt.Sprintf("client #%d", id)
		}
	}

	form := strings.Join([]string{
		labelStyle.Render("Client") + " " + selected,
		labelStyle.Render("From") + " " + m.clientStartInput.View(),
		labelStyle.Render("To") + " " + m.clientEndInput.View(),
	}, "   ")

	st := m.orch.ClientState()
	var body string
	switch st.Phase {
	case report.PhaseIdle:
		body = labelStyle.Render("Pick a client (ctrl+p) and press enter to consult.")
	case report.PhaseLoading:
		body = infoStyle.Render("Consulting...")
	case report.PhaseError:
		body = errorStyle.Render(st.Err)
	case report.PhaseSuccess:
		body = m.renderClientLedger(st)
	}
	if st.Err != "" && st.Phase != report.PhaseError {
		body += "\n\n" + errorStyle.Render(st.Err)
	}

	return form + "\n\n" + sectionStyle.Width(m.sectionWidth()).Render(body)
}

func (m Model) renderClientLedger(st report.ClientState) string {
	var parts []string

	if len(st.Accounts) == 0 {
		parts = append(parts, labelStyle.Render("Client has no accounts."))
	} else {
		parts = append(parts, titleStyle.Render("Accounts"), renderAccountsTable(st.Accounts, m.tableWidth()))
	}

	if len(st.Movements) == 0 {
		parts = append(parts, "", labelStyle.Render("No movements in the selected range."))
	} else {
		header := titleStyle.Render("Movements")
		if m.orch.CanExportClient() {
			header += "  " + infoStyle.Render("[ctrl+e exports PDF]")
		}
		parts = append(parts, "", header, renderClientMovementsTable(st.Movements, m.tableWidth()))
	}

	return strings.Join(parts, "\n")
}

func renderMovementsTable(rows []api.Movement, width int) string {
	dateW, kindW, amountW, balW := 12, 8, 14, 14
	header := fmt.Sprintf("%-*s  %-*s  %*s  %*s", dateW, "Date", kindW, "Kind", amountW, "Amount", balW, "Balance")
	lines := []string{labelStyle.Render(header)}
	for _, row := range rows {
		amount := padLeft(row.Amount.StringFixed(2), amountW)
		if row.Kind == api.MovementCredit {
			amount = creditStyle.Render(amount)
		} else {
			amount = debitStyle.Render(amount)
		}
		line := fmt.Sprintf("%-*s  %-*s  %s  %*s",
			dateW, truncate(row.Date, dateW),
			kindW, truncate(row.Kind, kindW),
			amount,
			balW, row.ResultingBalance.StringFixed(2),
		)
		lines = append(lines, truncate(line, width))
	}
	return strings.Join(lines, "\n")
}

func renderAccountsTable(rows []api.Account, width int) string {
	numW, typeW, balW, stateW := 14, 10, 14, 8
	header := fmt.Sprintf("%-*s  %-*s  %*s  %-*s", numW, "Number", typeW, "Type", balW, "Balance", stateW, "State")
	lines := []string{labelStyle.Render(header)}
	for _, row := range rows {
		state := "active"
		if !row.Active {
			state = "inactive"
		}
		line := fmt.Sprintf("%-*s  %-*s  %*s  %-*s",
			numW, truncate(row.AccountNumber, numW),
			typeW, truncate(row.AccountType, typeW),
			balW, row.CurrentBalance.StringFixed(2),
			stateW, state,
		)
		lines = append(lines, truncate(line, width))
	}
	return strings.Join(lines, "\n")
}

func renderClientMovementsTable(rows []api.ClientMovementRow, width int) string {
	dateW, acctW, beforeW, amountW, afterW := 12, 14, 12, 12, 12
	header := fmt.Sprintf("%-*s  %-*s  %*s  %*s  %*s",
		dateW, "Date", acctW, "Account", beforeW, "Before", amountW, "Amount", afterW, "After")
	lines := []string{labelStyle.Render(header)}
	for _, row := range rows {
		amount := padLeft(row.Amount.StringFixed(2), amountW)
		if row.Amount.IsNegative() {
			amount = debitStyle.Render(amount)
		} else {
			amount = creditStyle.Render(amount)
		}
		line := fmt.Sprintf("%-*s  %-*s  %*s  %s  %*s",
			dateW, truncate(row.Date, dateW),
			acctW, truncate(row.AccountNumber, acctW),
			beforeW, row.BalanceBefore.StringFixed(2),
			amount,
			afterW, row.BalanceAfter.StringFixed(2),
		)
		lines = append(lines, truncate(line, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	text := m.status
	if m.statusErr {
		text = errorStyle.Render(text)
	}
	if m.width == 0 {
		return statusBarStyle.Render(text)
	}
	flat := strings.ReplaceAll(text, "\n", " ")
	return statusBarStyle.Render(padRight(flat, m.width-4))
}

func (m Model) renderFooter() string {
	bindings := m.keys.ShortHelp()
	if m.orch.Mode() == report.ModeClient {
		bindings = m.keys.clientHelp()
	}
	text := renderHelp(bindings)
	if m.width == 0 {
		return footerStyle.Render(text)
	}
	return footerStyle.Render(padRight(text, m.width-4))
}

func (m Model) placeWithFooter(body, statusLine, footer string) string {
	if m.height == 0 {
		return body + "\n\n" + statusLine + "\n" + footer
	}
	contentHeight := m.height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if lipgloss.Height(body) >= contentHeight {
		return body + "\n" + statusLine + "\n" + footer
	}
	main := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, body)
	return main + "\n" + statusLine + "\n" + footer
}

func (m Model) sectionWidth() int {
	if m.width == 0 {
		return 80
	}
	width := m.width - 4
	if width < 40 {
		width = m.width
	}
	return width
}

func (m Model) tableWidth() int {
	w := m.sectionWidth() - sectionStyle.GetHorizontalFrameSize()
	if w < 40 {
		w = 40
	}
	return w
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
