package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tellerdesk/internal/api"
	"tellerdesk/internal/report"
)

const appName = "Teller Desk"

// Options carry the query-form defaults from configuration.
type Options struct {
	DefaultAccount   string
	DefaultStartDate string
	DefaultEndDate   string
}

// Model is the reports console. All state transitions happen in Update;
// commands only fetch and report back through typed messages.
type Model struct {
	client   *api.LedgerClient
	orch     *report.Orchestrator
	dir      *report.Directory
	exporter *report.Exporter
	logger   *zap.Logger
	keys     keyMap

	// by-account form
	acctInput  textinput.Model
	startInput textinput.Model
	endInput   textinput.Model

	// by-client form; dates start synchronized with the by-account form
	clientStartInput textinput.Model
	clientEndInput   textinput.Model

	focus int

	picker     *clientPicker
	showPicker bool

	status    string
	statusErr bool
	exporting bool

	width  int
	height int
}

// New wires the console together.
func New(client *api.LedgerClient, exportDir string, opts Options, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	newDateInput := func(value string) textinput.Model {
		in := textinput.New()
		in.Placeholder = "YYYY-MM-DD"
		in.CharLimit = 10
		in.Width = 12
		in.SetValue(value)
		return in
	}

	acct := textinput.New()
	acct.Placeholder = "account number"
	acct.CharLimit = 20
	acct.Width = 16
	acct.SetValue(opts.DefaultAccount)
	acct.Focus()

	return Model{
		client:           client,
		orch:             report.NewOrchestrator(client, logger),
		dir:              report.NewDirectory(client, logger),
		exporter:         report.NewExporter(exportDir, logger),
		logger:           logger.Named("tui"),
		keys:             newKeyMap(),
		acctInput:        acct,
		startInput:       newDateInput(opts.DefaultStartDate),
		endInput:         newDateInput(opts.DefaultEndDate),
		clientStartInput: newDateInput(opts.DefaultStartDate),
		clientEndInput:   newDateInput(opts.DefaultEndDate),
	}
}

// Init loads the client directory so the picker always has data.
func (m Model) Init() tea.Cmd {
	return m.loadDirectoryCmd()
}

// fieldCount is the number of focusable inputs in the active mode.
func (m Model) fieldCount() int {
	if m.orch.Mode() == report.ModeAccount {
		return 3
	}
	return 2
}

// focusedInput returns a pointer to the currently focused input.
func (m *Model) focusedInput() *textinput.Model {
	if m.orch.Mode() == report.ModeAccount {
		switch m.focus {
		case 0:
			return &m.acctInput
		case 1:
			return &m.startInput
		default:
			return &m.endInput
		}
	}
	switch m.focus {
	case 0:
		return &m.clientStartInput
	default:
		return &m.clientEndInput
	}
}

func (m *Model) refocusInputs() {
	for _, in := range []*textinput.Model{&m.acctInput, &m.startInput, &m.endInput, &m.clientStartInput, &m.clientEndInput} {
		in.Blur()
	}
	m.focusedInput().Focus()
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}
