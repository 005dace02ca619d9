package report

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tellerdesk/internal/api"
)

// Mode selects which query form is active.
type Mode int

const (
	ModeAccount Mode = iota
	ModeClient
)

// Phase is the lifecycle of one query mode. A mode is in exactly one phase
// at a time; Error and Success are terminal until the next explicit query.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

// AccountState is the by-account view state. Consumers read it, never
// mutate it.
type AccountState struct {
	Phase  Phase
	Report *api.AccountStatement
	Err    string
}

// ClientState is the by-client view state: two independently fetched
// collections presented together.
type ClientState struct {
	Phase     Phase
	Accounts  []api.Account
	Movements []api.ClientMovementRow
	Err       string
}

// Fetcher is the slice of the ledger API the orchestrator consumes.
type Fetcher interface {
	AccountStatement(ctx context.Context, accountNumber, startDate, endDate string) (*api.AccountStatement, error)
	ListAccountsForClient(ctx context.Context, clientID int64) ([]api.Account, error)
	ClientMovements(ctx context.Context, clientID int64, startDate, endDate string) ([]api.ClientMovementRow, error)
}

// AccountQuery identifies one issued by-account query. Token is the
// generation stamp used to discard stale results.
type AccountQuery struct {
	Token         uint64
	AccountNumber string
	StartDate     string
	EndDate       string
}

// AccountResult is the settled outcome of one by-account fetch.
type AccountResult struct {
	Query  AccountQuery
	Report *api.AccountStatement
	Err    error
}

// ClientQuery identifies one issued by-client query.
type ClientQuery struct {
	Token     uint64
	ClientID  int64
	StartDate string
	EndDate   string
}

// ClientResult is the joined outcome of the dual by-client fetch. Branch
// failures are absorbed into empty collections before this is built, so it
// carries no error.
type ClientResult struct {
	Query     ClientQuery
	Accounts  []api.Account
	Movements []api.ClientMovementRow
}

// Orchestrator drives the two mutually exclusive query modes and owns their
// view state. Start* and Commit* must be called from the single update
// loop; Fetch* are side-effect-free on the orchestrator and safe to run
// from a command goroutine.
type Orchestrator struct {
	fetcher Fetcher
	logger  *zap.Logger

	mode Mode

	account AccountState
	client  ClientState

	selectedClient int64 // 0 means none selected

	accountSeq uint64
	clientSeq  uint64
}

// NewOrchestrator builds an orchestrator over the given API surface.
func NewOrchestrator(f Fetcher, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{fetcher: f, logger: logger.Named("report")}
}

// Mode returns the active query mode.
func (o *Orchestrator) Mode() Mode { return o.mode }

// AccountState returns the current by-account view state.
func (o *Orchestrator) AccountState() AccountState { return o.account }

// ClientState returns the current by-client view state.
func (o *Orchestrator) ClientState() ClientState { return o.client }

// SelectedClient returns the selected client id, 0 when none.
func (o *Orchestrator) SelectedClient() int64 { return o.selectedClient }

// SelectClient records the picker selection.
func (o *Orchestrator) SelectClient(id int64) { o.selectedClient = id }

// Busy reports whether any mode has a query in flight. Advisory only: it
// does not block re-entry, the sequence tokens do.
func (o *Orchestrator) Busy() bool {
	return o.account.Phase == PhaseLoading || o.client.Phase == PhaseLoading
}

// SwitchMode changes the active query mode. Both modes' error messages are
// cleared. Entering client mode discards the previous client-mode data and
// selection; by-account state survives mode switches and is only replaced
// by a new query.
func (o *Orchestrator) SwitchMode(m Mode) {
	o.mode = m

	o.account.Err = ""
	if o.account.Phase == PhaseError {
		o.account.Phase = PhaseIdle
	}
	o.client.Err = ""
	if o.client.Phase == PhaseError {
		o.client.Phase = PhaseIdle
	}

	if m == ModeClient {
		o.selectedClient = 0
		o.client.Accounts = nil
		o.client.Movements = nil
		if o.client.Phase != PhaseLoading {
			o.client.Phase = PhaseIdle
		}
	}
}

// StartAccountQuery validates input and moves the account mode to Loading,
// discarding the previous report eagerly. Returns a ValidationError without
// touching state when the account number is empty.
func (o *Orchestrator) StartAccountQuery(accountNumber, startDate, endDate string) (AccountQuery, error) {
	if accountNumber == "" {
		return AccountQuery{}, &ValidationError{Reason: "Enter an account number."}
	}

	o.accountSeq++
	o.account = AccountState{Phase: PhaseLoading}

	return AccountQuery{
		Token:         o.accountSeq,
		AccountNumber: accountNumber,
		StartDate:     startDate,
		EndDate:       endDate,
	}, nil
}

// FetchAccount performs the statement fetch for one issued query.
func (o *Orchestrator) FetchAccount(ctx context.Context, q AccountQuery) AccountResult {
	rep, err := o.fetcher.AccountStatement(ctx, q.AccountNumber, q.StartDate, q.EndDate)
	if err == nil && rep != nil && rep.Movements == nil {
		rep.Movements = []api.Movement{}
	}
	return AccountResult{Query: q, Report: rep, Err: err}
}

// CommitAccount applies a settled result. Results from a superseded query
// are dropped so only the most recently issued query lands. Returns whether
// the result was committed.
func (o *Orchestrator) CommitAccount(r AccountResult) bool {
	if r.Query.Token != o.accountSeq {
		o.logger.Debug("dropping stale account result",
			zap.Uint64("token", r.Query.Token),
			zap.Uint64("latest", o.accountSeq),
		)
		return false
	}
	if r.Err != nil {
		o.account = AccountState{Phase: PhaseError, Err: r.Err.Error()}
		return true
	}
	rep := r.Report
	if rep == nil {
		rep = &api.AccountStatement{Movements: []api.Movement{}}
	}
	o.account = AccountState{Phase: PhaseSuccess, Report: rep}
	return true
}

// StartClientQuery validates the selection and moves the client mode to
// Loading, discarding previous data eagerly.
func (o *Orchestrator) StartClientQuery(startDate, endDate string) (ClientQuery, error) {
	if o.selectedClient == 0 {
		return ClientQuery{}, &ValidationError{Reason: "Select a client."}
	}

	o.clientSeq++
	o.client = ClientState{Phase: PhaseLoading}

	return ClientQuery{
		Token:     o.clientSeq,
		ClientID:  o.selectedClient,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// FetchClientLedger runs the accounts and movements fetches concurrently
// and joins both before returning. Each branch is individually fault
// tolerant: a failed branch degrades to an empty collection instead of
// failing the query, so the combined view always reflects both branches.
func (o *Orchestrator) FetchClientLedger(ctx context.Context, q ClientQuery) ClientResult {
	var (
		wg        sync.WaitGroup
		accounts  []api.Account
		movements []api.ClientMovementRow
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		got, err := o.fetcher.ListAccountsForClient(ctx, q.ClientID)
		if err != nil {
			o.logger.Warn("accounts fetch failed, degrading to empty",
				zap.Int64("client_id", q.ClientID), zap.Error(err))
			return
		}
		accounts = got
	}()
	go func() {
		defer wg.Done()
		got, err := o.fetcher.ClientMovements(ctx, q.ClientID, q.StartDate, q.EndDate)
		if err != nil {
			o.logger.Warn("movements fetch failed, degrading to empty",
				zap.Int64("client_id", q.ClientID), zap.Error(err))
			return
		}
		movements = got
	}()
	wg.Wait()

	if accounts == nil {
		accounts = []api.Account{}
	}
	if movements == nil {
		movements = []api.ClientMovementRow{}
	}
	return ClientResult{Query: q, Accounts: accounts, Movements: movements}
}

// CommitClientLedger applies the joined result in a single state update.
// Stale results are dropped. Both branches having failed still commits a
// Success with empty data.
func (o *Orchestrator) CommitClientLedger(r ClientResult) bool {
	if r.Query.Token != o.clientSeq {
		o.logger.Debug("dropping stale client ledger result",
			zap.Uint64("token", r.Query.Token),
			zap.Uint64("latest", o.clientSeq),
		)
		return false
	}
	o.client = ClientState{
		Phase:     PhaseSuccess,
		Accounts:  r.Accounts,
		Movements: r.Movements,
	}
	return true
}

// CanExportAccount reports whether the by-account report qualifies for
// document export: a populated report with at least one movement.
func (o *Orchestrator) CanExportAccount() bool {
	return o.account.Phase == PhaseSuccess &&
		o.account.Report != nil &&
		len(o.account.Report.Movements) > 0
}

// CanExportClient reports whether the by-client view qualifies for document
// export: a selected client with at least one movement in range.
func (o *Orchestrator) CanExportClient() bool {
	return o.selectedClient != 0 && len(o.client.Movements) > 0
}

// SetAccountError records a by-account message outside the commit path,
// e.g. when an export attempt fails.
func (o *Orchestrator) SetAccountError(msg string) { o.account.Err = msg }

// SetClientError records a by-client message outside the commit path.
func (o *Orchestrator) SetClientError(msg string) { o.client.Err = msg }

// AccountExportFilename builds the deterministic by-account artifact name,
// so repeated exports for the same range overwrite.
func AccountExportFilename(accountNumber, startDate, endDate string) string {
	return fmt.Sprintf("statement_%s_%s_to_%s.pdf", accountNumber, startDate, endDate)
}

// ClientExportFilename builds the deterministic by-client artifact name.
func ClientExportFilename(clientID int64, startDate, endDate string) string {
	return fmt.Sprintf("movements_client_%d_%s_to_%s.pdf", clientID, startDate, endDate)
}
