package report

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tellerdesk/internal/api"
)

type fakeFetcher struct {
	statement    *api.AccountStatement
	statementErr error

	accounts    []api.Account
	accountsErr error

	movements    []api.ClientMovementRow
	movementsErr error
}

func (f *fakeFetcher) AccountStatement(_ context.Context, _, _, _ string) (*api.AccountStatement, error) {
	return f.statement, f.statementErr
}

func (f *fakeFetcher) ListAccountsForClient(_ context.Context, _ int64) ([]api.Account, error) {
	return f.accounts, f.accountsErr
}

func (f *fakeFetcher) ClientMovements(_ context.Context, _ int64, _, _ string) ([]api.ClientMovementRow, error) {
	return f.movements, f.movementsErr
}

func sampleStatement() *api.AccountStatement {
	return &api.AccountStatement{
		AccountNumber:  "478758",
		ClientName:     "Jose Lema",
		CurrentBalance: decimal.NewFromInt(100),
		Movements: []api.Movement{
			{Date: "2026-01-10", Kind: api.MovementCredit, Amount: decimal.NewFromInt(100), ResultingBalance: decimal.NewFromInt(100)},
		},
	}
}

func TestStartAccountQueryRequiresAccountNumber(t *testing.T) {
	o := NewOrchestrator(&fakeFetcher{}, nil)

	_, err := o.StartAccountQuery("", "2026-01-10", "2026-01-10")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, PhaseIdle, o.AccountState().Phase)
}

func TestAccountQuerySuccess(t *testing.T) {
	f := &fakeFetcher{statement: sampleStatement()}
	o := NewOrchestrator(f, nil)

	q, err := o.StartAccountQuery("478758", "2026-01-10", "2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, PhaseLoading, o.AccountState().Phase)
	assert.True(t, o.Busy())

	res := o.FetchAccount(context.Background(), q)
	require.True(t, o.CommitAccount(res))

	st := o.AccountState()
	assert.Equal(t, PhaseSuccess, st.Phase)
	require.NotNil(t, st.Report)
	assert.Equal(t, "Jose Lema", st.Report.ClientName)
	assert.Len(t, st.Report.Movements, 1)
	assert.False(t, o.Busy())
	assert.True(t, o.CanExportAccount())
}

func TestAccountQueryNormalizesMissingMovements(t *testing.T) {
	f := &fakeFetcher{statement: &api.AccountStatement{AccountNumber: "478758"}}
	o := NewOrchestrator(f, nil)

	q, err := o.StartAccountQuery("478758", "2026-01-10", "2026-01-10")
	require.NoError(t, err)

	res := o.FetchAccount(context.Background(), q)
	require.True(t, o.CommitAccount(res))

	st := o.AccountState()
	require.NotNil(t, st.Report)
	assert.NotNil(t, st.Report.Movements)
	assert.Empty(t, st.Report.Movements)
	assert.False(t, o.CanExportAccount())
}

func TestAccountQueryErrorSurfacesBackendMessage(t *testing.T) {
	f := &fakeFetcher{statementErr: &api.Error{Status: 404, Message: "account not found"}}
	o := NewOrchestrator(f, nil)

	q, err := o.StartAccountQuery("999999", "2026-01-10", "2026-01-10")
	require.NoError(t, err)

	res := o.FetchAccount(context.Background(), q)
	require.True(t, o.CommitAccount(res))

	st := o.AccountState()
	assert.Equal(t, PhaseError, st.Phase)
	assert.Equal(t, "account not found", st.Err)
	assert.Nil(t, st.Report)
	assert.False(t, o.CanExportAccount())
}

func TestStaleAccountResultIsDropped(t *testing.T) {
	f := &fakeFetcher{statement: sampleStatement()}
	o := NewOrchestrator(f, nil)

	q1, err := o.StartAccountQuery("478758", "2026-01-01", "2026-01-05")
	require.NoError(t, err)
	res1 := o.FetchAccount(context.Background(), q1)

	q2, err := o.StartAccountQuery("478758", "2026-01-10", "2026-01-10")
	require.NoError(t, err)
	res2 := o.FetchAccount(context.Background(), q2)

	// The older response arrives last; it must not overwrite the newer one.
	assert.True(t, o.CommitAccount(res2))
	assert.False(t, o.CommitAccount(res1))
	assert.Equal(t, PhaseSuccess, o.AccountState().Phase)
}

func TestStartClientQueryRequiresSelection(t *testing.T) {
	o := NewOrchestrator(&fakeFetcher{}, nil)

	_, err := o.StartClientQuery("2026-01-10", "2026-01-10")

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestClientQueryJoinsBothBranches(t *testing.T) {
	f := &fakeFetcher{
		accounts: []api.Account{{AccountNumber: "478758", AccountType: api.AccountTypeSavings}},
		movements: []api.ClientMovementRow{
			{Date: "2026-01-10", AccountNumber: "478758", Amount: decimal.NewFromInt(100)},
		},
	}
	o := NewOrchestrator(f, nil)
	o.SelectClient(1)

	q, err := o.StartClientQuery("2026-01-10", "2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, PhaseLoading, o.ClientState().Phase)

	res := o.FetchClientLedger(context.Background(), q)
	require.True(t, o.CommitClientLedger(res))

	st := o.ClientState()
	assert.Equal(t, PhaseSuccess, st.Phase)
	assert.Len(t, st.Accounts, 1)
	assert.Len(t, st.Movements, 1)
	assert.True(t, o.CanExportClient())
}

func TestClientQueryAbsorbsAccountsFailure(t *testing.T) {
	f := &fakeFetcher{
		accountsErr: errors.New("boom"),
		movements: []api.ClientMovementRow{
			{Date: "2026-01-10", AccountNumber: "478758", Amount: decimal.NewFromInt(100)},
			{Date: "2026-01-10", AccountNumber: "478758", Amount: decimal.NewFromInt(-50)},
		},
	}
	o := NewOrchestrator(f, nil)
	o.SelectClient(1)

	q, err := o.StartClientQuery("2026-01-10", "2026-01-10")
	require.NoError(t, err)

	res := o.FetchClientLedger(context.Background(), q)
	require.True(t, o.CommitClientLedger(res))

	st := o.ClientState()
	assert.Equal(t, PhaseSuccess, st.Phase)
	assert.Empty(t, st.Accounts)
	assert.Len(t, st.Movements, 2)
	assert.Empty(t, st.Err)
}

func TestClientQueryAbsorbsTotalFailure(t *testing.T) {
	f := &fakeFetcher{
		accountsErr:  errors.New("accounts down"),
		movementsErr: errors.New("movements down"),
	}
	o := NewOrchestrator(f, nil)
	o.SelectClient(7)

	q, err := o.StartClientQuery("2026-01-10", "2026-01-10")
	require.NoError(t, err)

	res := o.FetchClientLedger(context.Background(), q)
	require.True(t, o.CommitClientLedger(res))

	st := o.ClientState()
	assert.Equal(t, PhaseSuccess, st.Phase)
	assert.NotNil(t, st.Accounts)
	assert.Empty(t, st.Accounts)
	assert.NotNil(t, st.Movements)
	assert.Empty(t, st.Movements)
	assert.False(t, o.CanExportClient())
}

func TestStaleClientResultIsDropped(t *testing.T) {
	f := &fakeFetcher{movements: []api.ClientMovementRow{{Date: "2026-01-10"}}}
	o := NewOrchestrator(f, nil)
	o.SelectClient(1)

	q1, err := o.StartClientQuery("2026-01-01", "2026-01-05")
	require.NoError(t, err)
	res1 := o.FetchClientLedger(context.Background(), q1)

	q2, err := o.StartClientQuery("2026-01-10", "2026-01-10")
	require.NoError(t, err)
	res2 := o.FetchClientLedger(context.Background(), q2)

	assert.True(t, o.CommitClientLedger(res2))
	assert.False(t, o.CommitClientLedger(res1))
}

func TestSwitchModeClearsErrorsKeepsAccountReport(t *testing.T) {
	f := &fakeFetcher{statement: sampleStatement()}
	o := NewOrchestrator(f, nil)

	q, err := o.StartAccountQuery("478758", "2026-01-10", "2026-01-10")
	require.NoError(t, err)
	require.True(t, o.CommitAccount(o.FetchAccount(context.Background(), q)))
	o.SetAccountError("old account message")
	o.SetClientError("old client message")

	o.SwitchMode(ModeClient)

	assert.Equal(t, ModeClient, o.Mode())
	assert.Empty(t, o.AccountState().Err)
	assert.Empty(t, o.ClientState().Err)
	// By-account report survives the switch.
	require.NotNil(t, o.AccountState().Report)
	assert.Equal(t, PhaseSuccess, o.AccountState().Phase)

	o.SwitchMode(ModeAccount)
	assert.Equal(t, PhaseSuccess, o.AccountState().Phase)
	require.NotNil(t, o.AccountState().Report)
}

func TestEnteringClientModeDiscardsClientData(t *testing.T) {
	f := &fakeFetcher{movements: []api.ClientMovementRow{{Date: "2026-01-10"}}}
	o := NewOrchestrator(f, nil)
	o.SelectClient(3)

	q, err := o.StartClientQuery("2026-01-10", "2026-01-10")
	require.NoError(t, err)
	require.True(t, o.CommitClientLedger(o.FetchClientLedger(context.Background(), q)))
	require.True(t, o.CanExportClient())

	o.SwitchMode(ModeAccount)
	o.SwitchMode(ModeClient)

	st := o.ClientState()
	assert.Equal(t, PhaseIdle, st.Phase)
	assert.Empty(t, st.Accounts)
	assert.Empty(t, st.Movements)
	assert.Zero(t, o.SelectedClient())
	assert.False(t, o.CanExportClient())
}

func TestExportEligibilityTracksMovementCount(t *testing.T) {
	o := NewOrchestrator(&fakeFetcher{}, nil)

	// Nothing loaded: not exportable in either mode.
	assert.False(t, o.CanExportAccount())
	assert.False(t, o.CanExportClient())

	// Selected client but zero movements: still gated off.
	o.SelectClient(1)
	assert.False(t, o.CanExportClient())
}

func TestExportFilenamesAreDeterministic(t *testing.T) {
	assert.Equal(t,
		"statement_478758_2026-01-10_to_2026-01-10.pdf",
		AccountExportFilename("478758", "2026-01-10", "2026-01-10"),
	)
	assert.Equal(t,
		"movements_client_7_2026-01-01_to_2026-02-01.pdf",
		ClientExportFilename(7, "2026-01-01", "2026-02-01"),
	)
}
