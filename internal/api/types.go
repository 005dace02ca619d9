package api

import "github.com/shopspring/decimal"

// Account types as the ledger backend reports them.
const (
	AccountTypeSavings  = "Savings"
	AccountTypeChecking = "Checking"
)

// Movement kinds.
const (
	MovementCredit = "Credit"
	MovementDebit  = "Debit"
)

// Client is a bank customer. Owned by the backend; read-only here.
type Client struct {
	ID         int64  `json:"clientId"`
	FullName   string `json:"fullName"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	NationalID string `json:"nationalId"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Active     bool   `json:"active"`
}

// Account is a financial account owned by a client.
type Account struct {
	ID             int64           `json:"accountId"`
	AccountNumber  string          `json:"accountNumber"`
	AccountType    string          `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Active         bool            `json:"active"`
	OwnerClientID  int64           `json:"clientId"`
}

// Movement is an immutable ledger entry. Amount is the signed delta the
// backend applied; ResultingBalance is the balance immediately after it.
type Movement struct {
	Date             string          `json:"date"`
	Kind             string          `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	ResultingBalance decimal.Decimal `json:"resultingBalance"`
}

// AccountStatement is the date-ranged statement for one account.
// PDFBase64 is populated only by the artifact variant of the statement
// endpoint, and only when the range has qualifying movements.
type AccountStatement struct {
	AccountNumber  string          `json:"accountNumber"`
	ClientName     string          `json:"clientName"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Movements      []Movement      `json:"movements"`
	PDFBase64      string          `json:"pdfBase64,omitempty"`
}

// ClientMovementRow is one movement in the by-client report. The backend
// joins in the owning client and account; the console does not re-validate
// that join.
type ClientMovementRow struct {
	Date          string          `json:"date"`
	ClientName    string          `json:"clientName"`
	AccountNumber string          `json:"accountNumber"`
	AccountType   string          `json:"accountType"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Active        bool            `json:"active"`
}

// ArtifactResponse carries the base64 PDF for the by-client export endpoint.
// An empty body from the backend means no qualifying movements.
type ArtifactResponse struct {
	PDFBase64 string `json:"pdfBase64"`
}
