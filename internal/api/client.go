package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Config holds transport settings for the ledger backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// BreakerThreshold is the consecutive-failure count that trips the
	// circuit breaker.
	BreakerThreshold uint32
}

// LedgerClient issues requests against the ledger REST backend. All calls
// run through a circuit breaker; a tripped breaker surfaces as a transport
// error like any other.
type LedgerClient struct {
	baseURL string
	httpc   *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewLedgerClient builds a client for the given backend.
func NewLedgerClient(cfg Config, logger *zap.Logger) *LedgerClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	threshold := cfg.BreakerThreshold
	if threshold == 0 {
		threshold = 5
	}
	settings := gobreaker.Settings{
		Name:    "ledger-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}
	return &LedgerClient{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger.Named("api"),
	}
}

// ListClients fetches the full customer list.
func (c *LedgerClient) ListClients(ctx context.Context) ([]Client, error) {
	var out []Client
	if err := c.getJSON(ctx, "/clients", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAccountsForClient fetches the accounts owned by one client.
func (c *LedgerClient) ListAccountsForClient(ctx context.Context, clientID int64) ([]Account, error) {
	var out []Account
	path := "/accounts/client/" + strconv.FormatInt(clientID, 10)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMovementsForAccount fetches every movement recorded on one account.
func (c *LedgerClient) ListMovementsForAccount(ctx context.Context, accountNumber string) ([]Movement, error) {
	var out []Movement
	path := "/movements/account/" + url.PathEscape(accountNumber)
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountStatement fetches the JSON statement for an account and date range.
func (c *LedgerClient) AccountStatement(ctx context.Context, accountNumber, startDate, endDate string) (*AccountStatement, error) {
	return c.accountStatement(ctx, accountNumber, startDate, endDate, false)
}

// AccountStatementWithArtifact fetches the statement with the server-side
// PDF included. PDFBase64 stays empty when the backend suppressed the
// document (no qualifying movements in range).
func (c *LedgerClient) AccountStatementWithArtifact(ctx context.Context, accountNumber, startDate, endDate string) (*AccountStatement, error) {
	return c.accountStatement(ctx, accountNumber, startDate, endDate, true)
}

func (c *LedgerClient) accountStatement(ctx context.Context, accountNumber, startDate, endDate string, includePDF bool) (*AccountStatement, error) {
	q := url.Values{}
	q.Set("accountNumber", accountNumber)
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	if includePDF {
		q.Set("includePdf", "true")
	}
	var out AccountStatement
	if err := c.getJSON(ctx, "/reports/statement", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClientMovements fetches the movements for one client inside a date range.
func (c *LedgerClient) ClientMovements(ctx context.Context, clientID int64, startDate, endDate string) ([]ClientMovementRow, error) {
	q := clientRangeQuery(clientID, startDate, endDate)
	var out []ClientMovementRow
	if err := c.getJSON(ctx, "/reports/client-movements", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClientMovementsArtifact fetches the PDF document for a client's movements
// in range. A 204 or empty body is valid and returns nil: the backend
// generated nothing for the range. A non-empty body is decoded as-is, so the
// caller can tell "nothing to export" apart from a response that came back
// without the pdfBase64 field.
func (c *LedgerClient) ClientMovementsArtifact(ctx context.Context, clientID int64, startDate, endDate string) (*ArtifactResponse, error) {
	q := clientRangeQuery(clientID, startDate, endDate)
	body, status, err := c.do(ctx, "/reports/client-movements/pdf", q)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || len(body) == 0 {
		return nil, nil
	}
	out := &ArtifactResponse{}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("decode artifact response: %w", err)
	}
	return out, nil
}

func clientRangeQuery(clientID int64, startDate, endDate string) url.Values {
	q := url.Values{}
	q.Set("clientId", strconv.FormatInt(clientID, 10))
	q.Set("startDate", startDate)
	q.Set("endDate", endDate)
	return q
}

func (c *LedgerClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	body, _, err := c.do(ctx, path, query)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// do issues one GET through the breaker and returns the raw body and status.
// Non-2xx responses become *Error carrying the backend's {message} when one
// was provided.
func (c *LedgerClient) do(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	requestID := uuid.NewString()
	start := time.Now()

	res, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("X-Request-ID", requestID)

		resp, err := c.httpc.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, decodeError(resp.StatusCode, body)
		}
		return rawResponse{status: resp.StatusCode, body: body}, nil
	})

	elapsed := time.Since(start)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("request_id", requestID),
			zap.String("path", path),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return nil, apiErr.Status, apiErr
		}
		// Network failure, timeout, or open breaker: no backend message to
		// surface, only the generic transport error.
		return nil, 0, &Error{}
	}

	r := res.(rawResponse)
	c.logger.Debug("request ok",
		zap.String("request_id", requestID),
		zap.String("path", path),
		zap.Int("status", r.status),
		zap.Duration("elapsed", elapsed),
		zap.Int("bytes", len(r.body)),
	)
	return r.body, r.status, nil
}

type rawResponse struct {
	status int
	body   []byte
}

func decodeError(status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	return &Error{Status: status, Message: payload.Message}
}
