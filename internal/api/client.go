// Package api provides the authenticated HTTP client for the moneta backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/moneta-cli/moneta/internal/model"
)

const (
	// DefaultBaseURL is the backend address used when the config has none.
	DefaultBaseURL = "http://localhost:5000/api"

	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// Client talks JSON to the moneta backend. A bearer token set via
// SetAuthToken is attached to every subsequent request. The token is guarded
// by a mutex, but concurrent requests are not synchronized against a token
// change — rotations only happen at login/logout boundaries.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger

	mu    sync.RWMutex
	token string
}

// New creates a client for the given base URL. An empty baseURL falls back
// to DefaultBaseURL; a nil logger falls back to slog.Default().
func New(baseURL string, log *slog.Logger) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log,
	}
}

// SetAuthToken sets the bearer token for all subsequent requests.
// An empty token detaches authorization entirely.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	c.token = strings.TrimSpace(token)
	c.mu.Unlock()
}

// Login exchanges credentials for the account and a session token.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, string, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &resp); err != nil {
		return model.User{}, "", err
	}
	return model.User{ID: resp.ID, Name: resp.Name, Email: resp.Email}, resp.Token, nil
}

// Register creates an account and returns it with a session token.
func (c *Client) Register(ctx context.Context, name, email, password string) (model.User, string, error) {
	var resp registerResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users/register", body, &resp); err != nil {
		return model.User{}, "", err
	}
	return resp.User.toModel(), resp.Token, nil
}

// Profile fetches the authenticated account.
func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var w userWire
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &w); err != nil {
		return model.User{}, err
	}
	return w.toModel(), nil
}

// UpdateProfile applies a partial profile update and returns the new account.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (model.User, error) {
	var w userWire
	if err := c.do(ctx, http.MethodPut, "/users/profile", patch, &w); err != nil {
		return model.User{}, err
	}
	return w.toModel(), nil
}

// ListBudgets fetches all budgets for the account.
func (c *Client) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	var wires []budgetWire
	if err := c.do(ctx, http.MethodGet, "/budgets", nil, &wires); err != nil {
		return nil, err
	}
	budgets := make([]model.Budget, len(wires))
	for i, w := range wires {
		budgets[i] = w.toModel()
	}
	return budgets, nil
}

// CreateBudget creates a budget and returns the server's copy.
func (c *Client) CreateBudget(ctx context.Context, in BudgetInput) (model.Budget, error) {
	var w budgetWire
	if err := c.do(ctx, http.MethodPost, "/budgets", in, &w); err != nil {
		return model.Budget{}, err
	}
	return w.toModel(), nil
}

// UpdateBudget updates a budget and returns the server's copy.
func (c *Client) UpdateBudget(ctx context.Context, id string, in BudgetInput) (model.Budget, error) {
	var w budgetWire
	if err := c.do(ctx, http.MethodPut, "/budgets/"+id, in, &w); err != nil {
		return model.Budget{}, err
	}
	return w.toModel(), nil
}

// DeleteBudget deletes a budget.
func (c *Client) DeleteBudget(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/budgets/"+id, nil, nil)
}

// CheckSpending fetches server-computed spending alerts.
func (c *Client) CheckSpending(ctx context.Context) ([]model.SpendingAlert, error) {
	var resp alertsResponse
	if err := c.do(ctx, http.MethodGet, "/budgets/check-spending", nil, &resp); err != nil {
		return nil, err
	}
	alerts := make([]model.SpendingAlert, len(resp.Alerts))
	for i, msg := range resp.Alerts {
		alerts[i] = model.SpendingAlert{Message: msg}
	}
	return alerts, nil
}

// ListTransactions fetches all transactions for the account.
func (c *Client) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	var wires []transactionWire
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, &wires); err != nil {
		return nil, err
	}
	txs := make([]model.Transaction, len(wires))
	for i, w := range wires {
		txs[i] = w.toModel()
	}
	return txs, nil
}

// CreateTransaction creates a transaction and returns the server's copy.
func (c *Client) CreateTransaction(ctx context.Context, in TransactionInput) (model.Transaction, error) {
	var w transactionWire
	if err := c.do(ctx, http.MethodPost, "/transactions", in, &w); err != nil {
		return model.Transaction{}, err
	}
	return w.toModel(), nil
}

// UpdateTransaction updates a transaction and returns the server's copy.
func (c *Client) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (model.Transaction, error) {
	var w transactionWire
	if err := c.do(ctx, http.MethodPut, "/transactions/"+id, in, &w); err != nil {
		return model.Transaction{}, err
	}
	return w.toModel(), nil
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+id, nil, nil)
}

// do performs one JSON request. Non-2xx responses and transport failures are
// classified, logged with their kind, and returned as *Error. No retries —
// propagation is the caller's responsibility.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return c.fail(method, path, &Error{Kind: KindRequestSetup, cause: err})
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return c.fail(method, path, &Error{Kind: KindRequestSetup, cause: err})
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(method, path, &Error{Kind: KindNetworkError, cause: err})
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return c.fail(method, path, &Error{Kind: KindNetworkError, cause: err})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(method, path, &Error{
			Kind:    classifyStatus(resp.StatusCode),
			Status:  resp.StatusCode,
			Message: serverMessage(raw),
		})
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("api: parsing %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// fail logs a classified error with its category before handing it back.
func (c *Client) fail(method, path string, e *Error) error {
	c.log.Error("api request failed",
		"kind", string(e.Kind),
		"method", method,
		"path", path,
		"status", e.Status,
		"err", e,
	)
	return e
}

// serverMessage pulls the human-readable message out of an error body.
// Express-style backends send {"message": "..."}; anything else is kept raw.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
