// Package xrpl implements the ledger network transport over the XRP
// Ledger websocket API, plus test-network faucet provisioning.
package xrpl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/driftware/ledgermcp/internal/logging"
	"github.com/driftware/ledgermcp/pkg/domain"
)

const (
	defaultTimeout      = 20 * time.Second
	defaultPollInterval = 1 * time.Second
)

// Client is a websocket session with one XRP Ledger endpoint. Requests are
// serialized on the socket; the connection registry guarantees a single
// Client per endpoint.
type Client struct {
	endpoint  string
	faucetURL string
	logger    *slog.Logger

	timeout      time.Duration
	pollInterval time.Duration
	httpClient   *http.Client

	mu     sync.Mutex
	ws     *websocket.Conn
	nextID int
}

// Option configures the Client.
type Option func(*Client)

// WithFaucetURL enables faucet provisioning against the given URL.
func WithFaucetURL(url string) Option {
	return func(c *Client) {
		c.faucetURL = url
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds individual websocket requests.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithPollInterval sets the validation polling cadence.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
	}
}

// NewClient creates an unconnected client for a websocket endpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:     endpoint,
		logger:       logging.NewNop(),
		timeout:      defaultTimeout,
		pollInterval: defaultPollInterval,
		httpClient:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connect dials the websocket endpoint. Calling Connect on a live client
// is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws != nil {
		return nil
	}

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial %s: %w", c.endpoint, err)
	}
	c.ws = ws
	c.logger.DebugContext(ctx, "websocket connected", "endpoint", c.endpoint)
	return nil
}

// IsConnected reports whether a websocket session is open.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws != nil
}

// Disconnect closes the websocket session.
func (c *Client) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		return nil
	}

	deadline := time.Now().Add(time.Second)
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	err := c.ws.Close()
	c.ws = nil
	c.logger.DebugContext(ctx, "websocket disconnected", "endpoint", c.endpoint)
	return err
}

// Request performs one websocket API command and returns its result
// object.
func (c *Client) Request(ctx context.Context, command string, params map[string]any) (map[string]any, error) {
	return c.request(ctx, command, params)
}

// request serializes one command/response exchange on the socket. Holding
// the mutex across the full cycle keeps response correlation trivial.
func (c *Client) request(ctx context.Context, command string, params map[string]any) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == nil {
		return nil, fmt.Errorf("not connected to %s", c.endpoint)
	}

	c.nextID++
	id := c.nextID
	payload := map[string]any{
		"id":      id,
		"command": command,
	}
	for k, v := range params {
		payload[k] = v
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.ws.SetWriteDeadline(deadline)
	_ = c.ws.SetReadDeadline(deadline)

	if err := c.ws.WriteJSON(payload); err != nil {
		return nil, fmt.Errorf("write %s request: %w", command, err)
	}

	for {
		var resp map[string]any
		if err := c.ws.ReadJSON(&resp); err != nil {
			return nil, fmt.Errorf("read %s response: %w", command, err)
		}
		// Skip unsolicited stream messages.
		respID, ok := resp["id"].(float64)
		if !ok || int(respID) != id {
			continue
		}

		if status, _ := resp["status"].(string); status == "error" {
			code, _ := resp["error"].(string)
			msg, _ := resp["error_message"].(string)
			if msg == "" {
				msg = code
			}
			return nil, &apiError{Code: code, Message: msg}
		}
		result, _ := resp["result"].(map[string]any)
		return result, nil
	}
}

// apiError is a command-level error returned by the websocket API.
type apiError struct {
	Code    string
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("ledger api error %s: %s", e.Code, e.Message)
}

// SubmitTransaction submits tx in sign-and-submit mode: the network
// derives the signing key from seed and, with autofill, assigns sequence,
// fee and last-valid-ledger. It then awaits validation.
func (c *Client) SubmitTransaction(ctx context.Context, tx domain.Transaction, seed string, autofill bool) (*domain.SubmissionResult, error) {
	params := map[string]any{
		"tx_json":   tx.TxJSON(),
		"secret":    seed,
		"fail_hard": false,
		"offline":   !autofill,
	}
	result, err := c.request(ctx, "submit", params)
	if err != nil {
		return nil, &domain.SubmissionError{Err: err}
	}
	return c.finalize(ctx, result)
}

// SubmitBlob submits a pre-signed transaction blob and awaits validation.
func (c *Client) SubmitBlob(ctx context.Context, blob string) (*domain.SubmissionResult, error) {
	result, err := c.request(ctx, "submit", map[string]any{
		"tx_blob": blob,
	})
	if err != nil {
		return nil, &domain.SubmissionError{Err: err}
	}
	return c.finalize(ctx, result)
}

// finalize interprets the preliminary submit result and awaits inclusion
// in a validated ledger.
func (c *Client) finalize(ctx context.Context, result map[string]any) (*domain.SubmissionResult, error) {
	engineResult, _ := result["engine_result"].(string)
	txJSON, _ := result["tx_json"].(map[string]any)
	hash, _ := txJSON["hash"].(string)

	// tem/tef class codes are definitive rejections; there is nothing to
	// await.
	if strings.HasPrefix(engineResult, "tem") || strings.HasPrefix(engineResult, "tef") {
		return nil, &domain.SubmissionError{Hash: hash, Code: engineResult}
	}
	if hash == "" {
		return nil, &domain.SubmissionError{Code: engineResult, Err: fmt.Errorf("submit response carried no transaction hash")}
	}

	lastLedger := 0
	if v, ok := txJSON["LastLedgerSequence"].(float64); ok {
		lastLedger = int(v)
	}
	return c.awaitValidation(ctx, hash, lastLedger, result)
}

// maxCutoffFailures bounds consecutive ledger_current failures during
// validation polling before the submission is abandoned.
const maxCutoffFailures = 3

// awaitValidation polls the tx command until the transaction appears in a
// validated ledger, or the ledger index passes its last-valid bound.
func (c *Client) awaitValidation(ctx context.Context, hash string, lastLedger int, raw map[string]any) (*domain.SubmissionResult, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	cutoffFailures := 0
	checkCutoff := func() error {
		expired, err := c.pastLastLedger(ctx, lastLedger)
		if err != nil {
			cutoffFailures++
			if cutoffFailures >= maxCutoffFailures {
				return &domain.SubmissionError{Hash: hash, Err: fmt.Errorf("ledger cutoff check failed: %w", err)}
			}
			return nil
		}
		cutoffFailures = 0
		if expired {
			return &domain.SubmissionError{Hash: hash, Err: fmt.Errorf("not validated before ledger %d", lastLedger)}
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, &domain.SubmissionError{Hash: hash, Err: ctx.Err()}
		case <-ticker.C:
		}

		result, err := c.request(ctx, "tx", map[string]any{"transaction": hash})
		if err != nil {
			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Code == "txnNotFound" {
				// Not yet in a ledger; keep polling below the cutoff.
				if cutErr := checkCutoff(); cutErr != nil {
					return nil, cutErr
				}
				continue
			}
			return nil, &domain.SubmissionError{Hash: hash, Err: err}
		}

		validated, _ := result["validated"].(bool)
		if !validated {
			if cutErr := checkCutoff(); cutErr != nil {
				return nil, cutErr
			}
			continue
		}

		code := ""
		if meta, ok := result["meta"].(map[string]any); ok {
			code, _ = meta["TransactionResult"].(string)
		}
		sub := &domain.SubmissionResult{
			Hash:         hash,
			EngineResult: code,
			Validated:    true,
			Raw:          raw,
		}
		if code != "" && !strings.HasPrefix(code, "tes") {
			return nil, &domain.SubmissionError{Hash: hash, Code: code}
		}
		return sub, nil
	}
}

// pastLastLedger reports whether the network's current ledger index has
// passed the transaction's last-valid bound.
func (c *Client) pastLastLedger(ctx context.Context, lastLedger int) (bool, error) {
	if lastLedger == 0 {
		return false, nil
	}
	result, err := c.request(ctx, "ledger_current", nil)
	if err != nil {
		return false, err
	}
	current, _ := result["ledger_current_index"].(float64)
	return int(current) > lastLedger, nil
}
