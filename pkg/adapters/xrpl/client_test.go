package xrpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/ledgermcp/pkg/domain"
)

// fakeLedger is a minimal websocket API endpoint: it answers each command
// through the supplied handler, echoing the request id.
func fakeLedger(t *testing.T, handle func(command string, req map[string]any) map[string]any) *Client {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer ws.Close()
		for {
			var req map[string]any
			if err := ws.ReadJSON(&req); err != nil {
				return
			}
			command, _ := req["command"].(string)
			resp := handle(command, req)
			resp["id"] = req["id"]
			if _, ok := resp["status"]; !ok {
				resp["status"] = "success"
			}
			if err := ws.WriteJSON(resp); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)

	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	return NewClient(endpoint, WithPollInterval(5*time.Millisecond))
}

func TestClient_ConnectIsIdempotent(t *testing.T) {
	c := fakeLedger(t, func(command string, req map[string]any) map[string]any {
		return map[string]any{"result": map[string]any{}}
	})
	ctx := context.Background()

	require.NoError(t, c.Connect(ctx))
	require.NoError(t, c.Connect(ctx))
	assert.True(t, c.IsConnected())

	require.NoError(t, c.Disconnect(ctx))
	assert.False(t, c.IsConnected())
	require.NoError(t, c.Disconnect(ctx))
}

func TestClient_RequestReturnsResult(t *testing.T) {
	c := fakeLedger(t, func(command string, req map[string]any) map[string]any {
		return map[string]any{"result": map[string]any{"echo": command}}
	})
	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	defer c.Disconnect(ctx)

	result, err := c.Request(ctx, "server_info", nil)
	require.NoError(t, err)
	assert.Equal(t, "server_info", result["echo"])
}

func TestClient_RequestSurfacesAPIError(t *testing.T) {
	c := fakeLedger(t, func(command string, req map[string]any) map[string]any {
		return map[string]any{
			"status":        "error",
			"error":         "actNotFound",
			"error_message": "Account not found.",
		}
	})
	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	defer c.Disconnect(ctx)

	_, err := c.Request(ctx, "account_info", map[string]any{"account": "rMissing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actNotFound")
}

func TestClient_SubmitTransactionAwaitsValidation(t *testing.T) {
	const hash = "A05F4C9B3A1E2D4F"
	txPolls := 0
	c := fakeLedger(t, func(command string, req map[string]any) map[string]any {
		switch command {
		case "submit":
			return map[string]any{"result": map[string]any{
				"engine_result": "tesSUCCESS",
				"tx_json": map[string]any{
					"hash":               hash,
					"LastLedgerSequence": float64(100),
				},
			}}
		case "tx":
			txPolls++
			if txPolls < 2 {
				// First poll: in a ledger but not yet validated.
				return map[string]any{"result": map[string]any{"validated": false}}
			}
			return map[string]any{"result": map[string]any{
				"validated": true,
				"meta":      map[string]any{"TransactionResult": "tesSUCCESS"},
			}}
		case "ledger_current":
			return map[string]any{"result": map[string]any{"ledger_current_index": float64(10)}}
		default:
			return map[string]any{"result": map[string]any{}}
		}
	})
	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	defer c.Disconnect(ctx)

	tx := domain.Transaction{Type: "Payment", Account: "rSender", Fields: map[string]any{
		"Destination": "rReceiver",
		"Amount":      "1000000",
	}}
	res, err := c.SubmitTransaction(ctx, tx, "sSeed", true)
	require.NoError(t, err)
	assert.Equal(t, hash, res.Hash)
	assert.Equal(t, "tesSUCCESS", res.EngineResult)
	assert.True(t, res.Validated)
	assert.GreaterOrEqual(t, txPolls, 2)
}

func TestClient_SubmitRejectsMalformedImmediately(t *testing.T) {
	c := fakeLedger(t, func(command string, req map[string]any) map[string]any {
		assert.Equal(t, "submit", command, "a definitive rejection must not be polled")
		return map[string]any{"result": map[string]any{
			"engine_result": "temBAD_FEE",
			"tx_json":       map[string]any{"hash": "DEAD"},
		}}
	})
	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	defer c.Disconnect(ctx)

	_, err := c.SubmitBlob(ctx, "1200002280000000")
	var subErr *domain.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "temBAD_FEE", subErr.Code)
	assert.Equal(t, "DEAD", subErr.Hash)
}

func TestClient_SubmitFailsWhenCutoffCheckKeepsFailing(t *testing.T) {
	c := fakeLedger(t, func(command string, req map[string]any) map[string]any {
		switch command {
		case "submit":
			return map[string]any{"result": map[string]any{
				"engine_result": "tesSUCCESS",
				"tx_json": map[string]any{
					"hash":               "FEED",
					"LastLedgerSequence": float64(50),
				},
			}}
		case "tx":
			return map[string]any{
				"status": "error",
				"error":  "txnNotFound",
			}
		case "ledger_current":
			// The cutoff check never succeeds; polling must not spin
			// forever on it.
			return map[string]any{
				"status":        "error",
				"error":         "internal",
				"error_message": "Internal error.",
			}
		default:
			return map[string]any{"result": map[string]any{}}
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Connect(ctx))
	defer c.Disconnect(ctx)

	_, err := c.SubmitBlob(ctx, "1200002280000000")
	var subErr *domain.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "FEED", subErr.Hash)
	assert.NotErrorIs(t, err, context.DeadlineExceeded, "the failure must come from the cutoff check, not the outer timeout")
}

func TestClient_SubmitFailsPastLastLedger(t *testing.T) {
	c := fakeLedger(t, func(command string, req map[string]any) map[string]any {
		switch command {
		case "submit":
			return map[string]any{"result": map[string]any{
				"engine_result": "tesSUCCESS",
				"tx_json": map[string]any{
					"hash":               "CAFE",
					"LastLedgerSequence": float64(50),
				},
			}}
		case "tx":
			return map[string]any{
				"status": "error",
				"error":  "txnNotFound",
			}
		case "ledger_current":
			// Already past the last-valid bound.
			return map[string]any{"result": map[string]any{"ledger_current_index": float64(51)}}
		default:
			return map[string]any{"result": map[string]any{}}
		}
	})
	ctx := context.Background()
	require.NoError(t, c.Connect(ctx))
	defer c.Disconnect(ctx)

	tx := domain.Transaction{Type: "Payment", Account: "rSender", Fields: map[string]any{
		"Destination": "rReceiver",
		"Amount":      "1",
	}}
	_, err := c.SubmitTransaction(ctx, tx, "sSeed", true)
	var subErr *domain.SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Equal(t, "CAFE", subErr.Hash)
}
