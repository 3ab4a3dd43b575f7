package ledgermcp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/ledgermcp"
	"github.com/driftware/ledgermcp/internal/ledgertest"
	"github.com/driftware/ledgermcp/pkg/domain"
)

func newServer(t *testing.T, dialer *ledgertest.Dialer) *ledgermcp.Server {
	t.Helper()
	srv, err := ledgermcp.New("", ledgermcp.WithDial(dialer.Dial))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close(context.Background()) })
	return srv
}

func TestNew_RegistersFullCatalog(t *testing.T) {
	srv := newServer(t, &ledgertest.Dialer{})

	names := make(map[string]bool)
	for _, tool := range srv.Tools.List() {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"payment", "trust_set", "account_set", "offer_create", "offer_cancel", "clawback",
		"account_info", "server_info", "fee",
		"issue_token",
	} {
		assert.True(t, names[want], "catalog missing tool %s", want)
	}
}

func TestNew_LoadsDefaultNetworks(t *testing.T) {
	srv := newServer(t, &ledgertest.Dialer{})

	assert.Equal(t, "testnet", srv.Config.DefaultNetwork)
	assert.Contains(t, srv.Config.Networks, "mainnet")
}

func TestExecutePaymentTool(t *testing.T) {
	dialer := &ledgertest.Dialer{}
	srv := newServer(t, dialer)

	out, err := srv.Tools.Execute(context.Background(), "payment", map[string]any{
		"network": "testnet",
		"seed":    "sSeed",
		"txn": map[string]any{
			"account":     "rSender",
			"destination": "rReceiver",
			"amount":      "1000000",
		},
	})
	require.NoError(t, err)

	res, ok := out.(*domain.SubmissionResult)
	require.True(t, ok)
	assert.True(t, res.Validated)
	assert.False(t, srv.Conns.Active("testnet"))
}

func TestExecuteIssueTokenTool(t *testing.T) {
	dialer := &ledgertest.Dialer{}
	srv := newServer(t, dialer)

	out, err := srv.Tools.Execute(context.Background(), "issue_token", map[string]any{
		"network":      "testnet",
		"holder_count": float64(2),
		"currency":     "MYTOKEN",
		"trust_limit":  "100000",
		"mint_amount":  "500",
	})
	require.NoError(t, err)

	wc, ok := out.(*domain.WorkflowContext)
	require.True(t, ok)
	assert.NotEmpty(t, wc.Issuer.Address)
	assert.Len(t, wc.Holders, 2)
	assert.Len(t, wc.Log, 4)
}
