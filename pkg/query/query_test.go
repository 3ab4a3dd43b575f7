package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftware/ledgermcp/internal/ledgertest"
	"github.com/driftware/ledgermcp/pkg/conn"
	"github.com/driftware/ledgermcp/pkg/query"
	"github.com/driftware/ledgermcp/pkg/registry"
)

func toolByName(t *testing.T, tools []registry.Tool, name string) registry.Tool {
	t.Helper()
	for _, tool := range tools {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not found", name)
	return registry.Tool{}
}

func TestTools_Catalog(t *testing.T) {
	tools := query.Tools(conn.NewRegistry((&ledgertest.Dialer{}).Dial), nil)

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.Equal(t, []string{"account_info", "server_info", "fee"}, names)
}

func TestServerInfo_ReleasesConnection(t *testing.T) {
	dialer := &ledgertest.Dialer{}
	reg := conn.NewRegistry(dialer.Dial)
	tool := toolByName(t, query.Tools(reg, nil), "server_info")

	out, err := tool.Execute(context.Background(), map[string]any{"network": "testnet"})
	require.NoError(t, err)

	result, ok := out.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "server_info", result["command"])
	assert.False(t, reg.Active("testnet"), "query tools release their connection")
}

func TestAccountInfo_RequiresAccount(t *testing.T) {
	dialer := &ledgertest.Dialer{}
	tool := toolByName(t, query.Tools(conn.NewRegistry(dialer.Dial), nil), "account_info")

	_, err := tool.Execute(context.Background(), map[string]any{"network": "testnet"})
	require.Error(t, err)
	assert.Equal(t, 0, dialer.DialCount())
}

func TestQueries_RequireNetwork(t *testing.T) {
	dialer := &ledgertest.Dialer{}
	for _, tool := range query.Tools(conn.NewRegistry(dialer.Dial), nil) {
		_, err := tool.Execute(context.Background(), map[string]any{"account": "rTest"})
		assert.Error(t, err, "tool %s must require a network", tool.Name)
	}
	assert.Equal(t, 0, dialer.DialCount())
}
