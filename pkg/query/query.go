// Package query provides the read-only pass-through tools. Each tool is a
// thin request/response wrapper around one websocket API command; no
// build or validation pipeline is involved.
package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/driftware/ledgermcp/internal/logging"
	"github.com/driftware/ledgermcp/pkg/conn"
	"github.com/driftware/ledgermcp/pkg/registry"
)

// Tools returns the read-only query tool catalog.
func Tools(registryConns *conn.Registry, logger *slog.Logger) []registry.Tool {
	if logger == nil {
		logger = logging.NewNop()
	}
	q := &queries{conns: registryConns, logger: logger}

	return []registry.Tool{
		{
			Name:        "account_info",
			Description: "Look up basic information about an account: balance, sequence, flags.",
			InputSchema: schema(map[string]any{
				"account": map[string]any{"type": "string", "description": "Account address to look up"},
			}, "account"),
			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				account, _ := args["account"].(string)
				if account == "" {
					return nil, fmt.Errorf("account is required")
				}
				return q.run(ctx, args, "account_info", map[string]any{
					"account":      account,
					"ledger_index": "validated",
				})
			},
		},
		{
			Name:        "server_info",
			Description: "Fetch status information about the connected ledger server.",
			InputSchema: schema(nil),
			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				return q.run(ctx, args, "server_info", nil)
			},
		},
		{
			Name:        "fee",
			Description: "Fetch the current transaction cost levels reported by the network.",
			InputSchema: schema(nil),
			Execute: func(ctx context.Context, args map[string]any) (any, error) {
				return q.run(ctx, args, "fee", nil)
			},
		},
	}
}

type queries struct {
	conns  *conn.Registry
	logger *slog.Logger
}

// run performs one command with the same acquire/release discipline the
// submission engine uses.
func (q *queries) run(ctx context.Context, args map[string]any, command string, params map[string]any) (any, error) {
	network, _ := args["network"].(string)
	if network == "" {
		return nil, fmt.Errorf("network is required")
	}

	c, err := q.conns.Acquire(ctx, network)
	if err != nil {
		return nil, err
	}
	defer func() {
		if relErr := q.conns.Release(ctx, network); relErr != nil {
			q.logger.Warn("failed to release connection after query", "network", network, "err", relErr)
		}
	}()

	return c.Request(ctx, command, params)
}

func schema(properties map[string]any, required ...string) map[string]any {
	props := map[string]any{
		"network": map[string]any{
			"type":        "string",
			"description": "Network alias or websocket endpoint URL",
		},
	}
	for name, prop := range properties {
		props[name] = prop
	}
	req := []any{"network"}
	for _, name := range required {
		req = append(req, name)
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   req,
	}
}
